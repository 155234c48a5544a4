package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"storefront/internal/usecase"
)

// 管理者向けカタログ操作。ロール確認はゲートウェイで済ませている
type AdminCatalogHandler struct {
	products   *usecase.ProductUsecase
	categories *usecase.CategoryUsecase
	coupons    *usecase.CouponUsecase
}

func NewAdminCatalogHandler(p *usecase.ProductUsecase, cat *usecase.CategoryUsecase, cp *usecase.CouponUsecase) *AdminCatalogHandler {
	return &AdminCatalogHandler{products: p, categories: cat, coupons: cp}
}

type ProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"imageUrl"`
	Category    *string          `json:"category"`
	InStock     *bool            `json:"inStock"`
	Tags        []string         `json:"tags"`
}

func (r ProductRequest) input() usecase.ProductInput {
	return usecase.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		Category:    r.Category,
		InStock:     r.InStock,
		Tags:        r.Tags,
	}
}

type CategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

type CouponRequest struct {
	Code           *string          `json:"code"`
	DiscountType   *string          `json:"discountType"`
	DiscountValue  *decimal.Decimal `json:"discountValue"`
	MinOrderAmount *decimal.Decimal `json:"minOrderAmount"`
	MaxDiscount    *decimal.Decimal `json:"maxDiscount"`
	UsageLimit     *int             `json:"usageLimit"`
	IsActive       *bool            `json:"isActive"`
	ValidFrom      *time.Time       `json:"validFrom"`
	ValidUntil     *time.Time       `json:"validUntil"`
}

func (r CouponRequest) input() usecase.CouponInput {
	return usecase.CouponInput{
		Code:           r.Code,
		DiscountType:   r.DiscountType,
		DiscountValue:  r.DiscountValue,
		MinOrderAmount: r.MinOrderAmount,
		MaxDiscount:    r.MaxDiscount,
		UsageLimit:     r.UsageLimit,
		IsActive:       r.IsActive,
		ValidFrom:      r.ValidFrom,
		ValidUntil:     r.ValidUntil,
	}
}

func (h *AdminCatalogHandler) RegisterRoutes(e *echo.Echo, auth ...echo.MiddlewareFunc) {
	products := e.Group("/api/products", auth...)
	products.POST("", h.createProduct)
	products.PUT("/:id", h.updateProduct)
	products.DELETE("/:id", h.deleteProduct)

	categories := e.Group("/api/categories", auth...)
	categories.POST("", h.createCategory)
	categories.PUT("/:id", h.updateCategory)
	categories.DELETE("/:id", h.deleteCategory)

	coupons := e.Group("/api/admin/coupons", auth...)
	coupons.GET("", h.listCoupons)
	coupons.POST("", h.createCoupon)
	coupons.PUT("/:id", h.updateCoupon)
	coupons.DELETE("/:id", h.deleteCoupon)
}

func (h *AdminCatalogHandler) createProduct(c echo.Context) error {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	p, err := h.products.Create(c.Request().Context(), req.input())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *AdminCatalogHandler) updateProduct(c echo.Context) error {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	p, err := h.products.Update(c.Request().Context(), c.Param("id"), req.input())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *AdminCatalogHandler) deleteProduct(c echo.Context) error {
	if err := h.products.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Product deleted successfully"})
}

func (h *AdminCatalogHandler) createCategory(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	cat, err := h.categories.Create(c.Request().Context(), usecase.CategoryInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, cat)
}

func (h *AdminCatalogHandler) updateCategory(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	cat, err := h.categories.Update(c.Request().Context(), c.Param("id"), usecase.CategoryInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cat)
}

// 論理削除（isActive=false）
func (h *AdminCatalogHandler) deleteCategory(c echo.Context) error {
	if err := h.categories.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Category deactivated successfully"})
}

func (h *AdminCatalogHandler) listCoupons(c echo.Context) error {
	coupons, err := h.coupons.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, coupons)
}

func (h *AdminCatalogHandler) createCoupon(c echo.Context) error {
	var req CouponRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	cp, err := h.coupons.Create(c.Request().Context(), req.input())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, cp)
}

func (h *AdminCatalogHandler) updateCoupon(c echo.Context) error {
	var req CouponRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	cp, err := h.coupons.Update(c.Request().Context(), c.Param("id"), req.input())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cp)
}

func (h *AdminCatalogHandler) deleteCoupon(c echo.Context) error {
	if err := h.coupons.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Coupon deleted successfully"})
}
