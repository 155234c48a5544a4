package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	repo "storefront/internal/repository"
	"storefront/internal/usecase"
)

// 商品・カテゴリ・クーポンの公開API
type CatalogHandler struct {
	products   *usecase.ProductUsecase
	categories *usecase.CategoryUsecase
	coupons    *usecase.CouponUsecase
}

// DI
func NewCatalogHandler(p *usecase.ProductUsecase, cat *usecase.CategoryUsecase, cp *usecase.CouponUsecase) *CatalogHandler {
	return &CatalogHandler{products: p, categories: cat, coupons: cp}
}

type ApplyCouponRequest struct {
	Code  string          `json:"code"`
	Total decimal.Decimal `json:"total"`
}

// 公開ルートを登録
func (h *CatalogHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/products", h.listProducts)
	e.GET("/api/products/:id", h.getProduct)
	e.GET("/api/categories", h.listCategories)
	e.GET("/api/coupons", h.listCoupons)
	e.POST("/api/coupons/apply", h.applyCoupon)
}

func (h *CatalogHandler) listProducts(c echo.Context) error {
	q := repo.ProductListQuery{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
	}

	// minPrice / maxPrice（任意）
	var fe []usecase.FieldError
	if v := c.QueryParam("minPrice"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			fe = append(fe, usecase.FieldError{Field: "minPrice", Message: "minPrice must be a number"})
		} else {
			q.MinPrice = &d
		}
	}
	if v := c.QueryParam("maxPrice"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			fe = append(fe, usecase.FieldError{Field: "maxPrice", Message: "maxPrice must be a number"})
		} else {
			q.MaxPrice = &d
		}
	}
	if len(fe) > 0 {
		return writeError(c, &usecase.ValidationError{Fields: fe})
	}

	products, err := h.products.List(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) getProduct(c echo.Context) error {
	p, err := h.products.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *CatalogHandler) listCategories(c echo.Context) error {
	cats, err := h.categories.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *CatalogHandler) listCoupons(c echo.Context) error {
	coupons, err := h.coupons.ListActive(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, coupons)
}

func (h *CatalogHandler) applyCoupon(c echo.Context) error {
	var req ApplyCouponRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}

	d, err := h.coupons.Apply(c.Request().Context(), req.Code, req.Total)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}
