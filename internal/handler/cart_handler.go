package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"storefront/internal/middleware"
	"storefront/internal/usecase"
)

// /api/cartのHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type AddCartRequest struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    *int            `json:"quantity"`
	ImageURL    string          `json:"imageUrl"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// /clear は /:itemId より先に登録する
func (h *CartHandler) RegisterRoutes(e *echo.Echo, auth ...echo.MiddlewareFunc) {
	g := e.Group("/api/cart", auth...)

	g.GET("", h.getCart)
	g.POST("/add", h.addToCart)
	g.DELETE("/clear", h.clearCart)
	g.PUT("/:itemId", h.updateItem)
	g.DELETE("/:itemId", h.deleteItem)
}

func (h *CartHandler) getCart(c echo.Context) error {
	items, err := h.uc.List(c.Request().Context(), middleware.CallerFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CartHandler) addToCart(c echo.Context) error {
	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}

	item, created, err := h.uc.Add(c.Request().Context(), middleware.CallerFrom(c), usecase.AddCartInput{
		ProductID:   req.ProductID,
		ProductName: req.ProductName,
		Price:       req.Price,
		Quantity:    req.Quantity,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return writeError(c, err)
	}
	if created {
		return c.JSON(http.StatusCreated, item)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CartHandler) updateItem(c echo.Context) error {
	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}

	item, err := h.uc.UpdateQuantity(c.Request().Context(), middleware.CallerFrom(c), c.Param("itemId"), req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CartHandler) deleteItem(c echo.Context) error {
	if err := h.uc.Remove(c.Request().Context(), middleware.CallerFrom(c), c.Param("itemId")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Item removed from cart"})
}

func (h *CartHandler) clearCart(c echo.Context) error {
	if err := h.uc.Clear(c.Request().Context(), middleware.CallerFrom(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Cart cleared successfully"})
}
