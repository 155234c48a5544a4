package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"storefront/internal/domain/model"
	"storefront/internal/middleware"
	"storefront/internal/usecase"
)

// /api/orders
type OrderHandler struct {
	orders *usecase.OrderUsecase
	admin  *usecase.AdminOrderUsecase
}

// DI
func NewOrderHandler(orders *usecase.OrderUsecase, admin *usecase.AdminOrderUsecase) *OrderHandler {
	return &OrderHandler{orders: orders, admin: admin}
}

type CreateOrderRequest struct {
	Products      []model.OrderItem `json:"products"`
	TotalPrice    decimal.Decimal   `json:"totalPrice"`
	PaymentMethod string            `json:"paymentMethod"`
}

type CheckoutRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, auth ...echo.MiddlewareFunc) {
	g := e.Group("/api/orders", auth...)

	g.GET("", h.list)
	g.POST("", h.create)
	g.POST("/checkout", h.checkout)
	// 権限チェックは usecase 側（403 と 404 を区別するため）
	g.PATCH("/:id/status", h.updateStatus)
}

func (h *OrderHandler) list(c echo.Context) error {
	orders, err := h.orders.ListOrders(c.Request().Context(), middleware.CallerFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}

	order, err := h.orders.CreateOrder(c.Request().Context(), middleware.CallerFrom(c), usecase.CreateOrderInput{
		Products:      req.Products,
		TotalPrice:    req.TotalPrice,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) checkout(c echo.Context) error {
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}

	order, err := h.orders.Checkout(c.Request().Context(), middleware.CallerFrom(c), req.PaymentMethod)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) updateStatus(c echo.Context) error {
	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}

	order, err := h.admin.UpdateStatus(c.Request().Context(), middleware.CallerFrom(c), c.Param("id"), req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}
