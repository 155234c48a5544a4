package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/domain/model"
	"storefront/internal/middleware"
	"storefront/internal/usecase"
)

// /api/admin/orders と /api/admin/payments
type AdminOrderHandler struct {
	orders   *usecase.AdminOrderUsecase
	payments *usecase.PaymentUsecase
}

func NewAdminOrderHandler(orders *usecase.AdminOrderUsecase, payments *usecase.PaymentUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{orders: orders, payments: payments}
}

type RefundResponse struct {
	Message           string         `json:"message"`
	RefundTransaction string         `json:"refundTransactionId"`
	Payment           *model.Payment `json:"payment"`
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, auth ...echo.MiddlewareFunc) {
	g := e.Group("/api/admin", auth...)
	g.Use(middleware.AdminRoleGuard())

	g.GET("/orders", h.list)
	g.PATCH("/orders/:id/status", h.updateStatus)
	g.POST("/payments/:id/refund", h.refund)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	orders, err := h.orders.List(c.Request().Context(), middleware.CallerFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}

	order, err := h.orders.UpdateStatus(c.Request().Context(), middleware.CallerFrom(c), c.Param("id"), req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *AdminOrderHandler) refund(c echo.Context) error {
	res, err := h.payments.Refund(c.Request().Context(), middleware.CallerFrom(c), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, RefundResponse{
		Message:           "Payment refunded successfully",
		RefundTransaction: res.RefundID,
		Payment:           res.Payment,
	})
}
