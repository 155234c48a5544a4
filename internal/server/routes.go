package server

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/handler"
	"storefront/internal/identity"
	"storefront/internal/middleware"
	"storefront/internal/usecase"
)

// AccountUsecases are the usecases served by the account service.
type AccountUsecases struct {
	Auth        *usecase.AuthUsecase
	Cart        *usecase.CartUsecase
	Orders      *usecase.OrderUsecase
	AdminOrders *usecase.AdminOrderUsecase
	Payments    *usecase.PaymentUsecase
	AuditLogs   *usecase.AuditLogUsecase
}

// RegisterAccountRoutes mounts /api/auth, /api/users, /api/cart,
// /api/orders, /api/payments and /api/admin.
func RegisterAccountRoutes(e *echo.Echo, v identity.Verifier, uc AccountUsecases) {
	verify := middleware.VerifyIdentity(v)
	caller := middleware.LoadCaller(uc.Auth)

	handler.NewAuthHandler(uc.Auth).RegisterRoutes(e, verify)
	handler.NewUserHandler(uc.Auth).RegisterRoutes(e, verify, caller)
	handler.NewCartHandler(uc.Cart).RegisterRoutes(e, verify, caller)
	handler.NewOrderHandler(uc.Orders, uc.AdminOrders).RegisterRoutes(e, verify, caller)
	handler.NewPaymentHandler(uc.Payments).RegisterRoutes(e, verify, caller)
	handler.NewAdminOrderHandler(uc.AdminOrders, uc.Payments).RegisterRoutes(e, verify, caller)
	handler.NewAuditLogHandler(uc.AuditLogs).RegisterRoutes(e, verify, caller)
}

type CatalogUsecases struct {
	Products   *usecase.ProductUsecase
	Categories *usecase.CategoryUsecase
	Coupons    *usecase.CouponUsecase
}

// RegisterProductRoutes mounts the public catalog and the admin catalog.
// The product service has no user table, so admin routes only verify the
// token here; the gateway resolves the role before forwarding.
func RegisterProductRoutes(e *echo.Echo, v identity.Verifier, uc CatalogUsecases) {
	handler.NewCatalogHandler(uc.Products, uc.Categories, uc.Coupons).RegisterRoutes(e)
	handler.NewAdminCatalogHandler(uc.Products, uc.Categories, uc.Coupons).RegisterRoutes(e, middleware.VerifyIdentity(v))
}
