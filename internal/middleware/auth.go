package middleware

import (
	"context"
	"net/http"

	"github.com/go-faster/sdk/zctx"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"storefront/internal/domain/access"
	"storefront/internal/identity"
	"storefront/internal/usecase"
)

const (
	CtxIdentityKey = "identity" // identity.Identity
	CtxCallerKey   = "caller"   // access.Caller
)

type errorResponse struct {
	Message string `json:"message"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Message: msg}
}

// VerifyIdentity はbearer tokenを検証してidentityをcontextへ保存する。
func VerifyIdentity(v identity.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := identity.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("Unauthorized: No token provided"))
			}

			id, err := v.Verify(c.Request().Context(), raw)
			if err != nil {
				zctx.From(c.Request().Context()).Debug("Token rejected", zap.Error(err))
				return c.JSON(http.StatusUnauthorized, errorJSON("Unauthorized: Invalid token"))
			}

			c.Set(CtxIdentityKey, id)
			return next(c)
		}
	}
}

func IdentityFrom(c echo.Context) (identity.Identity, bool) {
	id, ok := c.Get(CtxIdentityKey).(identity.Identity)
	return id, ok
}

// CallerResolver maps a verified identity to a local user.
type CallerResolver interface {
	ResolveCaller(ctx context.Context, id identity.Identity) (access.Caller, error)
}

// LoadCaller resolves the caller once per request. Must run after
// VerifyIdentity.
func LoadCaller(r CallerResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			ctx := c.Request().Context()
			caller, err := r.ResolveCaller(ctx, id)
			if err != nil {
				if he, ok := usecase.AsHTTPError(err); ok && he.Status < http.StatusInternalServerError {
					return c.JSON(he.Status, errorJSON(he.Message))
				}
				zctx.From(ctx).Error("Resolve caller", zap.Error(err))
				return c.JSON(http.StatusInternalServerError, errorJSON("Server Error"))
			}

			c.Set(CtxCallerKey, caller)
			c.SetRequest(c.Request().WithContext(zctx.With(ctx, zap.String("user_id", caller.ID))))
			return next(c)
		}
	}
}

// CallerFrom returns the zero Caller when none was resolved.
func CallerFrom(c echo.Context) access.Caller {
	caller, _ := c.Get(CtxCallerKey).(access.Caller)
	return caller
}
