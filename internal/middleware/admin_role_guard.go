package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/domain/access"
)

// contextに入っているcallerがadminかどうかを確認します。
// usecase側でも同じ判定をするので、ここはルート単位の早期拒否。
func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller := CallerFrom(c)
			if !caller.IsAuthenticated() {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if d := access.RequireAdmin(caller); !d.IsAllowed() {
				return c.JSON(http.StatusForbidden, errorJSON(d.Reason()))
			}

			return next(c)
		}
	}
}
