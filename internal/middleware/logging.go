package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-faster/sdk/zctx"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// InjectLogger stores a request-scoped logger carrying the request id.
// Register after echo's RequestID middleware.
func InjectLogger(lg *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqID := c.Response().Header().Get(echo.HeaderXRequestID)
			if reqID == "" {
				reqID = c.Request().Header.Get(echo.HeaderXRequestID)
			}
			ctx := zctx.Base(c.Request().Context(), lg.With(zap.String("request_id", reqID)))
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// LogRequests logs one line per request.
func LogRequests() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.String("route", c.Path()),
				zap.Int("status", status),
				zap.Duration("duration", time.Since(start)),
			}
			lg := zctx.From(req.Context())
			switch {
			case status >= http.StatusInternalServerError:
				lg.Warn("Request", fields...)
			default:
				lg.Info("Request", fields...)
			}
			return nil
		}
	}
}

// Recover turns a panic into a 500 and logs the stack.
func Recover() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					if r == http.ErrAbortHandler {
						panic(r)
					}
					zctx.From(c.Request().Context()).Error("Panic recovered",
						zap.String("panic", fmt.Sprint(r)),
						zap.Stack("stack"),
					)
					err = c.JSON(http.StatusInternalServerError, errorJSON("Server Error"))
				}
			}()
			return next(c)
		}
	}
}
