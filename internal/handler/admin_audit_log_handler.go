package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"storefront/internal/middleware"
	"storefront/internal/usecase"
)

// /api/admin/audit-logs
type AuditLogHandler struct {
	uc *usecase.AuditLogUsecase
}

func NewAuditLogHandler(uc *usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{uc: uc}
}

func (h *AuditLogHandler) RegisterRoutes(e *echo.Echo, auth ...echo.MiddlewareFunc) {
	g := e.Group("/api/admin/audit-logs", auth...)
	g.Use(middleware.AdminRoleGuard())
	g.GET("", h.list)
}

// ?resourceType=&resourceId=&actorUserId=&limit=
func (h *AuditLogHandler) list(c echo.Context) error {
	q := usecase.AuditLogQuery{
		ActorUserID:  c.QueryParam("actorUserId"),
		ResourceType: c.QueryParam("resourceType"),
		ResourceID:   c.QueryParam("resourceId"),
	}
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return writeError(c, &usecase.ValidationError{Fields: []usecase.FieldError{
				{Field: "limit", Message: "limit must be an integer"},
			}})
		}
		q.Limit = n
	}

	logs, err := h.uc.List(c.Request().Context(), middleware.CallerFrom(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, logs)
}
