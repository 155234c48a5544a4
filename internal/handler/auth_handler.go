package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/domain/model"
	"storefront/internal/middleware"
	"storefront/internal/usecase"
)

type AuthHandler struct {
	uc *usecase.AuthUsecase
}

// DIコンストラクタ
func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

type SyncResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

// /api/auth/sync はトークン検証のみ（ユーザーはまだ存在しないことがある）
func (h *AuthHandler) RegisterRoutes(e *echo.Echo, verify echo.MiddlewareFunc) {
	g := e.Group("/api/auth")
	g.POST("/sync", h.sync, verify)
}

func (h *AuthHandler) sync(c echo.Context) error {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	user, err := h.uc.Sync(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SyncResponse{Message: "User synced successfully", User: user})
}
