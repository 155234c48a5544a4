package handler

import (
	"net/http"

	"github.com/go-faster/sdk/zctx"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"storefront/internal/usecase"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Errors []usecase.FieldError `json:"errors"`
}

// SuccessResponse は { message: string } の形。
type SuccessResponse struct {
	Message string `json:"message"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if ve, ok := usecase.AsValidationError(err); ok {
		return c.JSON(http.StatusBadRequest, ValidationErrorResponse{Errors: ve.Fields})
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		if he.Status >= http.StatusInternalServerError {
			logError(c, err)
		}
		return c.JSON(he.Status, ErrorResponse{Message: he.Message})
	}

	//500
	logError(c, err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Server Error"})
}

func logError(c echo.Context, err error) {
	zctx.From(c.Request().Context()).Error("Request failed",
		zap.String("route", c.Path()),
		zap.Error(err),
	)
}

func badBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
}
