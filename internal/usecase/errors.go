package usecase

import (
	"fmt"
	"net/http"

	"github.com/go-faster/errors"

	"storefront/internal/domain/access"
)

// HTTPError is a failure with a single client-facing message.
type HTTPError struct {
	Status  int
	Message string
	// Err is the underlying cause of a 500. It is logged, never rendered.
	Err error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d: %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error { return e.Err }

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 500。詳細はログにだけ残す
func internalError(err error) error {
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Message: "Server Error",
		Err:     err,
	}
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Fields[0].Field, e.Fields[0].Message)
}

func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// fieldErrors collects validation failures; err returns nil when none were added.
type fieldErrors []FieldError

func (f *fieldErrors) add(field, message string) {
	*f = append(*f, FieldError{Field: field, Message: message})
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

func forbidden(d access.Decision) error {
	return NewHTTPError(http.StatusForbidden, d.Reason())
}

func requireAdmin(caller access.Caller) error {
	if !caller.IsAuthenticated() {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if d := access.RequireAdmin(caller); !d.IsAllowed() {
		return forbidden(d)
	}
	return nil
}

func requireCaller(caller access.Caller) error {
	if d := access.RequireAuthenticated(caller); !d.IsAllowed() {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return nil
}
