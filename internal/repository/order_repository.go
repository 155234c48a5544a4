package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, orderID string) (*model.Order, error)
	// FindOwned returns ErrNotFound both for missing orders and for orders
	// owned by someone else.
	FindOwned(ctx context.Context, orderID string, userID string) (*model.Order, error)
	// FindOwnedForUpdate is FindOwned holding a row lock until the
	// surrounding transaction ends.
	FindOwnedForUpdate(ctx context.Context, orderID string, userID string) (*model.Order, error)
	ListByUserID(ctx context.Context, userID string) ([]model.Order, error)
	// ListAll returns every order with its owner preloaded, newest first.
	ListAll(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
	// MarkPaid returns ErrConflict when the order already carries a payment
	// status.
	MarkPaid(ctx context.Context, orderID string, transactionID string) error
}
