package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type CartItemRepository interface {
	// ListByUserID returns the user's items, newest first.
	ListByUserID(ctx context.Context, userID string) ([]model.CartItem, error)
	// ListByUserIDForUpdate locks the listed rows for the rest of the
	// transaction.
	ListByUserIDForUpdate(ctx context.Context, userID string) ([]model.CartItem, error)
	FindByUserAndProduct(ctx context.Context, userID string, productID string) (*model.CartItem, error)
	Create(ctx context.Context, item *model.CartItem) error
	Save(ctx context.Context, item *model.CartItem) error
	// UpdateQuantity and DeleteByID only touch items owned by userID and
	// return ErrNotFound otherwise.
	UpdateQuantity(ctx context.Context, userID string, itemID string, qty int) (*model.CartItem, error)
	DeleteByID(ctx context.Context, userID string, itemID string) error
	DeleteByUserID(ctx context.Context, userID string) error
}
