package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByFirebaseUID(ctx context.Context, uid string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// LinkFirebaseUID re-points the user with the given email at uid.
	LinkFirebaseUID(ctx context.Context, email string, uid string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}
