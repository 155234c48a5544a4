package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	FindByID(ctx context.Context, paymentID string) (*model.Payment, error)
	FindByIDForUpdate(ctx context.Context, paymentID string) (*model.Payment, error)
	Save(ctx context.Context, payment *model.Payment) error
}
