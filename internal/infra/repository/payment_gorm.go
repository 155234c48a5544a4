package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type paymentGormRepository struct {
	db *gorm.DB
}

func NewPaymentGormRepository(db *gorm.DB) repo.PaymentRepository {
	return &paymentGormRepository{db: db}
}

func (r *paymentGormRepository) Create(ctx context.Context, p *model.Payment) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return mapWriteErr(r.db.WithContext(ctx).Create(p).Error, "create payment")
}

func (r *paymentGormRepository) FindByID(ctx context.Context, paymentID string) (*model.Payment, error) {
	var p model.Payment
	if err := r.db.WithContext(ctx).Where("id = ?", paymentID).First(&p).Error; err != nil {
		return nil, mapReadErr(err, "find payment")
	}
	return &p, nil
}

func (r *paymentGormRepository) FindByIDForUpdate(ctx context.Context, paymentID string) (*model.Payment, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", paymentID).
		First(&p).Error
	if err != nil {
		return nil, mapReadErr(err, "find payment for update")
	}
	return &p, nil
}

func (r *paymentGormRepository) Save(ctx context.Context, p *model.Payment) error {
	return mapWriteErr(r.db.WithContext(ctx).Save(p).Error, "save payment")
}
