package repository

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) Create(ctx context.Context, order *model.Order) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	return mapWriteErr(r.db.WithContext(ctx).Omit("User").Create(order).Error, "create order")
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	var o model.Order
	if err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error; err != nil {
		return nil, mapReadErr(err, "find order")
	}
	return &o, nil
}

// 他人の注文も「存在しない」と同じ扱い
func (r *OrderGormRepository) FindOwned(ctx context.Context, orderID string, userID string) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&o).Error
	if err != nil {
		return nil, mapReadErr(err, "find owned order")
	}
	return &o, nil
}

// 支払い処理用。tx の中で呼ぶこと
func (r *OrderGormRepository) FindOwnedForUpdate(ctx context.Context, orderID string, userID string) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&o).Error
	if err != nil {
		return nil, mapReadErr(err, "find owned order for update")
	}
	return &o, nil
}

func (r *OrderGormRepository) ListByUserID(ctx context.Context, userID string) ([]model.Order, error) {
	items := []model.Order{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	return items, nil
}

func (r *OrderGormRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	items := []model.Order{}
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return nil, errors.Wrap(err, "list all orders")
	}
	return items, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)

	if res.Error != nil {
		return errors.Wrap(res.Error, "update order status")
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 支払い完了: payment_status, transaction_id, status をまとめて更新
// 未払いの行だけが対象
func (r *OrderGormRepository) MarkPaid(ctx context.Context, orderID string, transactionID string) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND payment_status IS NULL", orderID).
		Updates(map[string]any{
			"payment_status": model.PaymentStatusCompleted,
			"transaction_id": transactionID,
			"status":         model.OrderStatusProcessing,
		})
	if res.Error != nil {
		return errors.Wrap(res.Error, "mark order paid")
	}
	if res.RowsAffected == 0 {
		return repo.ErrConflict
	}
	return nil
}
