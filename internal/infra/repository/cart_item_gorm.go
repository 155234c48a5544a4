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

type CartItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartItemGormRepository(db *gorm.DB) *CartItemGormRepository {
	return &CartItemGormRepository{db: db}
}

// 新しい順
func (r *CartItemGormRepository) ListByUserID(ctx context.Context, userID string) ([]model.CartItem, error) {
	items := []model.CartItem{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return nil, errors.Wrap(err, "list cart items")
	}
	return items, nil
}

// チェックアウト用。同じカートからの二重注文を防ぐ
func (r *CartItemGormRepository) ListByUserIDForUpdate(ctx context.Context, userID string) ([]model.CartItem, error) {
	items := []model.CartItem{}
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return nil, errors.Wrap(err, "list cart items for update")
	}
	return items, nil
}

func (r *CartItemGormRepository) FindByUserAndProduct(ctx context.Context, userID string, productID string) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		return nil, mapReadErr(err, "find cart item")
	}
	return &item, nil
}

func (r *CartItemGormRepository) Create(ctx context.Context, item *model.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	return mapWriteErr(r.db.WithContext(ctx).Create(item).Error, "create cart item")
}

func (r *CartItemGormRepository) Save(ctx context.Context, item *model.CartItem) error {
	return mapWriteErr(r.db.WithContext(ctx).Save(item).Error, "save cart item")
}

// 自分のアイテムだけ更新できる
func (r *CartItemGormRepository) UpdateQuantity(ctx context.Context, userID string, itemID string, qty int) (*model.CartItem, error) {
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Update("quantity", qty)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "update cart item quantity")
	}
	if res.RowsAffected == 0 {
		return nil, repo.ErrNotFound
	}

	var item model.CartItem
	if err := r.db.WithContext(ctx).Where("id = ?", itemID).First(&item).Error; err != nil {
		return nil, mapReadErr(err, "reload cart item")
	}
	return &item, nil
}

func (r *CartItemGormRepository) DeleteByID(ctx context.Context, userID string, itemID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&model.CartItem{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete cart item")
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 空のカートを消しても成功扱い
func (r *CartItemGormRepository) DeleteByUserID(ctx context.Context, userID string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItem{}).Error
	if err != nil {
		return errors.Wrap(err, "clear cart")
	}
	return nil
}
