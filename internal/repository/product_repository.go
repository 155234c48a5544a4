package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/model"
)

type ProductListQuery struct {
	Category string
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (*model.Product, error)
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id string) error
}

type CategoryRepository interface {
	ListActive(ctx context.Context) ([]model.Category, error)
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
	FindByID(ctx context.Context, id string) (*model.Category, error)
	Create(ctx context.Context, c *model.Category) error
	Update(ctx context.Context, c *model.Category) error
	Deactivate(ctx context.Context, id string) error
}

type CouponRepository interface {
	// FindUsable looks a coupon up by normalized code, restricted to active
	// coupons valid at now and under their usage limit.
	FindUsable(ctx context.Context, code string, now time.Time) (*model.Coupon, error)
	// IncrementUsage bumps usedCount only if the coupon is still under its
	// usage limit. It returns ErrNotFound when that condition no longer holds.
	IncrementUsage(ctx context.Context, id string) error
	ListUsable(ctx context.Context, now time.Time) ([]model.Coupon, error)
	List(ctx context.Context) ([]model.Coupon, error)
	FindByCode(ctx context.Context, code string) (*model.Coupon, error)
	FindByID(ctx context.Context, id string) (*model.Coupon, error)
	Create(ctx context.Context, c *model.Coupon) error
	Update(ctx context.Context, c *model.Coupon) error
	Delete(ctx context.Context, id string) error
}
