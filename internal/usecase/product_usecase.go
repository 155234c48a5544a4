package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type ProductUsecase struct {
	products repo.ProductRepository
	now      func() time.Time
}

// DI
func NewProductUsecase(products repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{products: products, now: time.Now}
}

func (u *ProductUsecase) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	q.Search = strings.TrimSpace(q.Search)
	if q.MinPrice != nil && q.MaxPrice != nil && q.MinPrice.GreaterThan(*q.MaxPrice) {
		var fe fieldErrors
		fe.add("minPrice", "minPrice must not exceed maxPrice")
		return nil, fe.err()
	}
	items, err := u.products.List(ctx, q)
	if err != nil {
		return nil, internalError(err)
	}
	return items, nil
}

func (u *ProductUsecase) Get(ctx context.Context, id string) (*model.Product, error) {
	p, err := u.products.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return nil, internalError(err)
	}
	return p, nil
}

// ProductInput is used for both create and update. Nil fields are left
// unchanged on update and take defaults on create.
type ProductInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	ImageURL    *string
	Category    *string
	InStock     *bool
	Tags        []string
}

func (u *ProductUsecase) Create(ctx context.Context, in ProductInput) (*model.Product, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" ||
		in.Description == nil || strings.TrimSpace(*in.Description) == "" ||
		in.Price == nil || !in.Price.IsPositive() {
		return nil, NewHTTPError(http.StatusBadRequest, "Please fill all fields")
	}

	now := u.now()
	p := &model.Product{InStock: true, Tags: []string{}, CreatedAt: now}
	apply(p, in)
	p.UpdatedAt = now
	if err := u.products.Create(ctx, p); err != nil {
		return nil, internalError(err)
	}
	return p, nil
}

func (u *ProductUsecase) Update(ctx context.Context, id string, in ProductInput) (*model.Product, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "Please fill all fields")
	}
	if in.Price != nil && in.Price.IsNegative() {
		var fe fieldErrors
		fe.add("price", "Price must not be negative")
		return nil, fe.err()
	}

	p, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(p, in)
	p.UpdatedAt = u.now()
	if err := u.products.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return nil, internalError(err)
	}
	return p, nil
}

func (u *ProductUsecase) Delete(ctx context.Context, id string) error {
	err := u.products.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return internalError(err)
	}
	return nil
}

func apply(p *model.Product, in ProductInput) {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		p.Price = model.RoundMoney(*in.Price)
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.InStock != nil {
		p.InStock = *in.InStock
	}
	if in.Tags != nil {
		tags := make([]string, 0, len(in.Tags))
		for _, t := range in.Tags {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
		p.Tags = tags
	}
}
