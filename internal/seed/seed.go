// Package seed loads demo users and the demo catalog. Every step is
// idempotent: existing rows are left untouched.
package seed

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// Accounts creates the admin and client test users.
func Accounts(ctx context.Context, userRepo repo.UserRepository) error {
	lg := zctx.From(ctx)
	for _, s := range users {
		_, err := userRepo.FindByEmail(ctx, s.Email)
		if err == nil {
			lg.Info("User already exists", zap.String("email", s.Email))
			continue
		}
		if !errors.Is(err, repo.ErrNotFound) {
			return errors.Wrapf(err, "find user %s", s.Email)
		}

		u := &model.User{Email: s.Email, FirebaseUID: s.UID, Role: s.Role}
		if err := userRepo.Create(ctx, u); err != nil {
			return errors.Wrapf(err, "create user %s", s.Email)
		}
		lg.Info("Created user", zap.String("email", s.Email), zap.String("role", string(s.Role)))
	}
	return nil
}

type CatalogRepos struct {
	Products   repo.ProductRepository
	Categories repo.CategoryRepository
	Coupons    repo.CouponRepository
}

// Catalog creates categories, products and coupons.
func Catalog(ctx context.Context, r CatalogRepos, now time.Time) error {
	catIDs, err := seedCategories(ctx, r.Categories, now)
	if err != nil {
		return err
	}
	if err := seedProducts(ctx, r.Products, catIDs, now); err != nil {
		return err
	}
	return seedCoupons(ctx, r.Coupons, now)
}

// seedCategories returns category ids keyed by name.
func seedCategories(ctx context.Context, cats repo.CategoryRepository, now time.Time) (map[string]string, error) {
	lg := zctx.From(ctx)
	ids := make(map[string]string, len(categories))

	for _, s := range categories {
		slug := model.Slugify(s.Name)
		existing, err := cats.FindBySlug(ctx, slug)
		switch {
		case err == nil:
			ids[s.Name] = existing.ID
			lg.Info("Category already exists", zap.String("name", s.Name))
			continue
		case !errors.Is(err, repo.ErrNotFound):
			return nil, errors.Wrapf(err, "find category %s", s.Name)
		}

		c := &model.Category{
			Name:        s.Name,
			Description: s.Description,
			Slug:        slug,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := cats.Create(ctx, c); err != nil {
			return nil, errors.Wrapf(err, "create category %s", s.Name)
		}
		ids[s.Name] = c.ID
		lg.Info("Created category", zap.String("name", s.Name))
	}
	return ids, nil
}

func seedProducts(ctx context.Context, productRepo repo.ProductRepository, catIDs map[string]string, now time.Time) error {
	lg := zctx.From(ctx)
	for _, s := range products {
		exists, err := productExists(ctx, productRepo, s.Name)
		if err != nil {
			return err
		}
		if exists {
			lg.Info("Product already exists", zap.String("name", s.Name))
			continue
		}

		p := &model.Product{
			Name:        s.Name,
			Description: s.Description,
			Price:       decimal.RequireFromString(s.Price),
			Category:    catIDs[s.CategoryName],
			InStock:     true,
			Tags:        s.Tags,
			ImageURL:    fmt.Sprintf("https://via.placeholder.com/300x200?text=%s", url.QueryEscape(s.Name)),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := productRepo.Create(ctx, p); err != nil {
			return errors.Wrapf(err, "create product %s", s.Name)
		}
		lg.Info("Created product", zap.String("name", s.Name))
	}
	return nil
}

// 名前検索は部分一致なので完全一致で絞る
func productExists(ctx context.Context, productRepo repo.ProductRepository, name string) (bool, error) {
	found, err := productRepo.List(ctx, repo.ProductListQuery{Search: name})
	if err != nil {
		return false, errors.Wrapf(err, "find product %s", name)
	}
	for _, p := range found {
		if p.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func seedCoupons(ctx context.Context, couponRepo repo.CouponRepository, now time.Time) error {
	lg := zctx.From(ctx)
	for _, c := range coupons(now) {
		_, err := couponRepo.FindByCode(ctx, c.Code)
		if err == nil {
			lg.Info("Coupon already exists", zap.String("code", c.Code))
			continue
		}
		if !errors.Is(err, repo.ErrNotFound) {
			return errors.Wrapf(err, "find coupon %s", c.Code)
		}

		c.CreatedAt, c.UpdatedAt = now, now
		if err := couponRepo.Create(ctx, &c); err != nil {
			return errors.Wrapf(err, "create coupon %s", c.Code)
		}
		lg.Info("Created coupon", zap.String("code", c.Code))
	}
	return nil
}
