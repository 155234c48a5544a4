package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-faster/errors"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type CategoryUsecase struct {
	categories repo.CategoryRepository
	now        func() time.Time
}

func NewCategoryUsecase(categories repo.CategoryRepository) *CategoryUsecase {
	return &CategoryUsecase{categories: categories, now: time.Now}
}

// List は有効なカテゴリのみ、名前順。
func (u *CategoryUsecase) List(ctx context.Context) ([]model.Category, error) {
	items, err := u.categories.ListActive(ctx)
	if err != nil {
		return nil, internalError(err)
	}
	return items, nil
}

type CategoryInput struct {
	Name        *string
	Description *string
	IsActive    *bool
}

func (u *CategoryUsecase) Create(ctx context.Context, in CategoryInput) (*model.Category, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		var fe fieldErrors
		fe.add("name", "Name is required")
		return nil, fe.err()
	}
	name := strings.TrimSpace(*in.Name)
	slug := model.Slugify(name)

	_, err := u.categories.FindBySlug(ctx, slug)
	if err == nil {
		return nil, NewHTTPError(http.StatusBadRequest, "Category already exists")
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, internalError(err)
	}

	now := u.now()
	c := &model.Category{
		Name:      name,
		Slug:      slug,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Description != nil {
		c.Description = strings.TrimSpace(*in.Description)
	}
	if err := u.categories.Create(ctx, c); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, NewHTTPError(http.StatusBadRequest, "Category already exists")
		}
		return nil, internalError(err)
	}
	return c, nil
}

// Update re-derives the slug when the name changes.
func (u *CategoryUsecase) Update(ctx context.Context, id string, in CategoryInput) (*model.Category, error) {
	c, err := u.categories.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, NewHTTPError(http.StatusNotFound, "Category not found")
	}
	if err != nil {
		return nil, internalError(err)
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			var fe fieldErrors
			fe.add("name", "Name is required")
			return nil, fe.err()
		}
		c.Name = name
		c.Slug = model.Slugify(name)
	}
	if in.Description != nil {
		c.Description = strings.TrimSpace(*in.Description)
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	c.UpdatedAt = u.now()

	if err := u.categories.Update(ctx, c); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, NewHTTPError(http.StatusNotFound, "Category not found")
		case errors.Is(err, repo.ErrConflict):
			return nil, NewHTTPError(http.StatusBadRequest, "Category already exists")
		}
		return nil, internalError(err)
	}
	return c, nil
}

// Delete deactivates the category.
func (u *CategoryUsecase) Delete(ctx context.Context, id string) error {
	err := u.categories.Deactivate(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Category not found")
	}
	if err != nil {
		return internalError(err)
	}
	return nil
}
