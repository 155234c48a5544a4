package usecase

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"storefront/internal/domain/access"
	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// CartUsecase は /api/cart の業務ロジックです。
// カートはユーザーごとの CartItem の集合で、商品情報は追加時点のスナップショット。
type CartUsecase struct {
	items repo.CartItemRepository
}

func NewCartUsecase(items repo.CartItemRepository) *CartUsecase {
	return &CartUsecase{items: items}
}

type AddCartInput struct {
	ProductID   string
	ProductName string
	Price       decimal.Decimal
	// nil means 1
	Quantity *int
	ImageURL string
}

func (in AddCartInput) validate() error {
	var fe fieldErrors
	if strings.TrimSpace(in.ProductID) == "" {
		fe.add("productId", "Product ID is required")
	}
	if strings.TrimSpace(in.ProductName) == "" {
		fe.add("productName", "Product name is required")
	}
	if !in.Price.IsPositive() {
		fe.add("price", "Price must be a positive number")
	}
	if in.Quantity != nil && *in.Quantity < 1 {
		fe.add("quantity", "Quantity must be at least 1")
	}
	if in.ImageURL != "" && !isURL(in.ImageURL) {
		fe.add("imageUrl", "Image URL must be valid")
	}
	return fe.err()
}

func isURL(s string) bool {
	u, err := url.ParseRequestURI(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// List は新しい順。
func (u *CartUsecase) List(ctx context.Context, caller access.Caller) ([]model.CartItem, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	items, err := u.items.ListByUserID(ctx, caller.ID)
	if err != nil {
		return nil, internalError(err)
	}
	return items, nil
}

// Add はカートに追加（同一商品は数量加算、名前・価格・画像は最新に更新）。
// created は新規行を作った場合に true。
func (u *CartUsecase) Add(ctx context.Context, caller access.Caller, in AddCartInput) (item *model.CartItem, created bool, err error) {
	if err := requireCaller(caller); err != nil {
		return nil, false, err
	}
	if err := in.validate(); err != nil {
		return nil, false, err
	}
	qty := 1
	if in.Quantity != nil {
		qty = *in.Quantity
	}

	existing, err := u.items.FindByUserAndProduct(ctx, caller.ID, in.ProductID)
	switch {
	case err == nil:
		return u.merge(ctx, existing, in, qty)
	case !errors.Is(err, repo.ErrNotFound):
		return nil, false, internalError(err)
	}

	item = &model.CartItem{
		UserID:      caller.ID,
		ProductID:   in.ProductID,
		ProductName: in.ProductName,
		Price:       model.RoundMoney(in.Price),
		Quantity:    qty,
		ImageURL:    in.ImageURL,
	}
	if err := u.items.Create(ctx, item); err != nil {
		if !errors.Is(err, repo.ErrConflict) {
			return nil, false, internalError(err)
		}
		// 同時追加で先に行ができていたら加算に切り替える
		existing, findErr := u.items.FindByUserAndProduct(ctx, caller.ID, in.ProductID)
		if findErr != nil {
			return nil, false, internalError(findErr)
		}
		return u.merge(ctx, existing, in, qty)
	}
	return item, true, nil
}

func (u *CartUsecase) merge(ctx context.Context, item *model.CartItem, in AddCartInput, qty int) (*model.CartItem, bool, error) {
	item.Quantity += qty
	item.ProductName = in.ProductName
	item.Price = model.RoundMoney(in.Price)
	item.ImageURL = in.ImageURL
	if err := u.items.Save(ctx, item); err != nil {
		return nil, false, internalError(err)
	}
	return item, false, nil
}

// 数量変更（自分のアイテムのみ）。
func (u *CartUsecase) UpdateQuantity(ctx context.Context, caller access.Caller, itemID string, qty int) (*model.CartItem, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if qty < 1 {
		var fe fieldErrors
		fe.add("quantity", "Quantity must be at least 1")
		return nil, fe.err()
	}
	item, err := u.items.UpdateQuantity(ctx, caller.ID, itemID, qty)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, NewHTTPError(http.StatusNotFound, "Cart item not found")
	}
	if err != nil {
		return nil, internalError(err)
	}
	return item, nil
}

func (u *CartUsecase) Remove(ctx context.Context, caller access.Caller, itemID string) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	err := u.items.DeleteByID(ctx, caller.ID, itemID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Cart item not found")
	}
	if err != nil {
		return internalError(err)
	}
	return nil
}

func (u *CartUsecase) Clear(ctx context.Context, caller access.Caller) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	if err := u.items.DeleteByUserID(ctx, caller.ID); err != nil {
		return internalError(err)
	}
	return nil
}
