package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/access"
	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

var client = access.Caller{ID: "user-1", Email: "client@test.com", Role: model.RoleClient}

func intPtr(v int) *int { return &v }

func TestCartUsecase_Add_Validation(t *testing.T) {
	u := NewCartUsecase(new(CartItemRepoMock))

	_, _, err := u.Add(context.Background(), client, AddCartInput{
		Price:    decimal.Zero,
		Quantity: intPtr(0),
		ImageURL: "not a url",
	})
	assert.ElementsMatch(t, []string{"productId", "productName", "price", "quantity", "imageUrl"}, fieldsOf(err))
}

func TestCartUsecase_Add_CreatesWithDefaultQuantity(t *testing.T) {
	items := new(CartItemRepoMock)
	u := NewCartUsecase(items)
	items.On("FindByUserAndProduct", mock.Anything, "user-1", "p1").Return(nil, repo.ErrNotFound)
	items.On("Create", mock.Anything, mock.MatchedBy(func(it *model.CartItem) bool {
		return it.UserID == "user-1" && it.Quantity == 1 && it.Price.Equal(decimal.RequireFromString("9.99"))
	})).Return(nil)

	item, created, err := u.Add(context.Background(), client, AddCartInput{
		ProductID:   "p1",
		ProductName: "Mug",
		Price:       decimal.RequireFromString("9.99"),
		ImageURL:    "https://img.test/mug.png",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 1, item.Quantity)
	items.AssertExpectations(t)
}

func TestCartUsecase_Add_MergesExisting(t *testing.T) {
	items := new(CartItemRepoMock)
	u := NewCartUsecase(items)
	existing := &model.CartItem{ID: "ci1", UserID: "user-1", ProductID: "p1", ProductName: "Old", Price: decimal.NewFromInt(5), Quantity: 2}
	items.On("FindByUserAndProduct", mock.Anything, "user-1", "p1").Return(existing, nil)
	items.On("Save", mock.Anything, existing).Return(nil)

	item, created, err := u.Add(context.Background(), client, AddCartInput{
		ProductID:   "p1",
		ProductName: "New",
		Price:       decimal.NewFromInt(7),
		Quantity:    intPtr(3),
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 5, item.Quantity)
	assert.Equal(t, "New", item.ProductName)
	assert.True(t, item.Price.Equal(decimal.NewFromInt(7)))
}

func TestCartUsecase_Add_ConflictFallsBackToMerge(t *testing.T) {
	items := new(CartItemRepoMock)
	u := NewCartUsecase(items)
	raced := &model.CartItem{ID: "ci1", UserID: "user-1", ProductID: "p1", Quantity: 1}
	items.On("FindByUserAndProduct", mock.Anything, "user-1", "p1").Return(nil, repo.ErrNotFound).Once()
	items.On("Create", mock.Anything, mock.Anything).Return(repo.ErrConflict)
	items.On("FindByUserAndProduct", mock.Anything, "user-1", "p1").Return(raced, nil).Once()
	items.On("Save", mock.Anything, raced).Return(nil)

	item, created, err := u.Add(context.Background(), client, AddCartInput{
		ProductID: "p1", ProductName: "Mug", Price: decimal.NewFromInt(3), Quantity: intPtr(2),
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 3, item.Quantity)
}

func TestCartUsecase_UpdateQuantity(t *testing.T) {
	items := new(CartItemRepoMock)
	u := NewCartUsecase(items)

	_, err := u.UpdateQuantity(context.Background(), client, "ci1", 0)
	assert.Equal(t, []string{"quantity"}, fieldsOf(err))

	items.On("UpdateQuantity", mock.Anything, "user-1", "other", 2).Return(nil, repo.ErrNotFound)
	_, err = u.UpdateQuantity(context.Background(), client, "other", 2)
	assertHTTPError(t, err, http.StatusNotFound, "Cart item not found")

	items.On("UpdateQuantity", mock.Anything, "user-1", "ci1", 4).Return(&model.CartItem{ID: "ci1", Quantity: 4}, nil)
	got, err := u.UpdateQuantity(context.Background(), client, "ci1", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Quantity)
}

func TestCartUsecase_RemoveAndClear(t *testing.T) {
	items := new(CartItemRepoMock)
	u := NewCartUsecase(items)
	items.On("DeleteByID", mock.Anything, "user-1", "missing").Return(repo.ErrNotFound)
	items.On("DeleteByID", mock.Anything, "user-1", "ci1").Return(nil)
	items.On("DeleteByUserID", mock.Anything, "user-1").Return(nil)

	assertHTTPError(t, u.Remove(context.Background(), client, "missing"), http.StatusNotFound, "Cart item not found")
	require.NoError(t, u.Remove(context.Background(), client, "ci1"))
	require.NoError(t, u.Clear(context.Background(), client))
}

func TestCartUsecase_RequiresCaller(t *testing.T) {
	u := NewCartUsecase(new(CartItemRepoMock))
	_, err := u.List(context.Background(), access.Caller{})
	assertHTTPError(t, err, http.StatusUnauthorized, "unauthorized")
}
