package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/access"
	"storefront/internal/domain/model"
	"storefront/internal/identity"
	repo "storefront/internal/repository"
)

func TestAuthUsecase_Sync_ExistingByUID(t *testing.T) {
	users := new(UserRepoMock)
	u := NewAuthUsecase(users)
	existing := &model.User{ID: "u1", FirebaseUID: "uid-1", Email: "a@test.com", Role: model.RoleAdmin}
	users.On("FindByFirebaseUID", mock.Anything, "uid-1").Return(existing, nil)

	got, err := u.Sync(context.Background(), identity.Identity{UID: "uid-1", Email: "a@test.com"})
	require.NoError(t, err)
	assert.Same(t, existing, got)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Sync_RelinksByEmail(t *testing.T) {
	users := new(UserRepoMock)
	u := NewAuthUsecase(users)
	linked := &model.User{ID: "u1", FirebaseUID: "uid-new", Email: "a@test.com", Role: model.RoleClient}
	users.On("FindByFirebaseUID", mock.Anything, "uid-new").Return(nil, repo.ErrNotFound)
	users.On("LinkFirebaseUID", mock.Anything, "a@test.com", "uid-new").Return(linked, nil)

	got, err := u.Sync(context.Background(), identity.Identity{UID: "uid-new", Email: "a@test.com"})
	require.NoError(t, err)
	assert.Equal(t, "uid-new", got.FirebaseUID)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Sync_CreatesClient(t *testing.T) {
	users := new(UserRepoMock)
	u := NewAuthUsecase(users)
	users.On("FindByFirebaseUID", mock.Anything, "uid-2").Return(nil, repo.ErrNotFound)
	users.On("LinkFirebaseUID", mock.Anything, "b@test.com", "uid-2").Return(nil, repo.ErrNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.FirebaseUID == "uid-2" && u.Email == "b@test.com" && u.Role == model.RoleClient
	})).Return(nil)

	got, err := u.Sync(context.Background(), identity.Identity{UID: "uid-2", Email: "b@test.com"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleClient, got.Role)
	users.AssertExpectations(t)
}

func TestAuthUsecase_Sync_ConcurrentCreateReturnsWinner(t *testing.T) {
	users := new(UserRepoMock)
	u := NewAuthUsecase(users)
	winner := &model.User{ID: "u9", FirebaseUID: "uid-3", Email: "c@test.com"}
	users.On("FindByFirebaseUID", mock.Anything, "uid-3").Return(nil, repo.ErrNotFound).Once()
	users.On("LinkFirebaseUID", mock.Anything, "c@test.com", "uid-3").Return(nil, repo.ErrNotFound)
	users.On("Create", mock.Anything, mock.Anything).Return(repo.ErrConflict)
	users.On("FindByFirebaseUID", mock.Anything, "uid-3").Return(winner, nil).Once()

	got, err := u.Sync(context.Background(), identity.Identity{UID: "uid-3", Email: "c@test.com"})
	require.NoError(t, err)
	assert.Same(t, winner, got)
}

func TestAuthUsecase_Sync_NewUserWithoutEmail(t *testing.T) {
	users := new(UserRepoMock)
	u := NewAuthUsecase(users)
	users.On("FindByFirebaseUID", mock.Anything, "uid-4").Return(nil, repo.ErrNotFound)

	_, err := u.Sync(context.Background(), identity.Identity{UID: "uid-4"})
	assert.Equal(t, []string{"email"}, fieldsOf(err))
}

func TestAuthUsecase_Sync_DBError(t *testing.T) {
	users := new(UserRepoMock)
	u := NewAuthUsecase(users)
	users.On("FindByFirebaseUID", mock.Anything, "uid-5").Return(nil, errors.New("db down"))

	_, err := u.Sync(context.Background(), identity.Identity{UID: "uid-5", Email: "x@test.com"})
	assertHTTPError(t, err, http.StatusInternalServerError, "Server Error")
}

func TestAuthUsecase_ResolveCaller(t *testing.T) {
	users := new(UserRepoMock)
	u := NewAuthUsecase(users)
	users.On("FindByFirebaseUID", mock.Anything, "uid-1").
		Return(&model.User{ID: "u1", Email: "a@test.com", Role: model.RoleAdmin}, nil)
	users.On("FindByFirebaseUID", mock.Anything, "ghost").Return(nil, repo.ErrNotFound)

	c, err := u.ResolveCaller(context.Background(), identity.Identity{UID: "uid-1"})
	require.NoError(t, err)
	assert.Equal(t, access.Caller{ID: "u1", Email: "a@test.com", Role: model.RoleAdmin}, c)

	_, err = u.ResolveCaller(context.Background(), identity.Identity{UID: "ghost"})
	assertHTTPError(t, err, http.StatusNotFound, "User not found")
}

func TestAuthUsecase_ListUsers_AdminOnly(t *testing.T) {
	users := new(UserRepoMock)
	u := NewAuthUsecase(users)

	_, err := u.ListUsers(context.Background(), access.Caller{ID: "u1", Role: model.RoleClient})
	assertHTTPError(t, err, http.StatusForbidden, access.AdminRequired)

	users.On("List", mock.Anything).Return([]model.User{{ID: "u1"}, {ID: "u2"}}, nil)
	got, err := u.ListUsers(context.Background(), access.Caller{ID: "u2", Role: model.RoleAdmin})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestAuthUsecase_Me(t *testing.T) {
	users := new(UserRepoMock)
	u := NewAuthUsecase(users)
	users.On("FindByID", mock.Anything, "u1").Return(&model.User{ID: "u1"}, nil)

	_, err := u.Me(context.Background(), access.Caller{})
	assertHTTPError(t, err, http.StatusUnauthorized, "")

	got, err := u.Me(context.Background(), access.Caller{ID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
}
