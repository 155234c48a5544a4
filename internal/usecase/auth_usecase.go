package usecase

import (
	"context"
	"net/http"

	"github.com/go-faster/errors"

	"storefront/internal/domain/access"
	"storefront/internal/domain/model"
	"storefront/internal/identity"
	repo "storefront/internal/repository"
)

// AuthUsecase mirrors identities from the external provider into local users
// and resolves request callers.
type AuthUsecase struct {
	users repo.UserRepository
}

// DI
func NewAuthUsecase(users repo.UserRepository) *AuthUsecase {
	return &AuthUsecase{users: users}
}

// Sync upserts the local user for a verified identity.
//
// Lookup order: subject id, then email (the subject id is re-linked, which
// happens when the provider account was recreated), then a new client user.
func (u *AuthUsecase) Sync(ctx context.Context, id identity.Identity) (*model.User, error) {
	if id.UID == "" {
		return nil, NewHTTPError(http.StatusUnauthorized, "Unauthorized: Invalid token")
	}

	user, err := u.users.FindByFirebaseUID(ctx, id.UID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, internalError(err)
	}

	if id.Email == "" {
		var fe fieldErrors
		fe.add("email", "Email is required")
		return nil, fe.err()
	}

	user, err = u.users.LinkFirebaseUID(ctx, id.Email, id.UID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, internalError(err)
	}

	user = &model.User{
		FirebaseUID: id.UID,
		Email:       id.Email,
		Role:        model.RoleClient,
	}
	if err := u.users.Create(ctx, user); err != nil {
		// 同時に sync された場合は相手が作ったユーザーを返す
		if errors.Is(err, repo.ErrConflict) {
			existing, findErr := u.users.FindByFirebaseUID(ctx, id.UID)
			if findErr == nil {
				return existing, nil
			}
		}
		return nil, internalError(err)
	}
	return user, nil
}

// ResolveCaller maps a verified identity to the local user acting on a
// request. Identities that were never synced are reported as not found.
func (u *AuthUsecase) ResolveCaller(ctx context.Context, id identity.Identity) (access.Caller, error) {
	user, err := u.users.FindByFirebaseUID(ctx, id.UID)
	if errors.Is(err, repo.ErrNotFound) {
		return access.Caller{}, NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		return access.Caller{}, internalError(err)
	}
	return access.Caller{ID: user.ID, Email: user.Email, Role: user.Role}, nil
}

func (u *AuthUsecase) Me(ctx context.Context, caller access.Caller) (*model.User, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	user, err := u.users.FindByID(ctx, caller.ID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		return nil, internalError(err)
	}
	return user, nil
}

// ListUsers is admin only.
func (u *AuthUsecase) ListUsers(ctx context.Context, caller access.Caller) ([]model.User, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, internalError(err)
	}
	return users, nil
}
