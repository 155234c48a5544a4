package repository

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type userGormRepository struct {
	db *gorm.DB
}

// DI
// main.goでこれをnewしてusecaseに注入します。
func NewUserGormRepository(db *gorm.DB) repo.UserRepository {
	return &userGormRepository{db: db}
}

func (r *userGormRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = model.RoleClient
	}
	return mapWriteErr(r.db.WithContext(ctx).Create(user).Error, "create user")
}

func (r *userGormRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userGormRepository) FindByFirebaseUID(ctx context.Context, uid string) (*model.User, error) {
	return r.first(ctx, "firebase_uid = ?", uid)
}

func (r *userGormRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *userGormRepository) first(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&u).Error; err != nil {
		return nil, mapReadErr(err, "find user")
	}
	return &u, nil
}

func (r *userGormRepository) LinkFirebaseUID(ctx context.Context, email string, uid string) (*model.User, error) {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("email = ?", email).
		Update("firebase_uid", uid)
	if res.Error != nil {
		return nil, mapWriteErr(res.Error, "link firebase uid")
	}
	// 0件更新は「対象がない」
	if res.RowsAffected == 0 {
		return nil, repo.ErrNotFound
	}
	return r.FindByEmail(ctx, email)
}

func (r *userGormRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	return users, nil
}
