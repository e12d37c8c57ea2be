package repository

import (
	"context"
	"errors"

	"quickchat/internal/domain/user"
	quickchat_errors "quickchat/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, u *user.User) error {
	res := r.db.WithContext(ctx).Create(u)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return quickchat_errors.ErrConflict
		}
		return res.Error
	}
	return nil
}

func (r *GormUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, quickchat_errors.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, quickchat_errors.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *GormUserRepository) ListExcept(ctx context.Context, id uuid.UUID) ([]user.User, error) {
	var users []user.User
	err := r.db.WithContext(ctx).
		Where("id <> ?", id).
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormUserRepository) Update(ctx context.Context, u user.User) error {
	res := r.db.WithContext(ctx).Save(&u)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return quickchat_errors.ErrNotFound
	}
	return nil
}
