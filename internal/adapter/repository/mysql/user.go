package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	userDomain "loan-backoffice/internal/domain/user"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *userDomain.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return userDomain.ErrDuplicate
	}
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*userDomain.User, error) {
	var out userDomain.User
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, notFound(err, userDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*userDomain.User, error) {
	var out userDomain.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&out).Error; err != nil {
		return nil, notFound(err, userDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	var out userDomain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&out).Error; err != nil {
		return nil, notFound(err, userDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *UserRepository) List(ctx context.Context) ([]userDomain.User, error) {
	var out []userDomain.User
	err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *UserRepository) Save(ctx context.Context, u *userDomain.User) error {
	err := r.db.WithContext(ctx).Save(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return userDomain.ErrDuplicate
	}
	return err
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id uint64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&userDomain.User{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}
