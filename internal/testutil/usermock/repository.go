package usermock

import (
	"context"
	"errors"
	"time"

	domain "loan-backoffice/internal/domain/user"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("usermock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn         func(ctx context.Context, u *domain.User) error
	GetByIDFn        func(ctx context.Context, id uint64) (*domain.User, error)
	GetByUsernameFn  func(ctx context.Context, username string) (*domain.User, error)
	GetByEmailFn     func(ctx context.Context, email string) (*domain.User, error)
	ListFn           func(ctx context.Context) ([]domain.User, error)
	SaveFn           func(ctx context.Context, u *domain.User) error
	TouchLastLoginFn func(ctx context.Context, id uint64, at time.Time) error
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, errUnimplemented
}

func (m *Repo) List(ctx context.Context) ([]domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, errUnimplemented
}

func (m *Repo) Save(ctx context.Context, u *domain.User) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, u)
	}
	return nil
}

func (m *Repo) TouchLastLogin(ctx context.Context, id uint64, at time.Time) error {
	if m.TouchLastLoginFn != nil {
		return m.TouchLastLoginFn(ctx, id, at)
	}
	return nil
}
