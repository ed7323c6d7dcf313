package borrowermock

import (
	"context"
	"errors"

	domain "loan-backoffice/internal/domain/borrower"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("borrowermock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn      func(ctx context.Context, b *domain.Borrower) error
	GetByIDFn     func(ctx context.Context, id uint64) (*domain.Borrower, error)
	GetByUserIDFn func(ctx context.Context, userID uint64) (*domain.Borrower, error)
	ListFn        func(ctx context.Context, f domain.Filter) ([]domain.Borrower, int64, error)
	CountFn       func(ctx context.Context) (int64, error)
}

func (m *Repo) Create(ctx context.Context, b *domain.Borrower) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, b)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Borrower, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByUserID(ctx context.Context, userID uint64) (*domain.Borrower, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, errUnimplemented
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Borrower, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, 0, errUnimplemented
}

func (m *Repo) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, errUnimplemented
}
