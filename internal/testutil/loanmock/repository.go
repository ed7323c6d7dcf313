package loanmock

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	domain "loan-backoffice/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("loanmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to a nil error; reads default to errUnimplemented.
type Repo struct {
	CreateFn           func(ctx context.Context, l *domain.Loan) error
	GetByIDFn          func(ctx context.Context, id uint64) (*domain.Loan, error)
	GetByIDForUpdateFn func(ctx context.Context, id uint64) (*domain.Loan, error)
	SaveFn             func(ctx context.Context, l *domain.Loan) error
	ListFn             func(ctx context.Context, f domain.Filter) ([]domain.Loan, int64, error)
	ListByBorrowerIDFn func(ctx context.Context, borrowerID uint64) ([]domain.Loan, error)
	CountFn            func(ctx context.Context, f domain.Filter) (int64, error)
	SumAmountFn        func(ctx context.Context, f domain.Filter) (decimal.Decimal, error)
	CountByStatusFn    func(ctx context.Context) ([]domain.StatusCount, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Loan, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, 0, errUnimplemented
}

func (m *Repo) ListByBorrowerID(ctx context.Context, borrowerID uint64) ([]domain.Loan, error) {
	if m.ListByBorrowerIDFn != nil {
		return m.ListByBorrowerIDFn(ctx, borrowerID)
	}
	return nil, errUnimplemented
}

func (m *Repo) Count(ctx context.Context, f domain.Filter) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, f)
	}
	return 0, errUnimplemented
}

func (m *Repo) SumAmount(ctx context.Context, f domain.Filter) (decimal.Decimal, error) {
	if m.SumAmountFn != nil {
		return m.SumAmountFn(ctx, f)
	}
	return decimal.Zero, errUnimplemented
}

func (m *Repo) CountByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx)
	}
	return nil, errUnimplemented
}
