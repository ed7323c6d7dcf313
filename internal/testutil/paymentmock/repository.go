package paymentmock

import (
	"context"
	"errors"

	domain "loan-backoffice/internal/domain/payment"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("paymentmock: method not implemented")

type Repo struct {
	CreateFn       func(ctx context.Context, p *domain.Payment) error
	GetByIDFn      func(ctx context.Context, id uint64) (*domain.Payment, error)
	SaveFn         func(ctx context.Context, p *domain.Payment) error
	ListByLoanIDFn func(ctx context.Context, loanID uint64) ([]domain.Payment, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Payment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Payment, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) Save(ctx context.Context, p *domain.Payment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID uint64) ([]domain.Payment, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, errUnimplemented
}
