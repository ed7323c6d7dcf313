package payment

import "context"

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id uint64) (*Payment, error)
	Save(ctx context.Context, p *Payment) error
	ListByLoanID(ctx context.Context, loanID uint64) ([]Payment, error)
}
