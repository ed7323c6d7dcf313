package loan

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	// GetByID preloads the borrower (with user) and payments.
	GetByID(ctx context.Context, id uint64) (*Loan, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Loan, error)
	Save(ctx context.Context, l *Loan) error
	List(ctx context.Context, f Filter) ([]Loan, int64, error)
	ListByBorrowerID(ctx context.Context, borrowerID uint64) ([]Loan, error)

	// Aggregates
	Count(ctx context.Context, f Filter) (int64, error)
	SumAmount(ctx context.Context, f Filter) (decimal.Decimal, error)
	CountByStatus(ctx context.Context) ([]StatusCount, error)
}
