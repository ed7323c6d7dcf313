package uow

import (
	"context"

	"loan-backoffice/internal/domain/borrower"
	"loan-backoffice/internal/domain/document"
	"loan-backoffice/internal/domain/loan"
	"loan-backoffice/internal/domain/payment"
	"loan-backoffice/internal/domain/user"
)

// Repos are bound to the same transaction.
type Repos struct {
	Users     user.Repository
	Borrowers borrower.Repository
	Loans     loan.Repository
	Payments  payment.Repository
	Documents document.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the loan row first, then pass it in
	WithinLoanTx(ctx context.Context, loanID uint64, fn func(r Repos, l *loan.Loan) error) error
}
