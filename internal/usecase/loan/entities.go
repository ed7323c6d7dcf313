package loan

import (
	"time"

	"github.com/shopspring/decimal"

	"loan-backoffice/internal/domain/loan"
	"loan-backoffice/internal/domain/payment"
)

// DefaultInterestRate applies to loans requested through the customer portal.
var DefaultInterestRate = decimal.RequireFromString("12.00")

type CreateLoanInput struct {
	BorrowerID   uint64
	Amount       decimal.Decimal
	InterestRate decimal.Decimal
	Term         int
	Purpose      string
}

type ApplyInput struct {
	UserID  uint64
	Amount  decimal.Decimal
	Term    int
	Purpose string
}

type UpdateStatusInput struct {
	LoanID  uint64
	Status  loan.Status
	ActorID uint64
}

type RecordPaymentInput struct {
	LoanID      uint64
	Amount      decimal.Decimal
	PaymentDate time.Time
}

type UpdatePaymentStatusInput struct {
	PaymentID uint64
	Status    payment.Status
}

// ListInput carries raw query values; an unknown Status is ignored.
type ListInput struct {
	Status string
	From   time.Time
	To     time.Time
	Offset int
	Limit  int
}

// LoanDTO is a loan plus the figures computed from its payments on read.
type LoanDTO struct {
	loan.Loan
	TotalPaid  decimal.Decimal `json:"totalPaid"`
	BalanceDue decimal.Decimal `json:"balanceDue"`
}

type ListResult struct {
	Loans []LoanDTO
	Total int64
}

func toDTO(l loan.Loan) LoanDTO {
	paid := payment.TotalPaid(l.Payments)
	due := l.Amount.Sub(paid)
	if due.IsNegative() {
		due = decimal.Zero
	}
	return LoanDTO{Loan: l, TotalPaid: paid, BalanceDue: due}
}

func toDTOs(ls []loan.Loan) []LoanDTO {
	out := make([]LoanDTO, 0, len(ls))
	for _, l := range ls {
		out = append(out, toDTO(l))
	}
	return out
}
