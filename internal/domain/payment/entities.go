package payment

import (
	"time"

	"github.com/shopspring/decimal"

	"loan-backoffice/internal/apperr"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted || s == StatusFailed
}

var (
	ErrNotFound      = apperr.NotFound("payment not found")
	ErrInvalidStatus = apperr.Validation("Invalid status")
)

type Payment struct {
	ID          uint64          `gorm:"primaryKey;column:id" json:"id"`
	LoanID      uint64          `gorm:"column:loan_id;not null;index:idx_payments_loan_id" json:"loanId"`
	Amount      decimal.Decimal `gorm:"column:amount;type:decimal(12,2);not null" json:"amount"`
	PaymentDate time.Time       `gorm:"column:payment_date;not null" json:"paymentDate"`
	Status      Status          `gorm:"column:status;type:varchar(16);not null;default:pending" json:"status"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (Payment) TableName() string { return "payments" }

// TotalPaid sums every payment that has not failed.
func TotalPaid(ps []Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range ps {
		if p.Status == StatusFailed {
			continue
		}
		total = total.Add(p.Amount)
	}
	return total
}
