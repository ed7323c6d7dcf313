package loan

import (
	"time"

	"github.com/shopspring/decimal"

	"loan-backoffice/internal/apperr"
	"loan-backoffice/internal/domain/borrower"
	"loan-backoffice/internal/domain/payment"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusDefaulted Status = "defaulted"
)

var Statuses = []Status{StatusPending, StatusApproved, StatusRejected, StatusActive, StatusCompleted, StatusDefaulted}

func (s Status) Valid() bool {
	for _, x := range Statuses {
		if s == x {
			return true
		}
	}
	return false
}

var (
	ErrNotFound      = apperr.NotFound("Loan not found")
	ErrInvalidStatus = apperr.Validation("Invalid status")
)

type Loan struct {
	ID           uint64             `gorm:"primaryKey;column:id" json:"id"`
	BorrowerID   uint64             `gorm:"column:borrower_id;not null;index:idx_loans_borrower_id" json:"borrowerId"`
	Borrower     *borrower.Borrower `gorm:"foreignKey:BorrowerID" json:"borrower,omitempty"`
	Amount       decimal.Decimal    `gorm:"column:amount;type:decimal(12,2);not null" json:"amount"`
	Term         int                `gorm:"column:term;not null" json:"term"`
	InterestRate decimal.Decimal    `gorm:"column:interest_rate;type:decimal(5,2);not null" json:"interestRate"`
	Status       Status             `gorm:"column:status;type:varchar(16);not null;default:pending;index:idx_loans_status" json:"status"`
	Purpose      string             `gorm:"column:purpose;type:text;not null" json:"purpose"`
	ApprovedBy   *uint64            `gorm:"column:approved_by" json:"approvedBy"`
	ApprovedAt   *time.Time         `gorm:"column:approved_at" json:"approvedAt"`
	Payments     []payment.Payment  `gorm:"foreignKey:LoanID" json:"payments,omitempty"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime;index:idx_loans_created_at" json:"createdAt"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Loan) TableName() string { return "loans" }

// Filter narrows loan listings and aggregates. Zero values mean "no constraint".
type Filter struct {
	Status Status
	From   time.Time
	To     time.Time
	Offset int
	Limit  int
}

type StatusCount struct {
	Status Status
	Count  int64
}
