package borrower

import (
	"time"

	"github.com/shopspring/decimal"

	"loan-backoffice/internal/apperr"
	"loan-backoffice/internal/domain/user"
)

var ErrNotFound = apperr.NotFound("borrower not found")

// Borrower is the customer profile owned by exactly one user.
type Borrower struct {
	ID               uint64          `gorm:"primaryKey;column:id" json:"id"`
	UserID           uint64          `gorm:"column:user_id;not null;uniqueIndex:ux_borrowers_user_id" json:"userId"`
	User             *user.User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"user,omitempty"`
	PhoneNumber      string          `gorm:"column:phone_number;size:32;not null" json:"phoneNumber"`
	Address          string          `gorm:"column:address;size:300;not null" json:"address"`
	EmploymentStatus string          `gorm:"column:employment_status;size:50;not null" json:"employmentStatus"`
	MonthlyIncome    decimal.Decimal `gorm:"column:monthly_income;type:decimal(12,2);not null" json:"monthlyIncome"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (Borrower) TableName() string { return "borrowers" }

type Filter struct {
	// Search matches the owning user's full name or email.
	Search string
	Offset int
	Limit  int
}
