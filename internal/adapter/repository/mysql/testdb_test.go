package mysql

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"loan-backoffice/internal/domain/borrower"
	"loan-backoffice/internal/domain/loan"
	"loan-backoffice/internal/domain/user"
	"loan-backoffice/internal/infrastructure/db"
)

// openTestDB creates an in-memory sqlite DB with the full schema.
// The domain models avoid engine-specific types, so they migrate as-is.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// one connection, otherwise every new conn sees an empty :memory: db
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func seedUser(t *testing.T, gdb *gorm.DB, username string, role user.Role) *user.User {
	t.Helper()
	u := &user.User{
		Username:     username,
		PasswordHash: "hash",
		Role:         role,
		Email:        username + "@example.com",
		FullName:     "Full " + username,
		Status:       user.StatusActive,
		Permissions:  user.DefaultPermissions,
	}
	if err := gdb.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedBorrower(t *testing.T, gdb *gorm.DB, username string) *borrower.Borrower {
	t.Helper()
	u := seedUser(t, gdb, username, user.RoleBorrower)
	b := &borrower.Borrower{
		UserID:           u.ID,
		PhoneNumber:      "0800",
		Address:          "1 Main St",
		EmploymentStatus: "employed",
		MonthlyIncome:    decimal.RequireFromString("4500.00"),
	}
	if err := gdb.Omit("User").Create(b).Error; err != nil {
		t.Fatalf("seed borrower: %v", err)
	}
	return b
}

func makeLoan(borrowerID uint64, amount string, status loan.Status, createdAt time.Time) *loan.Loan {
	return &loan.Loan{
		BorrowerID:   borrowerID,
		Amount:       decimal.RequireFromString(amount),
		Term:         12,
		InterestRate: decimal.RequireFromString("10.50"),
		Status:       status,
		Purpose:      "working capital",
		CreatedAt:    createdAt,
	}
}
