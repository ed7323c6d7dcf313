package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	borrowerDomain "loan-backoffice/internal/domain/borrower"
	loanDomain "loan-backoffice/internal/domain/loan"
	"loan-backoffice/internal/domain/uow"
	userDomain "loan-backoffice/internal/domain/user"
)

func newRegistration(username string) (*userDomain.User, *borrowerDomain.Borrower) {
	u := &userDomain.User{
		Username: username, PasswordHash: "h", Role: userDomain.RoleBorrower,
		Email: username + "@example.com", FullName: username, Status: userDomain.StatusActive,
		Permissions: userDomain.DefaultPermissions,
	}
	b := &borrowerDomain.Borrower{
		PhoneNumber: "1", Address: "a", EmploymentStatus: "employed",
		MonthlyIncome: decimal.RequireFromString("1000"),
	}
	return u, b
}

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	gdb := openTestDB(t)
	ctx := context.Background()
	guow := NewGormUoW(gdb)

	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		u, b := newRegistration("nina")
		if err := r.Users.Create(ctx, u); err != nil {
			return err
		}
		b.UserID = u.ID
		return r.Borrowers.Create(ctx, b)
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	u, err := NewUserRepository(gdb).GetByUsername(ctx, "nina")
	if err != nil {
		t.Fatalf("user not visible after commit: %v", err)
	}
	if _, err := NewBorrowerRepository(gdb).GetByUserID(ctx, u.ID); err != nil {
		t.Fatalf("borrower not visible after commit: %v", err)
	}
}

func TestGormUoW_WithinTx_RollbackLeavesNoUser(t *testing.T) {
	gdb := openTestDB(t)
	ctx := context.Background()
	guow := NewGormUoW(gdb)
	sentinel := errors.New("borrower insert failed")

	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		u, _ := newRegistration("oscar")
		if err := r.Users.Create(ctx, u); err != nil {
			return err
		}
		return sentinel // second write fails
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("WithinTx err = %v", err)
	}
	if _, err := NewUserRepository(gdb).GetByUsername(ctx, "oscar"); !errors.Is(err, userDomain.ErrNotFound) {
		t.Fatalf("expected user absent after rollback, got %v", err)
	}
}

func TestGormUoW_WithinLoanTx_Commit(t *testing.T) {
	gdb := openTestDB(t)
	ctx := context.Background()
	guow := NewGormUoW(gdb)
	b := seedBorrower(t, gdb, "pam")
	seed := makeLoan(b.ID, "1500.00", loanDomain.StatusPending, time.Now().UTC())
	if err := gdb.Create(seed).Error; err != nil {
		t.Fatalf("seed loan: %v", err)
	}

	err := guow.WithinLoanTx(ctx, seed.ID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l == nil || l.ID != seed.ID || l.Status != loanDomain.StatusPending {
			t.Fatalf("unexpected loan passed to fn: %+v", l)
		}
		l.Status = loanDomain.StatusRejected
		return r.Loans.Save(ctx, l)
	})
	if err != nil {
		t.Fatalf("WithinLoanTx commit err: %v", err)
	}

	got, err := NewLoanRepository(gdb).GetByID(ctx, seed.ID)
	if err != nil {
		t.Fatalf("GetByID post-commit: %v", err)
	}
	if got.Status != loanDomain.StatusRejected {
		t.Fatalf("loan status not updated, got=%s", got.Status)
	}
}

func TestGormUoW_WithinLoanTx_Rollback(t *testing.T) {
	gdb := openTestDB(t)
	ctx := context.Background()
	guow := NewGormUoW(gdb)
	b := seedBorrower(t, gdb, "quinn")
	seed := makeLoan(b.ID, "1500.00", loanDomain.StatusPending, time.Now().UTC())
	if err := gdb.Create(seed).Error; err != nil {
		t.Fatalf("seed loan: %v", err)
	}
	sentinel := errors.New("stop")

	_ = guow.WithinLoanTx(ctx, seed.ID, func(r uow.Repos, l *loanDomain.Loan) error {
		l.Status = loanDomain.StatusApproved
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		return sentinel // force rollback
	})

	got, err := NewLoanRepository(gdb).GetByID(ctx, seed.ID)
	if err != nil {
		t.Fatalf("post-rollback GetByID: %v", err)
	}
	if got.Status != loanDomain.StatusPending {
		t.Fatalf("expected pending after rollback, got %s", got.Status)
	}
}

func TestGormUoW_WithinLoanTx_LoanNotFound(t *testing.T) {
	guow := NewGormUoW(openTestDB(t))

	err := guow.WithinLoanTx(context.Background(), 12345, func(r uow.Repos, l *loanDomain.Loan) error {
		t.Fatalf("callback should not be called when loan missing")
		return nil
	})
	if !errors.Is(err, loanDomain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
