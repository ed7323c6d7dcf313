package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	loanDomain "loan-backoffice/internal/domain/loan"
	"loan-backoffice/internal/domain/payment"
)

func TestLoanRepository_CreateAndGetByID(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewLoanRepository(gdb)
	ctx := context.Background()
	b := seedBorrower(t, gdb, "gina")

	l := makeLoan(b.ID, "10000.00", loanDomain.StatusPending, time.Now().UTC())
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if l.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}
	if err := gdb.Create(&payment.Payment{
		LoanID: l.ID, Amount: decimal.RequireFromString("250.25"),
		PaymentDate: time.Now().UTC(), Status: payment.StatusCompleted,
	}).Error; err != nil {
		t.Fatal(err)
	}

	got, err := repo.GetByID(ctx, l.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.Amount.Equal(decimal.RequireFromString("10000")) {
		t.Errorf("Amount = %s", got.Amount)
	}
	if got.Borrower == nil || got.Borrower.User == nil || got.Borrower.User.Username != "gina" {
		t.Errorf("borrower/user not preloaded: %+v", got.Borrower)
	}
	if len(got.Payments) != 1 || !got.Payments[0].Amount.Equal(decimal.RequireFromString("250.25")) {
		t.Errorf("payments not preloaded: %+v", got.Payments)
	}
}

func TestLoanRepository_NotFound(t *testing.T) {
	repo := NewLoanRepository(openTestDB(t))
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, 42); !errors.Is(err, loanDomain.ErrNotFound) {
		t.Fatalf("GetByID err = %v, want ErrNotFound", err)
	}
	if _, err := repo.GetByIDForUpdate(ctx, 42); !errors.Is(err, loanDomain.ErrNotFound) {
		t.Fatalf("GetByIDForUpdate err = %v, want ErrNotFound", err)
	}
}

func TestLoanRepository_SaveUpdates(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewLoanRepository(gdb)
	ctx := context.Background()
	b := seedBorrower(t, gdb, "hank")

	l := makeLoan(b.ID, "500.00", loanDomain.StatusPending, time.Now().UTC())
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, _ := repo.GetByID(ctx, l.ID)
	approver := uint64(7)
	now := time.Now().UTC()
	got.Status = loanDomain.StatusApproved
	got.ApprovedBy = &approver
	got.ApprovedAt = &now
	if err := repo.Save(ctx, got); err != nil {
		t.Fatalf("Save: %v", err)
	}

	again, _ := repo.GetByID(ctx, l.ID)
	if again.Status != loanDomain.StatusApproved || again.ApprovedBy == nil || *again.ApprovedBy != 7 {
		t.Fatalf("update not persisted: %+v", again)
	}
}

func TestLoanRepository_ListAndAggregates(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewLoanRepository(gdb)
	ctx := context.Background()
	b1 := seedBorrower(t, gdb, "ivan")
	b2 := seedBorrower(t, gdb, "judy")

	jan := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	for _, l := range []*loanDomain.Loan{
		makeLoan(b1.ID, "1000.25", loanDomain.StatusPending, jan),
		makeLoan(b1.ID, "2000.50", loanDomain.StatusDefaulted, feb),
		makeLoan(b2.ID, "3000.25", loanDomain.StatusPending, feb),
	} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	pending, total, err := repo.List(ctx, loanDomain.Filter{Status: loanDomain.StatusPending})
	if err != nil || total != 2 || len(pending) != 2 {
		t.Fatalf("List pending = %d/%d, err %v", len(pending), total, err)
	}
	paged, total, err := repo.List(ctx, loanDomain.Filter{Limit: 1, Offset: 1})
	if err != nil || total != 3 || len(paged) != 1 {
		t.Fatalf("List paged = %d/%d, err %v", len(paged), total, err)
	}

	febOnly := loanDomain.Filter{From: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), To: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	sum, err := repo.SumAmount(ctx, febOnly)
	if err != nil {
		t.Fatalf("SumAmount: %v", err)
	}
	if !sum.Equal(decimal.RequireFromString("5000.75")) {
		t.Fatalf("SumAmount(feb) = %s, want 5000.75", sum)
	}
	all, _ := repo.SumAmount(ctx, loanDomain.Filter{})
	if !all.Equal(decimal.RequireFromString("6001.00")) {
		t.Fatalf("SumAmount(all) = %s, want 6001.00", all)
	}

	defaulted, err := repo.Count(ctx, loanDomain.Filter{Status: loanDomain.StatusDefaulted})
	if err != nil || defaulted != 1 {
		t.Fatalf("Count(defaulted) = %d, err %v", defaulted, err)
	}

	byStatus, err := repo.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	got := map[loanDomain.Status]int64{}
	for _, sc := range byStatus {
		got[sc.Status] = sc.Count
	}
	if got[loanDomain.StatusPending] != 2 || got[loanDomain.StatusDefaulted] != 1 {
		t.Fatalf("CountByStatus = %v", got)
	}

	mine, err := repo.ListByBorrowerID(ctx, b1.ID)
	if err != nil || len(mine) != 2 {
		t.Fatalf("ListByBorrowerID = %d, err %v", len(mine), err)
	}
}

func TestLoanRepository_SumAmountEmpty(t *testing.T) {
	repo := NewLoanRepository(openTestDB(t))
	sum, err := repo.SumAmount(context.Background(), loanDomain.Filter{})
	if err != nil {
		t.Fatalf("SumAmount: %v", err)
	}
	if !sum.IsZero() {
		t.Fatalf("SumAmount on empty table = %s, want 0", sum)
	}
}
