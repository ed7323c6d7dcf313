package borrower

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"loan-backoffice/internal/apperr"
	domain "loan-backoffice/internal/domain/borrower"
	"loan-backoffice/internal/domain/loan"
	"loan-backoffice/internal/domain/user"
	"loan-backoffice/internal/testutil/borrowermock"
	"loan-backoffice/internal/testutil/loanmock"
)

func TestList_PassesFilter(t *testing.T) {
	var got domain.Filter
	bs := &borrowermock.Repo{ListFn: func(_ context.Context, f domain.Filter) ([]domain.Borrower, int64, error) {
		got = f
		return nil, 0, nil
	}}
	res, err := NewUsecase(bs, &loanmock.Repo{}).List(context.Background(), "  ali ", 20, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got.Search != "ali" || got.Offset != 20 || got.Limit != 10 {
		t.Fatalf("filter = %+v", got)
	}
	if res.Borrowers == nil {
		t.Fatal("empty result should be a non-nil slice")
	}
}

func TestGet(t *testing.T) {
	b := &domain.Borrower{ID: 3, UserID: 1, User: &user.User{ID: 1, FullName: "Ali"}, MonthlyIncome: decimal.RequireFromString("4000")}
	bs := &borrowermock.Repo{GetByIDFn: func(_ context.Context, id uint64) (*domain.Borrower, error) {
		if id != 3 {
			return nil, domain.ErrNotFound
		}
		return b, nil
	}}
	ls := &loanmock.Repo{ListByBorrowerIDFn: func(_ context.Context, id uint64) ([]loan.Loan, error) {
		return []loan.Loan{{ID: 1, BorrowerID: id, Borrower: b}, {ID: 2, BorrowerID: id, Borrower: b}}, nil
	}}
	uc := NewUsecase(bs, ls)

	d, err := uc.Get(context.Background(), 3)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if d.User.FullName != "Ali" || len(d.Loans) != 2 || d.Loans[0].Borrower != nil {
		t.Fatalf("unexpected detail %+v", d)
	}

	_, err = uc.Get(context.Background(), 4)
	if !errors.Is(err, domain.ErrNotFound) || apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
