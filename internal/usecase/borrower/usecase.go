package borrower

import (
	"context"
	"strings"

	"loan-backoffice/internal/apperr"
	"loan-backoffice/internal/domain/borrower"
	"loan-backoffice/internal/domain/loan"
)

// Detail is a borrower with its user and every loan it holds.
type Detail struct {
	borrower.Borrower
	Loans []loan.Loan `json:"loans"`
}

type ListResult struct {
	Borrowers []borrower.Borrower
	Total     int64
}

type Usecase struct {
	borrowers borrower.Repository
	loans     loan.Repository
}

func NewUsecase(borrowers borrower.Repository, loans loan.Repository) *Usecase {
	return &Usecase{borrowers: borrowers, loans: loans}
}

func (u *Usecase) List(ctx context.Context, search string, offset, limit int) (*ListResult, error) {
	bs, total, err := u.borrowers.List(ctx, borrower.Filter{Search: strings.TrimSpace(search), Offset: offset, Limit: limit})
	if err != nil {
		return nil, apperr.Internal("list borrowers", err)
	}
	if bs == nil {
		bs = []borrower.Borrower{}
	}
	return &ListResult{Borrowers: bs, Total: total}, nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*Detail, error) {
	b, err := u.borrowers.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap("load borrower", err)
	}
	ls, err := u.loans.ListByBorrowerID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("list loans", err)
	}
	for i := range ls {
		// the parent is already in the response
		ls[i].Borrower = nil
	}
	if ls == nil {
		ls = []loan.Loan{}
	}
	return &Detail{Borrower: *b, Loans: ls}, nil
}
