package loan

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"loan-backoffice/internal/apperr"
	"loan-backoffice/internal/domain/borrower"
	"loan-backoffice/internal/domain/loan"
	"loan-backoffice/internal/domain/payment"
	"loan-backoffice/internal/domain/uow"
)

var errInvalidLoan = apperr.Validation("Amount and term must be positive")

type Usecase struct {
	loans     loan.Repository
	borrowers borrower.Repository
	payments  payment.Repository
	uow       uow.UnitOfWork
	log       *logrus.Logger
	now       func() time.Time
}

func NewUsecase(loans loan.Repository, borrowers borrower.Repository, payments payment.Repository, tx uow.UnitOfWork, log *logrus.Logger) *Usecase {
	return &Usecase{loans: loans, borrowers: borrowers, payments: payments, uow: tx, log: log, now: time.Now}
}

func (u *Usecase) List(ctx context.Context, in ListInput) (*ListResult, error) {
	f := loan.Filter{From: in.From, To: in.To, Offset: in.Offset, Limit: in.Limit}
	if s := loan.Status(in.Status); s.Valid() {
		f.Status = s
	}
	ls, total, err := u.loans.List(ctx, f)
	if err != nil {
		return nil, apperr.Wrap("list loans", err)
	}
	return &ListResult{Loans: toDTOs(ls), Total: total}, nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*LoanDTO, error) {
	l, err := u.loans.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap("load loan", err)
	}
	dto := toDTO(*l)
	return &dto, nil
}

func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*loan.Loan, error) {
	if !in.Amount.IsPositive() || in.Term <= 0 {
		return nil, errInvalidLoan
	}
	if _, err := u.borrowers.GetByID(ctx, in.BorrowerID); err != nil {
		return nil, apperr.Wrap("load borrower", err)
	}
	return u.create(ctx, in)
}

func (u *Usecase) create(ctx context.Context, in CreateLoanInput) (*loan.Loan, error) {
	l := &loan.Loan{
		BorrowerID:   in.BorrowerID,
		Amount:       in.Amount,
		Term:         in.Term,
		InterestRate: in.InterestRate,
		Status:       loan.StatusPending,
		Purpose:      strings.TrimSpace(in.Purpose),
	}
	if err := u.loans.Create(ctx, l); err != nil {
		return nil, apperr.Internal("create loan", err)
	}
	u.log.WithFields(logrus.Fields{"loan_id": l.ID, "borrower_id": l.BorrowerID}).Info("loan created")
	return l, nil
}

// UpdateStatus accepts any enumerated status from any other and stamps the
// approver when the new status is approved.
func (u *Usecase) UpdateStatus(ctx context.Context, in UpdateStatusInput) (*loan.Loan, error) {
	if !in.Status.Valid() {
		return nil, loan.ErrInvalidStatus
	}
	var out *loan.Loan
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loan.Loan) error {
		prev := l.Status
		l.Status = in.Status
		if in.Status == loan.StatusApproved {
			now := u.now().UTC()
			actor := in.ActorID
			l.ApprovedBy = &actor
			l.ApprovedAt = &now
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		u.log.WithFields(logrus.Fields{"loan_id": l.ID, "from": prev, "to": l.Status, "actor": in.ActorID}).Info("loan status changed")
		out = l
		return nil
	})
	if err != nil {
		return nil, apperr.Wrap("update loan status", err)
	}
	return out, nil
}

// RecordPayment stores a pending payment. The loan's status and balance are left alone.
func (u *Usecase) RecordPayment(ctx context.Context, in RecordPaymentInput) (*payment.Payment, error) {
	if !in.Amount.IsPositive() {
		return nil, apperr.Validation("Amount must be positive")
	}
	if _, err := u.loans.GetByID(ctx, in.LoanID); err != nil {
		return nil, apperr.Wrap("load loan", err)
	}
	p := &payment.Payment{
		LoanID:      in.LoanID,
		Amount:      in.Amount,
		PaymentDate: in.PaymentDate.UTC(),
		Status:      payment.StatusPending,
	}
	if err := u.payments.Create(ctx, p); err != nil {
		return nil, apperr.Internal("record payment", err)
	}
	u.log.WithFields(logrus.Fields{"loan_id": in.LoanID, "payment_id": p.ID}).Info("payment recorded")
	return p, nil
}

func (u *Usecase) ListPayments(ctx context.Context, loanID uint64) ([]payment.Payment, error) {
	if _, err := u.loans.GetByID(ctx, loanID); err != nil {
		return nil, apperr.Wrap("load loan", err)
	}
	ps, err := u.payments.ListByLoanID(ctx, loanID)
	if err != nil {
		return nil, apperr.Internal("list payments", err)
	}
	return ps, nil
}

func (u *Usecase) UpdatePaymentStatus(ctx context.Context, in UpdatePaymentStatusInput) (*payment.Payment, error) {
	if !in.Status.Valid() {
		return nil, payment.ErrInvalidStatus
	}
	p, err := u.payments.GetByID(ctx, in.PaymentID)
	if err != nil {
		return nil, apperr.Wrap("load payment", err)
	}
	p.Status = in.Status
	if err := u.payments.Save(ctx, p); err != nil {
		return nil, apperr.Internal("save payment", err)
	}
	return p, nil
}

// CustomerLoans lists the caller's own loans. A user without a borrower profile has none.
func (u *Usecase) CustomerLoans(ctx context.Context, userID uint64) ([]LoanDTO, error) {
	b, err := u.borrowers.GetByUserID(ctx, userID)
	if errors.Is(err, borrower.ErrNotFound) {
		return []LoanDTO{}, nil
	}
	if err != nil {
		return nil, apperr.Internal("load borrower", err)
	}
	ls, err := u.loans.ListByBorrowerID(ctx, b.ID)
	if err != nil {
		return nil, apperr.Internal("list loans", err)
	}
	return toDTOs(ls), nil
}

// Apply opens a pending loan for the caller's borrower profile at the default rate.
func (u *Usecase) Apply(ctx context.Context, in ApplyInput) (*loan.Loan, error) {
	if !in.Amount.IsPositive() || in.Term <= 0 {
		return nil, errInvalidLoan
	}
	b, err := u.borrowers.GetByUserID(ctx, in.UserID)
	if err != nil {
		return nil, apperr.Wrap("load borrower", err)
	}
	return u.create(ctx, CreateLoanInput{
		BorrowerID:   b.ID,
		Amount:       in.Amount,
		InterestRate: DefaultInterestRate,
		Term:         in.Term,
		Purpose:      in.Purpose,
	})
}
