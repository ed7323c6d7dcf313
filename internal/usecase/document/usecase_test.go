package document

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"loan-backoffice/internal/domain/borrower"
	domain "loan-backoffice/internal/domain/document"
	"loan-backoffice/internal/domain/loan"
	"loan-backoffice/internal/domain/user"
	"loan-backoffice/internal/testutil/borrowermock"
	"loan-backoffice/internal/testutil/documentmock"
	"loan-backoffice/internal/testutil/loanmock"
)

func quietLog() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func ptr(v uint64) *uint64 { return &v }

func newUsecase(docs *documentmock.Repo) *Usecase {
	borrowers := &borrowermock.Repo{GetByIDFn: func(_ context.Context, id uint64) (*borrower.Borrower, error) {
		switch id {
		case 1:
			return &borrower.Borrower{ID: 1, UserID: 100}, nil
		case 2:
			return &borrower.Borrower{ID: 2, UserID: 200}, nil
		}
		return nil, borrower.ErrNotFound
	}}
	loans := &loanmock.Repo{GetByIDFn: func(_ context.Context, id uint64) (*loan.Loan, error) {
		switch id {
		case 10:
			return &loan.Loan{ID: 10, BorrowerID: 1}, nil
		case 20:
			return &loan.Loan{ID: 20, BorrowerID: 2}, nil
		}
		return nil, loan.ErrNotFound
	}}
	return NewUsecase(docs, borrowers, loans, quietLog())
}

func TestUpload(t *testing.T) {
	base := UploadInput{
		ActorID: 100, ActorRole: user.RoleBorrower, BorrowerID: 1,
		DocumentType: domain.TypeIDProof, FileName: "id.png", FileURL: "https://files/id.png",
	}
	tests := []struct {
		name    string
		mutate  func(*UploadInput)
		wantErr error
	}{
		{name: "borrower uploads own document"},
		{name: "with own loan", mutate: func(in *UploadInput) { in.LoanID = ptr(10) }},
		{name: "staff uploads for anyone", mutate: func(in *UploadInput) { in.ActorID = 5; in.ActorRole = user.RoleOfficeAdmin; in.BorrowerID = 2 }},
		{name: "borrower uploads for someone else", mutate: func(in *UploadInput) { in.BorrowerID = 2 }, wantErr: ErrNotOwnProfile},
		{name: "loan of another borrower", mutate: func(in *UploadInput) { in.LoanID = ptr(20) }, wantErr: ErrLoanMismatch},
		{name: "unknown loan", mutate: func(in *UploadInput) { in.LoanID = ptr(30) }, wantErr: loan.ErrNotFound},
		{name: "unknown borrower", mutate: func(in *UploadInput) { in.BorrowerID = 9 }, wantErr: borrower.ErrNotFound},
		{name: "bad type", mutate: func(in *UploadInput) { in.DocumentType = "selfie" }, wantErr: ErrInvalidType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			if tt.mutate != nil {
				tt.mutate(&in)
			}
			var created *domain.Document
			docs := &documentmock.Repo{CreateFn: func(_ context.Context, d *domain.Document) error { created = d; return nil }}

			d, err := newUsecase(docs).Upload(context.Background(), in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				if created != nil {
					t.Fatal("nothing may be written on failure")
				}
				return
			}
			if err != nil {
				t.Fatalf("Upload: %v", err)
			}
			if d.OCRStatus != domain.OCRPending || d.VerificationStatus != domain.VerificationPending || d.BorrowerID != in.BorrowerID {
				t.Fatalf("unexpected document %+v", d)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	now := time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC)
	docs := &documentmock.Repo{GetByIDFn: func(_ context.Context, id uint64) (*domain.Document, error) {
		if id != 4 {
			return nil, domain.ErrNotFound
		}
		return &domain.Document{ID: 4, VerificationStatus: domain.VerificationPending}, nil
	}}
	uc := newUsecase(docs)
	uc.now = func() time.Time { return now }

	d, err := uc.Verify(context.Background(), VerifyInput{DocumentID: 4, Status: domain.VerificationVerified, ActorID: 7})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if d.VerificationStatus != domain.VerificationVerified || *d.VerifiedBy != 7 || !d.VerifiedAt.Equal(now) {
		t.Fatalf("unexpected document %+v", d)
	}
	if _, err := uc.Verify(context.Background(), VerifyInput{DocumentID: 4, Status: "maybe"}); !errors.Is(err, ErrInvalidVerdict) {
		t.Fatalf("err = %v, want ErrInvalidVerdict", err)
	}
	if _, err := uc.Verify(context.Background(), VerifyInput{DocumentID: 5, Status: domain.VerificationRejected}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListByBorrower(t *testing.T) {
	docs := &documentmock.Repo{ListByBorrowerIDFn: func(context.Context, uint64) ([]domain.Document, error) { return nil, nil }}
	uc := newUsecase(docs)
	got, err := uc.ListByBorrower(context.Background(), 1)
	if err != nil || got == nil {
		t.Fatalf("got %v, %v", got, err)
	}
	if _, err := uc.ListByBorrower(context.Background(), 9); !errors.Is(err, borrower.ErrNotFound) {
		t.Fatalf("err = %v, want borrower.ErrNotFound", err)
	}
}
