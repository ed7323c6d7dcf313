package document

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"loan-backoffice/internal/apperr"
	"loan-backoffice/internal/domain/borrower"
	"loan-backoffice/internal/domain/document"
	"loan-backoffice/internal/domain/loan"
	"loan-backoffice/internal/domain/user"
)

var (
	ErrNotOwnProfile  = apperr.Forbidden("Borrowers may only upload their own documents")
	ErrLoanMismatch   = apperr.Validation("Loan does not belong to borrower")
	ErrInvalidType    = apperr.Validation("Invalid document type")
	ErrInvalidVerdict = apperr.Validation("Invalid verification status")
)

type UploadInput struct {
	ActorID      uint64
	ActorRole    user.Role
	BorrowerID   uint64
	LoanID       *uint64
	DocumentType document.Type
	FileName     string
	FileURL      string
}

type VerifyInput struct {
	DocumentID uint64
	Status     document.VerificationStatus
	ActorID    uint64
}

type Usecase struct {
	docs      document.Repository
	borrowers borrower.Repository
	loans     loan.Repository
	log       *logrus.Logger
	now       func() time.Time
}

func NewUsecase(docs document.Repository, borrowers borrower.Repository, loans loan.Repository, log *logrus.Logger) *Usecase {
	return &Usecase{docs: docs, borrowers: borrowers, loans: loans, log: log, now: time.Now}
}

// Upload records document metadata. OCR and verification both start pending.
func (u *Usecase) Upload(ctx context.Context, in UploadInput) (*document.Document, error) {
	if !in.DocumentType.Valid() {
		return nil, ErrInvalidType
	}
	b, err := u.borrowers.GetByID(ctx, in.BorrowerID)
	if err != nil {
		return nil, apperr.Wrap("load borrower", err)
	}
	if !in.ActorRole.IsStaff() && b.UserID != in.ActorID {
		return nil, ErrNotOwnProfile
	}
	if in.LoanID != nil {
		l, err := u.loans.GetByID(ctx, *in.LoanID)
		if err != nil {
			return nil, apperr.Wrap("load loan", err)
		}
		if l.BorrowerID != b.ID {
			return nil, ErrLoanMismatch
		}
	}

	d := &document.Document{
		BorrowerID:         b.ID,
		LoanID:             in.LoanID,
		DocumentType:       in.DocumentType,
		FileName:           strings.TrimSpace(in.FileName),
		FileURL:            strings.TrimSpace(in.FileURL),
		OCRStatus:          document.OCRPending,
		VerificationStatus: document.VerificationPending,
	}
	if err := u.docs.Create(ctx, d); err != nil {
		return nil, apperr.Internal("create document", err)
	}
	u.log.WithFields(logrus.Fields{"document_id": d.ID, "borrower_id": b.ID, "type": d.DocumentType}).Info("document uploaded")
	return d, nil
}

func (u *Usecase) ListByBorrower(ctx context.Context, borrowerID uint64) ([]document.Document, error) {
	if _, err := u.borrowers.GetByID(ctx, borrowerID); err != nil {
		return nil, apperr.Wrap("load borrower", err)
	}
	out, err := u.docs.ListByBorrowerID(ctx, borrowerID)
	if err != nil {
		return nil, apperr.Internal("list documents", err)
	}
	if out == nil {
		out = []document.Document{}
	}
	return out, nil
}

func (u *Usecase) Verify(ctx context.Context, in VerifyInput) (*document.Document, error) {
	if !in.Status.Valid() {
		return nil, ErrInvalidVerdict
	}
	d, err := u.docs.GetByID(ctx, in.DocumentID)
	if err != nil {
		return nil, apperr.Wrap("load document", err)
	}
	now := u.now().UTC()
	actor := in.ActorID
	d.VerificationStatus = in.Status
	d.VerifiedBy = &actor
	d.VerifiedAt = &now
	if err := u.docs.Save(ctx, d); err != nil {
		return nil, apperr.Internal("save document", err)
	}
	u.log.WithFields(logrus.Fields{"document_id": d.ID, "status": d.VerificationStatus, "actor": actor}).Info("document verified")
	return d, nil
}
