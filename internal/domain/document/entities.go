package document

import (
	"time"

	"loan-backoffice/internal/apperr"
)

type Type string

const (
	TypeIDProof         Type = "id_proof"
	TypeIncomeProof     Type = "income_proof"
	TypeAddressProof    Type = "address_proof"
	TypeLoanApplication Type = "loan_application"
)

func (t Type) Valid() bool {
	switch t {
	case TypeIDProof, TypeIncomeProof, TypeAddressProof, TypeLoanApplication:
		return true
	}
	return false
}

type OCRStatus string

const (
	OCRPending    OCRStatus = "pending"
	OCRProcessing OCRStatus = "processing"
	OCRCompleted  OCRStatus = "completed"
	OCRFailed     OCRStatus = "failed"
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

func (s VerificationStatus) Valid() bool {
	return s == VerificationPending || s == VerificationVerified || s == VerificationRejected
}

var ErrNotFound = apperr.NotFound("document not found")

type Document struct {
	ID                 uint64             `gorm:"primaryKey;column:id" json:"id"`
	BorrowerID         uint64             `gorm:"column:borrower_id;not null;index:idx_documents_borrower_id" json:"borrowerId"`
	LoanID             *uint64            `gorm:"column:loan_id;index:idx_documents_loan_id" json:"loanId,omitempty"`
	DocumentType       Type               `gorm:"column:document_type;type:varchar(32);not null" json:"documentType"`
	FileName           string             `gorm:"column:file_name;size:255;not null" json:"fileName"`
	FileURL            string             `gorm:"column:file_url;size:500;not null" json:"fileUrl"`
	OCRStatus          OCRStatus          `gorm:"column:ocr_status;type:varchar(16);not null;default:pending" json:"ocrStatus"`
	VerificationStatus VerificationStatus `gorm:"column:verification_status;type:varchar(16);not null;default:pending" json:"verificationStatus"`
	VerifiedBy         *uint64            `gorm:"column:verified_by" json:"verifiedBy,omitempty"`
	VerifiedAt         *time.Time         `gorm:"column:verified_at" json:"verifiedAt,omitempty"`
	CreatedAt          time.Time          `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (Document) TableName() string { return "documents" }
