package mysql

import (
	"context"

	"gorm.io/gorm"

	paymentDomain "loan-backoffice/internal/domain/payment"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) Create(ctx context.Context, p *paymentDomain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uint64) (*paymentDomain.Payment, error) {
	var out paymentDomain.Payment
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, notFound(err, paymentDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *PaymentRepository) Save(ctx context.Context, p *paymentDomain.Payment) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PaymentRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("payment_date ASC, id ASC").
		Find(&out).Error
	return out, err
}
