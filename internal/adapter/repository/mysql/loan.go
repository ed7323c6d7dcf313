package mysql

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	loanDomain "loan-backoffice/internal/domain/loan"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(l).Error
}

func (r *LoanRepository) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Borrower.User").
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("payment_date ASC, id ASC") })
}

func (r *LoanRepository) GetByID(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	if err := r.withDetails(ctx).First(&out, id).Error; err != nil {
		return nil, notFound(err, loanDomain.ErrNotFound)
	}
	return &out, nil
}

// GetByIDForUpdate takes a row lock; only meaningful inside a transaction.
func (r *LoanRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&out, id).Error
	if err != nil {
		return nil, notFound(err, loanDomain.ErrNotFound)
	}
	return &out, nil
}

func applyFilter(q *gorm.DB, f loanDomain.Filter) *gorm.DB {
	if f.Status != "" {
		q = q.Where("loans.status = ?", f.Status)
	}
	if !f.From.IsZero() {
		q = q.Where("loans.created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("loans.created_at < ?", f.To)
	}
	return q
}

func (r *LoanRepository) List(ctx context.Context, f loanDomain.Filter) ([]loanDomain.Loan, int64, error) {
	var total int64
	if err := applyFilter(r.db.WithContext(ctx).Model(&loanDomain.Loan{}), f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []loanDomain.Loan
	err := page(applyFilter(r.withDetails(ctx), f), f.Offset, f.Limit).
		Order("loans.created_at DESC, loans.id DESC").
		Find(&out).Error
	return out, total, err
}

func (r *LoanRepository) ListByBorrowerID(ctx context.Context, borrowerID uint64) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.withDetails(ctx).
		Where("borrower_id = ?", borrowerID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *LoanRepository) Count(ctx context.Context, f loanDomain.Filter) (int64, error) {
	var n int64
	err := applyFilter(r.db.WithContext(ctx).Model(&loanDomain.Loan{}), f).Count(&n).Error
	return n, err
}

func (r *LoanRepository) SumAmount(ctx context.Context, f loanDomain.Filter) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := applyFilter(r.db.WithContext(ctx).Model(&loanDomain.Loan{}), f).
		Select("SUM(loans.amount)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

func (r *LoanRepository) CountByStatus(ctx context.Context) ([]loanDomain.StatusCount, error) {
	var rows []struct {
		Status loanDomain.Status
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Order("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]loanDomain.StatusCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, loanDomain.StatusCount{Status: row.Status, Count: row.Total})
	}
	return out, nil
}
