package mysql

import (
	"context"

	"gorm.io/gorm"

	borrowerDomain "loan-backoffice/internal/domain/borrower"
)

type BorrowerRepository struct{ db *gorm.DB }

func NewBorrowerRepository(db *gorm.DB) *BorrowerRepository { return &BorrowerRepository{db: db} }

func (r *BorrowerRepository) Create(ctx context.Context, b *borrowerDomain.Borrower) error {
	return r.db.WithContext(ctx).Omit("User").Create(b).Error
}

func (r *BorrowerRepository) GetByID(ctx context.Context, id uint64) (*borrowerDomain.Borrower, error) {
	var out borrowerDomain.Borrower
	if err := r.db.WithContext(ctx).Preload("User").First(&out, id).Error; err != nil {
		return nil, notFound(err, borrowerDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *BorrowerRepository) GetByUserID(ctx context.Context, userID uint64) (*borrowerDomain.Borrower, error) {
	var out borrowerDomain.Borrower
	if err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&out).Error; err != nil {
		return nil, notFound(err, borrowerDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *BorrowerRepository) List(ctx context.Context, f borrowerDomain.Filter) ([]borrowerDomain.Borrower, int64, error) {
	query := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&borrowerDomain.Borrower{})
		if f.Search != "" {
			like := containsPattern(f.Search)
			q = q.Joins("JOIN users ON users.id = borrowers.user_id").
				Where("users.full_name LIKE ? ESCAPE '!' OR users.email LIKE ? ESCAPE '!'", like, like)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []borrowerDomain.Borrower
	err := page(query(), f.Offset, f.Limit).
		Preload("User").
		Order("borrowers.created_at DESC, borrowers.id DESC").
		Find(&out).Error
	return out, total, err
}

func (r *BorrowerRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&borrowerDomain.Borrower{}).Count(&n).Error
	return n, err
}
