package mysql

import (
	"context"

	"gorm.io/gorm"

	documentDomain "loan-backoffice/internal/domain/document"
)

type DocumentRepository struct{ db *gorm.DB }

func NewDocumentRepository(db *gorm.DB) *DocumentRepository { return &DocumentRepository{db: db} }

func (r *DocumentRepository) Create(ctx context.Context, d *documentDomain.Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DocumentRepository) GetByID(ctx context.Context, id uint64) (*documentDomain.Document, error) {
	var out documentDomain.Document
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, notFound(err, documentDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *DocumentRepository) Save(ctx context.Context, d *documentDomain.Document) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *DocumentRepository) ListByBorrowerID(ctx context.Context, borrowerID uint64) ([]documentDomain.Document, error) {
	var out []documentDomain.Document
	err := r.db.WithContext(ctx).
		Where("borrower_id = ?", borrowerID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}
