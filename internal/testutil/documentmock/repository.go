package documentmock

import (
	"context"
	"errors"

	domain "loan-backoffice/internal/domain/document"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("documentmock: method not implemented")

type Repo struct {
	CreateFn           func(ctx context.Context, d *domain.Document) error
	GetByIDFn          func(ctx context.Context, id uint64) (*domain.Document, error)
	SaveFn             func(ctx context.Context, d *domain.Document) error
	ListByBorrowerIDFn func(ctx context.Context, borrowerID uint64) ([]domain.Document, error)
}

func (m *Repo) Create(ctx context.Context, d *domain.Document) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Document, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) Save(ctx context.Context, d *domain.Document) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, d)
	}
	return nil
}

func (m *Repo) ListByBorrowerID(ctx context.Context, borrowerID uint64) ([]domain.Document, error) {
	if m.ListByBorrowerIDFn != nil {
		return m.ListByBorrowerIDFn(ctx, borrowerID)
	}
	return nil, errUnimplemented
}
