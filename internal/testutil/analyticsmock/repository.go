package analyticsmock

import (
	"context"
	"errors"

	domain "loan-backoffice/internal/domain/analytics"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("analyticsmock: method not implemented")

type Repo struct {
	UpsertFn func(ctx context.Context, s *domain.Snapshot) error
	LatestFn func(ctx context.Context, metricType, dimension string, limit int) ([]domain.Snapshot, error)
}

func (m *Repo) Upsert(ctx context.Context, s *domain.Snapshot) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, s)
	}
	return nil
}

func (m *Repo) Latest(ctx context.Context, metricType, dimension string, limit int) ([]domain.Snapshot, error) {
	if m.LatestFn != nil {
		return m.LatestFn(ctx, metricType, dimension, limit)
	}
	return nil, errUnimplemented
}
