package analytics

import "context"

type Repository interface {
	// Upsert inserts the point or replaces the value stored for the same metric, dimension and dimension value.
	Upsert(ctx context.Context, s *Snapshot) error
	// Latest returns up to limit points ordered by dimension value, newest first.
	Latest(ctx context.Context, metricType, dimension string, limit int) ([]Snapshot, error)
}
