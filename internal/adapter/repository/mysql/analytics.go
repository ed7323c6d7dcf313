package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	analyticsDomain "loan-backoffice/internal/domain/analytics"
)

type AnalyticsRepository struct{ db *gorm.DB }

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository { return &AnalyticsRepository{db: db} }

func (r *AnalyticsRepository) Upsert(ctx context.Context, s *analyticsDomain.Snapshot) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "metric_type"}, {Name: "dimension"}, {Name: "dimension_value"}},
			DoUpdates: clause.AssignmentColumns([]string{"metric_value", "updated_at"}),
		}).
		Create(s).Error
}

func (r *AnalyticsRepository) Latest(ctx context.Context, metricType, dimension string, limit int) ([]analyticsDomain.Snapshot, error) {
	var out []analyticsDomain.Snapshot
	err := r.db.WithContext(ctx).
		Where("metric_type = ? AND dimension = ?", metricType, dimension).
		Order("dimension_value DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}
