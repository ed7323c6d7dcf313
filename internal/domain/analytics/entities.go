package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	MetricLoanVolume = "loan_volume"

	DimensionDaily   = "daily"
	DimensionMonthly = "monthly"

	// MonthLayout formats DimensionValue for monthly snapshots.
	MonthLayout = "2006-01"
)

// Snapshot is one point of a stored metric time series.
type Snapshot struct {
	ID             uint64          `gorm:"primaryKey;column:id" json:"id"`
	MetricType     string          `gorm:"column:metric_type;size:64;not null;uniqueIndex:ux_analytics_point" json:"metricType"`
	MetricValue    decimal.Decimal `gorm:"column:metric_value;type:decimal(14,2);not null" json:"metricValue"`
	Dimension      string          `gorm:"column:dimension;size:16;not null;uniqueIndex:ux_analytics_point" json:"dimension"`
	DimensionValue string          `gorm:"column:dimension_value;size:32;not null;uniqueIndex:ux_analytics_point" json:"dimensionValue"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Snapshot) TableName() string { return "analytics" }
