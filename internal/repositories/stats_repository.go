package repositories

import (
	"context"

	"gorm.io/gorm"
)

// StatsRepository interface for aggregate counts used by dashboards
type StatsRepository interface {
	PlatformCounts(ctx context.Context, tx *gorm.DB) (*PlatformCounts, error)
	TeacherCounts(ctx context.Context, tx *gorm.DB, teacherID string) (*TeacherCounts, error)
}
