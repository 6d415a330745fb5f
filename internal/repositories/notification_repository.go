package repositories

import (
	"context"

	"github.com/scolink/community-service/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository interface for notifications and per-user settings
type NotificationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, notification *models.Notification) error

	// ListByUser returns the newest notifications first, capped at limit.
	ListByUser(ctx context.Context, tx *gorm.DB, userID string, limit int) ([]*models.Notification, error)

	// MarkRead only touches the user's own notification.
	MarkRead(ctx context.Context, tx *gorm.DB, id, userID string) error
	MarkAllRead(ctx context.Context, tx *gorm.DB, userID string) error
	CountUnread(ctx context.Context, tx *gorm.DB, userID string) (int64, error)

	GetSettings(ctx context.Context, tx *gorm.DB, userID string) (*models.NotificationSettings, error)
	CreateSettings(ctx context.Context, tx *gorm.DB, settings *models.NotificationSettings) error
	UpdateSettings(ctx context.Context, tx *gorm.DB, settings *models.NotificationSettings) error
}
