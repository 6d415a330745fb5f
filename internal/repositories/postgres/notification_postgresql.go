package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/scolink/community-service/internal/models"
	"github.com/scolink/community-service/internal/repositories"
)

type NotificationPostgreSQL struct {
	db *gorm.DB
}

func NewNotificationPostgreSQL(db *gorm.DB) repositories.NotificationRepository {
	return &NotificationPostgreSQL{db: db}
}

func (n *NotificationPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return n.db
}

func (n *NotificationPostgreSQL) Create(ctx context.Context, tx *gorm.DB, notification *models.Notification) error {
	if err := n.getDB(tx).WithContext(ctx).Create(notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (n *NotificationPostgreSQL) ListByUser(ctx context.Context, tx *gorm.DB, userID string, limit int) ([]*models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	var notifications []*models.Notification
	err := n.getDB(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (n *NotificationPostgreSQL) MarkRead(ctx context.Context, tx *gorm.DB, id, userID string) error {
	result := n.getDB(tx).WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (n *NotificationPostgreSQL) MarkAllRead(ctx context.Context, tx *gorm.DB, userID string) error {
	err := n.getDB(tx).WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark all notifications read: %w", err)
	}
	return nil
}

func (n *NotificationPostgreSQL) CountUnread(ctx context.Context, tx *gorm.DB, userID string) (int64, error) {
	var count int64
	err := n.getDB(tx).WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (n *NotificationPostgreSQL) GetSettings(ctx context.Context, tx *gorm.DB, userID string) (*models.NotificationSettings, error) {
	var settings models.NotificationSettings
	if err := n.getDB(tx).WithContext(ctx).First(&settings, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (n *NotificationPostgreSQL) CreateSettings(ctx context.Context, tx *gorm.DB, settings *models.NotificationSettings) error {
	if err := n.getDB(tx).WithContext(ctx).Create(settings).Error; err != nil {
		return fmt.Errorf("failed to create notification settings: %w", err)
	}
	return nil
}

func (n *NotificationPostgreSQL) UpdateSettings(ctx context.Context, tx *gorm.DB, settings *models.NotificationSettings) error {
	result := n.getDB(tx).WithContext(ctx).
		Model(&models.NotificationSettings{}).
		Where("user_id = ?", settings.UserID).
		Updates(map[string]interface{}{
			"new_posts":       settings.NewPosts,
			"forum_replies":   settings.ForumReplies,
			"new_assignments": settings.NewAssignments,
			"new_followers":   settings.NewFollowers,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update notification settings: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
