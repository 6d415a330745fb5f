package repositories

import (
	"context"

	"github.com/scolink/community-service/internal/models"
	"gorm.io/gorm"
)

// SocialRepository interface for the follow graph
type SocialRepository interface {
	Create(ctx context.Context, tx *gorm.DB, follow *models.Follow) error

	// Delete removes the edge and reports gorm.ErrRecordNotFound when it
	// does not exist.
	Delete(ctx context.Context, tx *gorm.DB, followerID, followedID string) error

	Exists(ctx context.Context, tx *gorm.DB, followerID, followedID string) (bool, error)
	ListFollowing(ctx context.Context, tx *gorm.DB, followerID string) ([]*models.Follow, error)
	ListFollowers(ctx context.Context, tx *gorm.DB, followedID string) ([]*models.Follow, error)
	CountFollowers(ctx context.Context, tx *gorm.DB, followedID string) (int64, error)
	CountFollowing(ctx context.Context, tx *gorm.DB, followerID string) (int64, error)
}
