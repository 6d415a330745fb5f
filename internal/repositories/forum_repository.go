package repositories

import (
	"context"

	"github.com/scolink/community-service/internal/models"
	"gorm.io/gorm"
)

// ForumRepository interface for topics and posts
type ForumRepository interface {
	CreateTopic(ctx context.Context, tx *gorm.DB, topic *models.Topic) error
	GetTopic(ctx context.Context, tx *gorm.DB, id string) (*models.Topic, error)
	ListTopics(ctx context.Context, tx *gorm.DB, filters TopicFilters) ([]*models.Topic, error)
	DeleteTopic(ctx context.Context, tx *gorm.DB, id string) error

	// IncrementViews bumps views_count atomically in the database.
	IncrementViews(ctx context.Context, tx *gorm.DB, topicID string) error

	CreatePost(ctx context.Context, tx *gorm.DB, post *models.Post) error
	ListPosts(ctx context.Context, tx *gorm.DB, topicID string) ([]*models.Post, error)

	// IncrementReplies bumps replies_count atomically in the database.
	IncrementReplies(ctx context.Context, tx *gorm.DB, topicID string) error

	CountTopicsByAuthor(ctx context.Context, tx *gorm.DB, authorID string) (int64, error)
}
