package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/scolink/community-service/internal/models"
	"github.com/scolink/community-service/internal/repositories"
)

type ForumPostgreSQL struct {
	db *gorm.DB
}

func NewForumPostgreSQL(db *gorm.DB) repositories.ForumRepository {
	return &ForumPostgreSQL{db: db}
}

func (f *ForumPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return f.db
}

func (f *ForumPostgreSQL) CreateTopic(ctx context.Context, tx *gorm.DB, topic *models.Topic) error {
	if err := f.getDB(tx).WithContext(ctx).Create(topic).Error; err != nil {
		return fmt.Errorf("failed to create topic: %w", err)
	}
	return nil
}

func (f *ForumPostgreSQL) GetTopic(ctx context.Context, tx *gorm.DB, id string) (*models.Topic, error) {
	var topic models.Topic
	if err := f.getDB(tx).WithContext(ctx).First(&topic, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &topic, nil
}

func (f *ForumPostgreSQL) ListTopics(ctx context.Context, tx *gorm.DB, filters repositories.TopicFilters) ([]*models.Topic, error) {
	query := f.getDB(tx).WithContext(ctx).Model(&models.Topic{})
	query = applyTopicFilters(query, filters)
	query = applyPagination(query, filters.Limit, filters.Offset)

	var topics []*models.Topic
	if err := query.Find(&topics).Error; err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	return topics, nil
}

func (f *ForumPostgreSQL) DeleteTopic(ctx context.Context, tx *gorm.DB, id string) error {
	db := f.getDB(tx)

	if err := db.WithContext(ctx).Where("topic_id = ?", id).Delete(&models.Post{}).Error; err != nil {
		return fmt.Errorf("failed to delete topic posts: %w", err)
	}

	result := db.WithContext(ctx).Delete(&models.Topic{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete topic: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementViews runs the increment in the database so concurrent reads
// never lose updates.
func (f *ForumPostgreSQL) IncrementViews(ctx context.Context, tx *gorm.DB, topicID string) error {
	result := f.getDB(tx).WithContext(ctx).
		Model(&models.Topic{}).
		Where("id = ?", topicID).
		UpdateColumn("views_count", gorm.Expr("views_count + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to increment views: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (f *ForumPostgreSQL) CreatePost(ctx context.Context, tx *gorm.DB, post *models.Post) error {
	if err := f.getDB(tx).WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

func (f *ForumPostgreSQL) ListPosts(ctx context.Context, tx *gorm.DB, topicID string) ([]*models.Post, error) {
	var posts []*models.Post
	err := f.getDB(tx).WithContext(ctx).
		Where("topic_id = ?", topicID).
		Order("created_at ASC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (f *ForumPostgreSQL) IncrementReplies(ctx context.Context, tx *gorm.DB, topicID string) error {
	result := f.getDB(tx).WithContext(ctx).
		Model(&models.Topic{}).
		Where("id = ?", topicID).
		UpdateColumn("replies_count", gorm.Expr("replies_count + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to increment replies: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (f *ForumPostgreSQL) CountTopicsByAuthor(ctx context.Context, tx *gorm.DB, authorID string) (int64, error) {
	var count int64
	err := f.getDB(tx).WithContext(ctx).
		Model(&models.Topic{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}
