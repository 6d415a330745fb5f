package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/scolink/community-service/internal/models"
	"github.com/scolink/community-service/internal/repositories"
)

type SocialPostgreSQL struct {
	db *gorm.DB
}

func NewSocialPostgreSQL(db *gorm.DB) repositories.SocialRepository {
	return &SocialPostgreSQL{db: db}
}

func (s *SocialPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return s.db
}

func (s *SocialPostgreSQL) Create(ctx context.Context, tx *gorm.DB, follow *models.Follow) error {
	if err := s.getDB(tx).WithContext(ctx).Create(follow).Error; err != nil {
		return fmt.Errorf("failed to create follow: %w", err)
	}
	return nil
}

func (s *SocialPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, followerID, followedID string) error {
	result := s.getDB(tx).WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete follow: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *SocialPostgreSQL) Exists(ctx context.Context, tx *gorm.DB, followerID, followedID string) (bool, error) {
	var count int64
	err := s.getDB(tx).WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}
	return count > 0, nil
}

func (s *SocialPostgreSQL) ListFollowing(ctx context.Context, tx *gorm.DB, followerID string) ([]*models.Follow, error) {
	var follows []*models.Follow
	err := s.getDB(tx).WithContext(ctx).
		Where("follower_id = ?", followerID).
		Order("created_at DESC").
		Find(&follows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list following: %w", err)
	}
	return follows, nil
}

func (s *SocialPostgreSQL) ListFollowers(ctx context.Context, tx *gorm.DB, followedID string) ([]*models.Follow, error) {
	var follows []*models.Follow
	err := s.getDB(tx).WithContext(ctx).
		Where("followed_id = ?", followedID).
		Order("created_at DESC").
		Find(&follows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}
	return follows, nil
}

func (s *SocialPostgreSQL) CountFollowers(ctx context.Context, tx *gorm.DB, followedID string) (int64, error) {
	var count int64
	err := s.getDB(tx).WithContext(ctx).
		Model(&models.Follow{}).
		Where("followed_id = ?", followedID).
		Count(&count).Error
	return count, err
}

func (s *SocialPostgreSQL) CountFollowing(ctx context.Context, tx *gorm.DB, followerID string) (int64, error) {
	var count int64
	err := s.getDB(tx).WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Count(&count).Error
	return count, err
}
