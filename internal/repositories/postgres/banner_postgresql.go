package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/scolink/community-service/internal/cache"
	"github.com/scolink/community-service/internal/models"
	"github.com/scolink/community-service/internal/repositories"
)

type BannerPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewBannerPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.BannerRepository {
	return &BannerPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (b *BannerPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return b.db
}

func (b *BannerPostgreSQL) invalidate(ctx context.Context) {
	cache.SafeDelete(ctx, b.cacheManager.Banner, "active")
}

func (b *BannerPostgreSQL) Create(ctx context.Context, tx *gorm.DB, banner *models.AdBanner) error {
	if err := b.getDB(tx).WithContext(ctx).Create(banner).Error; err != nil {
		return fmt.Errorf("failed to create banner: %w", err)
	}
	b.invalidate(ctx)
	return nil
}

func (b *BannerPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.AdBanner, error) {
	var banner models.AdBanner
	if err := b.getDB(tx).WithContext(ctx).First(&banner, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &banner, nil
}

func (b *BannerPostgreSQL) ListActive(ctx context.Context, tx *gorm.DB) ([]*models.AdBanner, error) {
	var banners []*models.AdBanner

	err := b.cacheManager.Banner.CacheOrExecute(ctx, "active", &banners, cache.BannerCacheConfig.TTL, func() (interface{}, error) {
		var dbBanners []*models.AdBanner
		err := b.getDB(tx).WithContext(ctx).
			Where("is_active = ?", true).
			Order("created_at DESC").
			Find(&dbBanners).Error
		if err != nil {
			return nil, fmt.Errorf("failed to list active banners: %w", err)
		}
		return dbBanners, nil
	})
	if err != nil {
		return nil, err
	}
	return banners, nil
}

func (b *BannerPostgreSQL) ListAll(ctx context.Context, tx *gorm.DB) ([]*models.AdBanner, error) {
	var banners []*models.AdBanner
	err := b.getDB(tx).WithContext(ctx).
		Order("created_at DESC").
		Find(&banners).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	return banners, nil
}

func (b *BannerPostgreSQL) Update(ctx context.Context, tx *gorm.DB, id string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := b.getDB(tx).WithContext(ctx).
		Model(&models.AdBanner{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update banner: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	b.invalidate(ctx)
	return nil
}

func (b *BannerPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	result := b.getDB(tx).WithContext(ctx).Delete(&models.AdBanner{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete banner: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	b.invalidate(ctx)
	return nil
}
