package repositories

import (
	"context"

	"github.com/scolink/community-service/internal/models"
	"gorm.io/gorm"
)

// BannerRepository interface for ad banners. The active list is
// cache-backed; writes invalidate it.
type BannerRepository interface {
	Create(ctx context.Context, tx *gorm.DB, banner *models.AdBanner) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.AdBanner, error)
	ListActive(ctx context.Context, tx *gorm.DB) ([]*models.AdBanner, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*models.AdBanner, error)
	Update(ctx context.Context, tx *gorm.DB, id string, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
}

// UploadRepository interface for stored file metadata
type UploadRepository interface {
	Create(ctx context.Context, tx *gorm.DB, upload *models.FileUpload) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.FileUpload, error)
	GetByStoredName(ctx context.Context, tx *gorm.DB, name string) (*models.FileUpload, error)
}
