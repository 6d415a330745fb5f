package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/scolink/community-service/internal/models"
	"github.com/scolink/community-service/internal/repositories"
)

type UploadPostgreSQL struct {
	db *gorm.DB
}

func NewUploadPostgreSQL(db *gorm.DB) repositories.UploadRepository {
	return &UploadPostgreSQL{db: db}
}

func (u *UploadPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return u.db
}

func (u *UploadPostgreSQL) Create(ctx context.Context, tx *gorm.DB, upload *models.FileUpload) error {
	if err := u.getDB(tx).WithContext(ctx).Create(upload).Error; err != nil {
		return fmt.Errorf("failed to create upload record: %w", err)
	}
	return nil
}

func (u *UploadPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.FileUpload, error) {
	var upload models.FileUpload
	if err := u.getDB(tx).WithContext(ctx).First(&upload, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &upload, nil
}

func (u *UploadPostgreSQL) GetByStoredName(ctx context.Context, tx *gorm.DB, name string) (*models.FileUpload, error) {
	var upload models.FileUpload
	if err := u.getDB(tx).WithContext(ctx).First(&upload, "stored_name = ?", name).Error; err != nil {
		return nil, err
	}
	return &upload, nil
}
