package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/scolink/community-service/internal/models"
	"github.com/scolink/community-service/internal/repositories"
	"github.com/scolink/community-service/internal/storage"
)

type uploadService struct {
	repo          repositories.Repository
	db            *gorm.DB
	logger        *slog.Logger
	store         *storage.FileStore
	maxBytes      int64
	publicBaseURL string
}

func NewUploadService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, store *storage.FileStore, maxBytes int64, publicBaseURL string) UploadService {
	return &uploadService{
		repo:          repo,
		db:            db,
		logger:        logger,
		store:         store,
		maxBytes:      maxBytes,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// Upload stores the file on disk and records its metadata. The size limit
// is enforced while copying so oversized uploads never reach full length.
func (s *uploadService) Upload(ctx context.Context, actor *models.User, originalName, contentType string, size int64, r io.Reader) (*models.FileUpload, error) {
	if s.maxBytes > 0 && size > s.maxBytes {
		return nil, NewBusinessRuleError("max_upload_size", fmt.Sprintf("file exceeds the %d byte upload limit", s.maxBytes))
	}

	reader := r
	if s.maxBytes > 0 {
		reader = io.LimitReader(r, s.maxBytes+1)
	}

	storedName, err := s.store.Save(originalName, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	upload := &models.FileUpload{
		UploaderID:   actor.ID,
		OriginalName: originalName,
		StoredName:   storedName,
		ContentType:  contentType,
		SizeBytes:    size,
		URL:          s.publicBaseURL + "/uploads/" + storedName,
	}

	if err := s.repo.Upload().Create(ctx, nil, upload); err != nil {
		if cleanupErr := s.store.Delete(storedName); cleanupErr != nil {
			s.logger.Warn("failed to remove orphaned file", "error", cleanupErr, "stored_name", storedName)
		}
		return nil, fmt.Errorf("failed to record upload: %w", err)
	}

	s.logger.Info("file uploaded", "upload_id", upload.ID, "uploader_id", actor.ID, "size_bytes", size)
	return upload, nil
}

func (s *uploadService) Get(ctx context.Context, storedName string) (*models.FileUpload, error) {
	upload, err := s.repo.Upload().GetByStoredName(ctx, nil, storedName)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to get upload: %w", err)
	}
	return upload, nil
}
