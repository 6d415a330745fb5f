package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/scolink/community-service/internal/models"
	"github.com/scolink/community-service/internal/repositories"
	"github.com/scolink/community-service/internal/validator"
)

type bannerService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewBannerService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator) BannerService {
	return &bannerService{repo: repo, db: db, logger: logger, validator: v}
}

// ListActive is the public surface of the banner catalog.
func (s *bannerService) ListActive(ctx context.Context) ([]*models.AdBanner, error) {
	banners, err := s.repo.Banner().ListActive(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	return banners, nil
}

func (s *bannerService) ListAll(ctx context.Context, actor *models.User) ([]*models.AdBanner, error) {
	if err := Authorize(actor, OpManageBanners); err != nil {
		return nil, err
	}
	banners, err := s.repo.Banner().ListAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	return banners, nil
}

func (s *bannerService) Create(ctx context.Context, actor *models.User, req *validator.BannerCreateRequest) (*models.AdBanner, error) {
	if err := Authorize(actor, OpManageBanners); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	banner := &models.AdBanner{
		Title:    req.Title,
		ImageURL: req.ImageURL,
		LinkURL:  req.LinkURL,
		IsActive: true,
	}
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}

	if err := s.repo.Banner().Create(ctx, nil, banner); err != nil {
		return nil, fmt.Errorf("failed to create banner: %w", err)
	}

	s.logger.Info("banner created", "banner_id", banner.ID, "actor_id", actor.ID)
	return banner, nil
}

func (s *bannerService) Update(ctx context.Context, actor *models.User, bannerID string, req *validator.BannerUpdateRequest) (*models.AdBanner, error) {
	if err := Authorize(actor, OpManageBanners); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.LinkURL != nil {
		updates["link_url"] = *req.LinkURL
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.repo.Banner().Update(ctx, nil, bannerID, updates); err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, ErrBannerNotFound
			}
			return nil, fmt.Errorf("failed to update banner: %w", err)
		}
	}

	banner, err := s.repo.Banner().GetByID(ctx, nil, bannerID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrBannerNotFound
		}
		return nil, fmt.Errorf("failed to get banner: %w", err)
	}
	return banner, nil
}

func (s *bannerService) Delete(ctx context.Context, actor *models.User, bannerID string) error {
	if err := Authorize(actor, OpManageBanners); err != nil {
		return err
	}
	if err := s.repo.Banner().Delete(ctx, nil, bannerID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrBannerNotFound
		}
		return fmt.Errorf("failed to delete banner: %w", err)
	}
	s.logger.Info("banner deleted", "banner_id", bannerID, "actor_id", actor.ID)
	return nil
}
