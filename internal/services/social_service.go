package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/scolink/community-service/internal/events"
	"github.com/scolink/community-service/internal/models"
	"github.com/scolink/community-service/internal/repositories"
)

type socialService struct {
	repo          repositories.Repository
	db            *gorm.DB
	logger        *slog.Logger
	notifications NotificationService
	publisher     events.EventPublisher
}

func NewSocialService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, notifications NotificationService, publisher events.EventPublisher) SocialService {
	return &socialService{
		repo:          repo,
		db:            db,
		logger:        logger,
		notifications: notifications,
		publisher:     publisher,
	}
}

// Follow creates a follow edge and notifies the followed user.
func (s *socialService) Follow(ctx context.Context, actor *models.User, targetID string) error {
	if err := Authorize(actor, OpFollowUser); err != nil {
		return err
	}
	if actor.ID == targetID {
		return ErrSelfFollow
	}

	if _, err := s.repo.User().GetByID(ctx, nil, targetID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	follow := &models.Follow{FollowerID: actor.ID, FollowedID: targetID}
	if err := s.repo.Social().Create(ctx, nil, follow); err != nil {
		if repositories.IsDuplicateError(err) {
			return ErrAlreadyFollowing
		}
		return fmt.Errorf("failed to create follow: %w", err)
	}

	s.logger.Info("user followed", "follower_id", actor.ID, "followed_id", targetID)

	s.notifications.Notify(ctx, targetID, models.NotificationNewFollower, NotifyParams{
		ActorName: actor.Name,
		Link:      "/users/" + actor.ID,
	})

	if err := s.publisher.Publish(ctx, events.NewEvent(events.EventUserFollowed, map[string]string{
		"follower_id": actor.ID,
		"followed_id": targetID,
	})); err != nil {
		s.logger.Warn("failed to publish follow event", "error", err, "follower_id", actor.ID)
	}

	return nil
}

func (s *socialService) Unfollow(ctx context.Context, actor *models.User, targetID string) error {
	if err := s.repo.Social().Delete(ctx, nil, actor.ID, targetID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrFollowNotFound
		}
		return fmt.Errorf("failed to delete follow: %w", err)
	}
	s.logger.Info("user unfollowed", "follower_id", actor.ID, "followed_id", targetID)
	return nil
}

func (s *socialService) IsFollowing(ctx context.Context, actor *models.User, targetID string) (bool, error) {
	following, err := s.repo.Social().Exists(ctx, nil, actor.ID, targetID)
	if err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}
	return following, nil
}

func (s *socialService) Following(ctx context.Context, userID string) ([]*models.User, error) {
	follows, err := s.repo.Social().ListFollowing(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list following: %w", err)
	}
	ids := make([]string, 0, len(follows))
	for _, f := range follows {
		ids = append(ids, f.FollowedID)
	}
	return s.resolveUsers(ctx, ids)
}

func (s *socialService) Followers(ctx context.Context, userID string) ([]*models.User, error) {
	follows, err := s.repo.Social().ListFollowers(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}
	ids := make([]string, 0, len(follows))
	for _, f := range follows {
		ids = append(ids, f.FollowerID)
	}
	return s.resolveUsers(ctx, ids)
}

func (s *socialService) resolveUsers(ctx context.Context, ids []string) ([]*models.User, error) {
	if len(ids) == 0 {
		return []*models.User{}, nil
	}
	users, err := s.repo.User().GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	return users, nil
}
