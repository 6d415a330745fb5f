package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/scolink/community-service/internal/events"
	"github.com/scolink/community-service/internal/models"
	"github.com/scolink/community-service/internal/repositories"
	"github.com/scolink/community-service/internal/validator"
)

type notificationService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewNotificationService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) NotificationService {
	return &notificationService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

// List returns the caller's 50 newest notifications.
func (s *notificationService) List(ctx context.Context, actor *models.User) ([]*models.Notification, error) {
	notifications, err := s.repo.Notification().ListByUser(ctx, nil, actor.ID, 50)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, actor *models.User) (int64, error) {
	count, err := s.repo.Notification().CountUnread(ctx, nil, actor.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (s *notificationService) MarkRead(ctx context.Context, actor *models.User, notificationID string) error {
	if err := s.repo.Notification().MarkRead(ctx, nil, notificationID, actor.ID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, actor *models.User) error {
	if err := s.repo.Notification().MarkAllRead(ctx, nil, actor.ID); err != nil {
		return fmt.Errorf("failed to mark all notifications read: %w", err)
	}
	return nil
}

func (s *notificationService) GetSettings(ctx context.Context, actor *models.User) (*models.NotificationSettings, error) {
	settings, err := s.repo.Notification().GetSettings(ctx, nil, actor.ID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			// Accounts created before settings existed fall back to defaults.
			defaults := models.DefaultNotificationSettings(actor.ID)
			if createErr := s.repo.Notification().CreateSettings(ctx, nil, defaults); createErr != nil {
				return nil, fmt.Errorf("failed to create default settings: %w", createErr)
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

func (s *notificationService) UpdateSettings(ctx context.Context, actor *models.User, req *validator.NotificationSettingsRequest) (*models.NotificationSettings, error) {
	settings, err := s.GetSettings(ctx, actor)
	if err != nil {
		return nil, err
	}

	if req.NewPosts != nil {
		settings.NewPosts = *req.NewPosts
	}
	if req.ForumReplies != nil {
		settings.ForumReplies = *req.ForumReplies
	}
	if req.NewAssignments != nil {
		settings.NewAssignments = *req.NewAssignments
	}
	if req.NewFollowers != nil {
		settings.NewFollowers = *req.NewFollowers
	}

	if err := s.repo.Notification().UpdateSettings(ctx, nil, settings); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return settings, nil
}

// Notify is best-effort: a notification that cannot be written must not
// fail the operation that triggered it.
func (s *notificationService) Notify(ctx context.Context, userID string, notificationType models.NotificationType, params NotifyParams) {
	settings, err := s.repo.Notification().GetSettings(ctx, nil, userID)
	if err != nil && !repositories.IsNotFoundError(err) {
		s.logger.Warn("failed to load notification settings", "error", err, "user_id", userID)
	}
	if settings != nil && !settings.Allows(notificationType) {
		return
	}

	title, titleEn, message, messageEn := renderNotification(notificationType, params)
	notification := &models.Notification{
		UserID:    userID,
		Type:      notificationType,
		Title:     title,
		TitleEn:   titleEn,
		Message:   message,
		MessageEn: messageEn,
		Link:      params.Link,
	}

	if err := s.repo.Notification().Create(ctx, nil, notification); err != nil {
		s.logger.Warn("failed to create notification", "error", err, "user_id", userID, "type", notificationType)
		return
	}

	if err := s.publisher.Publish(ctx, events.NewEvent(events.EventNotificationCreated, notification)); err != nil {
		s.logger.Warn("failed to publish notification event", "error", err, "notification_id", notification.ID)
	}
}

// renderNotification produces the French and English texts for a
// notification type.
func renderNotification(t models.NotificationType, p NotifyParams) (title, titleEn, message, messageEn string) {
	switch t {
	case models.NotificationNewPost:
		title = "Nouveau sujet"
		titleEn = "New topic"
		message = fmt.Sprintf("%s a créé un nouveau sujet : %s", p.ActorName, p.TopicTitle)
		messageEn = fmt.Sprintf("%s created a new topic: %s", p.ActorName, p.TopicTitle)
	case models.NotificationForumReply:
		title = "Nouvelle réponse"
		titleEn = "New reply"
		message = fmt.Sprintf("%s a répondu à votre sujet « %s »", p.ActorName, p.TopicTitle)
		messageEn = fmt.Sprintf("%s replied to your topic \"%s\"", p.ActorName, p.TopicTitle)
	case models.NotificationNewAssignment:
		title = "Nouveau devoir"
		titleEn = "New assignment"
		message = fmt.Sprintf("%s a publié un nouveau devoir : %s", p.ActorName, p.AssignmentName)
		messageEn = fmt.Sprintf("%s published a new assignment: %s", p.ActorName, p.AssignmentName)
	case models.NotificationNewFollower:
		title = "Nouvel abonné"
		titleEn = "New follower"
		message = fmt.Sprintf("%s vous suit désormais", p.ActorName)
		messageEn = fmt.Sprintf("%s is now following you", p.ActorName)
	default:
		title = "Notification"
		titleEn = "Notification"
	}
	return title, titleEn, message, messageEn
}
