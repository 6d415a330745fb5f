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

type forumService struct {
	repo          repositories.Repository
	db            *gorm.DB
	logger        *slog.Logger
	validator     *validator.Validator
	notifications NotificationService
	publisher     events.EventPublisher
}

func NewForumService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, notifications NotificationService, publisher events.EventPublisher) ForumService {
	return &forumService{
		repo:          repo,
		db:            db,
		logger:        logger,
		validator:     v,
		notifications: notifications,
		publisher:     publisher,
	}
}

func (s *forumService) CreateTopic(ctx context.Context, actor *models.User, req *validator.TopicCreateRequest) (*models.Topic, error) {
	if err := Authorize(actor, OpCreateTopic); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	if _, err := s.repo.Taxonomy().GetBranch(ctx, nil, req.BranchID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrBranchNotFound
		}
		return nil, fmt.Errorf("failed to get branch: %w", err)
	}
	if _, err := s.repo.Taxonomy().GetLevel(ctx, nil, req.LevelID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrLevelNotFound
		}
		return nil, fmt.Errorf("failed to get level: %w", err)
	}

	topic := &models.Topic{
		BranchID:   req.BranchID,
		LevelID:    req.LevelID,
		SubjectID:  req.SubjectID,
		Title:      req.Title,
		Content:    req.Content,
		AuthorID:   actor.ID,
		AuthorName: actor.Name,
		AuthorRole: actor.Role,
		Visibility: req.DefaultVisibility(),
	}
	if err := s.repo.Forum().CreateTopic(ctx, nil, topic); err != nil {
		return nil, fmt.Errorf("failed to create topic: %w", err)
	}

	s.logger.Info("topic created", "topic_id", topic.ID, "author_id", actor.ID, "visibility", topic.Visibility)

	s.notifyFollowers(ctx, actor, topic)

	if err := s.publisher.Publish(ctx, events.NewEvent(events.EventTopicCreated, map[string]string{
		"topic_id":  topic.ID,
		"author_id": actor.ID,
	})); err != nil {
		s.logger.Warn("failed to publish topic event", "error", err, "topic_id", topic.ID)
	}

	return topic, nil
}

// GetTopic enforces visibility and counts the view. A hidden topic
// reads the same as a missing one would in a list, but the detail
// endpoint reports the refusal explicitly.
func (s *forumService) GetTopic(ctx context.Context, actor *models.User, topicID string) (*TopicDetail, error) {
	topic, err := s.repo.Forum().GetTopic(ctx, nil, topicID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTopicNotFound
		}
		return nil, fmt.Errorf("failed to get topic: %w", err)
	}

	visible, err := s.canView(ctx, actor, topic)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, NewPermissionError(actor.ID, "view", "topic reserved for followers")
	}

	if err := s.repo.Forum().IncrementViews(ctx, nil, topicID); err != nil {
		s.logger.Warn("failed to increment topic views", "error", err, "topic_id", topicID)
	} else {
		topic.ViewsCount++
	}

	posts, err := s.repo.Forum().ListPosts(ctx, nil, topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return &TopicDetail{Topic: topic, Posts: posts}, nil
}

// ListTopics silently drops followers-only topics the caller may not see.
func (s *forumService) ListTopics(ctx context.Context, actor *models.User, filters repositories.TopicFilters) ([]*models.Topic, error) {
	if filters.Limit <= 0 {
		filters.Limit = 50
	}

	topics, err := s.repo.Forum().ListTopics(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}

	visible := make([]*models.Topic, 0, len(topics))
	for _, topic := range topics {
		ok, err := s.canView(ctx, actor, topic)
		if err != nil {
			return nil, err
		}
		if ok {
			visible = append(visible, topic)
		}
	}
	return visible, nil
}

func (s *forumService) DeleteTopic(ctx context.Context, actor *models.User, topicID string) error {
	topic, err := s.repo.Forum().GetTopic(ctx, nil, topicID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrTopicNotFound
		}
		return fmt.Errorf("failed to get topic: %w", err)
	}

	// Authors may remove their own topics, admins any topic.
	if topic.AuthorID != actor.ID {
		if err := Authorize(actor, OpDeleteTopic); err != nil {
			return err
		}
	}

	if err := s.repo.Forum().DeleteTopic(ctx, nil, topicID); err != nil {
		return fmt.Errorf("failed to delete topic: %w", err)
	}

	s.logger.Info("topic deleted", "topic_id", topicID, "actor_id", actor.ID)
	return nil
}

// CreatePost adds a reply, bumps the counter and notifies the topic
// author unless they are replying to themselves.
func (s *forumService) CreatePost(ctx context.Context, actor *models.User, topicID string, req *validator.PostCreateRequest) (*models.Post, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	topic, err := s.repo.Forum().GetTopic(ctx, nil, topicID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTopicNotFound
		}
		return nil, fmt.Errorf("failed to get topic: %w", err)
	}

	visible, err := s.canView(ctx, actor, topic)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, NewPermissionError(actor.ID, "reply to", "topic reserved for followers")
	}

	post := &models.Post{
		TopicID:    topicID,
		AuthorID:   actor.ID,
		AuthorName: actor.Name,
		AuthorRole: actor.Role,
		Content:    req.Content,
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Forum().CreatePost(ctx, nil, post); err != nil {
			return err
		}
		return txRepo.Forum().IncrementReplies(ctx, nil, topicID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	if topic.AuthorID != actor.ID {
		s.notifications.Notify(ctx, topic.AuthorID, models.NotificationForumReply, NotifyParams{
			ActorName:  actor.Name,
			TopicTitle: topic.Title,
			Link:       "/forum/topics/" + topicID,
		})
	}

	if err := s.publisher.Publish(ctx, events.NewEvent(events.EventPostCreated, map[string]string{
		"post_id":   post.ID,
		"topic_id":  topicID,
		"author_id": actor.ID,
	})); err != nil {
		s.logger.Warn("failed to publish post event", "error", err, "post_id", post.ID)
	}

	return post, nil
}

// notifyFollowers fans a new-topic notification out to everyone
// following the author. Best-effort: a failed follower lookup is
// logged and the topic stays created.
func (s *forumService) notifyFollowers(ctx context.Context, author *models.User, topic *models.Topic) {
	followers, err := s.repo.Social().ListFollowers(ctx, nil, author.ID)
	if err != nil {
		s.logger.Warn("failed to list followers for fan-out", "error", err, "author_id", author.ID)
		return
	}

	for _, follow := range followers {
		s.notifications.Notify(ctx, follow.FollowerID, models.NotificationNewPost, NotifyParams{
			ActorName:  author.Name,
			TopicTitle: topic.Title,
			Link:       "/forum/topics/" + topic.ID,
		})
	}
}

// canView applies the followers-only rule. Authors always see their own
// topics; everyone else needs a follow edge to the author.
func (s *forumService) canView(ctx context.Context, actor *models.User, topic *models.Topic) (bool, error) {
	if topic.Visibility != models.VisibilityFollowersOnly {
		return true, nil
	}
	if topic.AuthorID == actor.ID {
		return true, nil
	}
	follows, err := s.repo.Social().Exists(ctx, nil, actor.ID, topic.AuthorID)
	if err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}
	return follows, nil
}
