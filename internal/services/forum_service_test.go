package services

import (
	"context"
	"errors"
	"testing"

	"github.com/scolink/community-service/internal/events"
	"github.com/scolink/community-service/internal/models"
	"github.com/scolink/community-service/internal/validator"
)

func newForumFixture(t *testing.T) (*fakeRepo, ForumService, NotificationService, *events.MockEventPublisher) {
	t.Helper()
	repo := newFakeRepo()
	publisher := events.NewMockEventPublisher(testLogger())
	v := validator.New()
	notifications := NewNotificationService(repo, nil, testLogger(), v, publisher)
	forum := NewForumService(repo, nil, testLogger(), v, notifications, publisher)
	return repo, forum, notifications, publisher
}

func seedTopic(repo *fakeRepo, author *models.User, visibility models.TopicVisibility, title string) *models.Topic {
	topic := &models.Topic{
		ID:         "topic-" + title,
		BranchID:   "branch-1",
		LevelID:    "level-1",
		Title:      title,
		Content:    "content",
		AuthorID:   author.ID,
		AuthorName: author.Name,
		AuthorRole: author.Role,
		Visibility: visibility,
	}
	repo.topics[topic.ID] = topic
	return topic
}

func TestForumService_CreateTopic(t *testing.T) {
	ctx := context.Background()
	repo, forum, _, publisher := newForumFixture(t)

	repo.branches["branch-1"] = &models.Branch{ID: "branch-1", Name: "Lycée", IsActive: true}
	repo.levels["level-1"] = &models.Level{ID: "level-1", BranchID: "branch-1", Name: "Seconde"}
	author := seedUser(t, repo, models.RoleTeacher, "Martin")

	topic, err := forum.CreateTopic(ctx, author, &validator.TopicCreateRequest{
		Title:    "Intégrales",
		Content:  "Comment aborder les intégrales ?",
		BranchID: "branch-1",
		LevelID:  "level-1",
	})
	if err != nil {
		t.Fatalf("CreateTopic failed: %v", err)
	}
	if topic.Visibility != models.VisibilityPublic {
		t.Errorf("expected public default visibility, got %s", topic.Visibility)
	}
	if topic.AuthorName != author.Name || topic.AuthorRole != author.Role {
		t.Error("author snapshot not recorded")
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventTopicCreated {
		t.Errorf("expected a %s event, got %+v", events.EventTopicCreated, published)
	}

	t.Run("followers are notified", func(t *testing.T) {
		follower := seedUser(t, repo, models.RoleStudent, "Abonne")
		stranger := seedUser(t, repo, models.RoleStudent, "Inconnu")
		repo.follows = append(repo.follows, &models.Follow{ID: "fan-1", FollowerID: follower.ID, FollowedID: author.ID})

		if _, err := forum.CreateTopic(ctx, author, &validator.TopicCreateRequest{
			Title:    "Dérivées",
			Content:  "Exercices sur les dérivées",
			BranchID: "branch-1",
			LevelID:  "level-1",
		}); err != nil {
			t.Fatalf("CreateTopic failed: %v", err)
		}

		var notified *models.Notification
		for _, n := range repo.notifications {
			if n.UserID == follower.ID && n.Type == models.NotificationNewPost {
				notified = n
			}
		}
		if notified == nil {
			t.Fatal("expected a new_post notification for the follower")
		}
		if notified.Title != "Nouveau sujet" || notified.TitleEn != "New topic" {
			t.Errorf("unexpected notification titles: %q / %q", notified.Title, notified.TitleEn)
		}
		for _, n := range repo.notifications {
			if n.UserID == stranger.ID {
				t.Error("non-follower should not be notified")
			}
		}
	})

	t.Run("unknown branch", func(t *testing.T) {
		_, err := forum.CreateTopic(ctx, author, &validator.TopicCreateRequest{
			Title:    "Titre valide",
			Content:  "contenu",
			BranchID: "missing",
			LevelID:  "level-1",
		})
		if !errors.Is(err, ErrBranchNotFound) {
			t.Fatalf("expected ErrBranchNotFound, got %v", err)
		}
	})
}

func TestForumService_FollowersOnlyVisibility(t *testing.T) {
	ctx := context.Background()
	repo, forum, _, _ := newForumFixture(t)

	author := seedUser(t, repo, models.RoleTeacher, "Prof")
	follower := seedUser(t, repo, models.RoleStudent, "Fan")
	stranger := seedUser(t, repo, models.RoleStudent, "Passerby")
	repo.follows = append(repo.follows, &models.Follow{ID: "f1", FollowerID: follower.ID, FollowedID: author.ID})

	restricted := seedTopic(repo, author, models.VisibilityFollowersOnly, "reserved")
	open := seedTopic(repo, author, models.VisibilityPublic, "open")

	t.Run("author always sees own topic", func(t *testing.T) {
		if _, err := forum.GetTopic(ctx, author, restricted.ID); err != nil {
			t.Fatalf("author should see own topic: %v", err)
		}
	})

	t.Run("follower sees restricted topic", func(t *testing.T) {
		if _, err := forum.GetTopic(ctx, follower, restricted.ID); err != nil {
			t.Fatalf("follower should see restricted topic: %v", err)
		}
	})

	t.Run("stranger is refused on detail", func(t *testing.T) {
		_, err := forum.GetTopic(ctx, stranger, restricted.ID)
		if !IsPermissionError(err) {
			t.Fatalf("expected permission error, got %v", err)
		}
	})

	t.Run("stranger list omits restricted topic", func(t *testing.T) {
		topics, err := forum.ListTopics(ctx, stranger, topicFilters())
		if err != nil {
			t.Fatalf("ListTopics failed: %v", err)
		}
		for _, topic := range topics {
			if topic.ID == restricted.ID {
				t.Error("restricted topic leaked into stranger's list")
			}
		}
		if !containsTopic(topics, open.ID) {
			t.Error("public topic missing from list")
		}
	})

	t.Run("view bumps counter", func(t *testing.T) {
		before := open.ViewsCount
		if _, err := forum.GetTopic(ctx, stranger, open.ID); err != nil {
			t.Fatalf("GetTopic failed: %v", err)
		}
		if open.ViewsCount != before+1 {
			t.Errorf("expected views %d, got %d", before+1, open.ViewsCount)
		}
	})
}

func TestForumService_CreatePost(t *testing.T) {
	ctx := context.Background()
	repo, forum, _, _ := newForumFixture(t)

	author := seedUser(t, repo, models.RoleTeacher, "Prof")
	replier := seedUser(t, repo, models.RoleStudent, "Eleve")
	topic := seedTopic(repo, author, models.VisibilityPublic, "question")

	post, err := forum.CreatePost(ctx, replier, topic.ID, &validator.PostCreateRequest{Content: "Une réponse"})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if post.AuthorName != replier.Name {
		t.Error("post author snapshot not recorded")
	}
	if topic.RepliesCount != 1 {
		t.Errorf("expected replies_count 1, got %d", topic.RepliesCount)
	}

	// The topic author gets a reply notification with both renderings.
	var notified *models.Notification
	for _, n := range repo.notifications {
		if n.UserID == author.ID && n.Type == models.NotificationForumReply {
			notified = n
		}
	}
	if notified == nil {
		t.Fatal("expected a forum_reply notification for the author")
	}
	if notified.Title != "Nouvelle réponse" || notified.TitleEn != "New reply" {
		t.Errorf("unexpected notification titles: %q / %q", notified.Title, notified.TitleEn)
	}

	t.Run("self reply does not notify", func(t *testing.T) {
		before := len(repo.notifications)
		if _, err := forum.CreatePost(ctx, author, topic.ID, &validator.PostCreateRequest{Content: "Précision"}); err != nil {
			t.Fatalf("CreatePost failed: %v", err)
		}
		if len(repo.notifications) != before {
			t.Error("author should not be notified of their own reply")
		}
	})
}

func TestForumService_DeleteTopic(t *testing.T) {
	ctx := context.Background()
	repo, forum, _, _ := newForumFixture(t)

	author := seedUser(t, repo, models.RoleTeacher, "Prof")
	admin := seedUser(t, repo, models.RoleAdmin, "Admin")
	other := seedUser(t, repo, models.RoleStudent, "Random")

	t.Run("author deletes own topic", func(t *testing.T) {
		topic := seedTopic(repo, author, models.VisibilityPublic, "mine")
		if err := forum.DeleteTopic(ctx, author, topic.ID); err != nil {
			t.Fatalf("DeleteTopic failed: %v", err)
		}
	})

	t.Run("admin deletes any topic", func(t *testing.T) {
		topic := seedTopic(repo, author, models.VisibilityPublic, "moderated")
		if err := forum.DeleteTopic(ctx, admin, topic.ID); err != nil {
			t.Fatalf("DeleteTopic failed: %v", err)
		}
	})

	t.Run("others are refused", func(t *testing.T) {
		topic := seedTopic(repo, author, models.VisibilityPublic, "protected")
		if err := forum.DeleteTopic(ctx, other, topic.ID); !IsPermissionError(err) {
			t.Fatalf("expected permission error, got %v", err)
		}
	})
}
