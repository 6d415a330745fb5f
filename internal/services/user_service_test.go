package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/scolink/community-service/internal/events"
	"github.com/scolink/community-service/internal/models"
	"github.com/scolink/community-service/internal/validator"
)

func newUserFixture(t *testing.T) (*fakeRepo, UserService) {
	t.Helper()
	repo := newFakeRepo()
	publisher := events.NewMockEventPublisher(testLogger())
	service := NewUserService(repo, nil, testLogger(), validator.New(), publisher)
	return repo, service
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	repo, service := newUserFixture(t)
	user := seedUser(t, repo, models.RoleStudent, "Alice")

	newName := "Alice Dupont"
	bio := "En seconde au lycée."
	updated, err := service.UpdateProfile(ctx, user, &validator.ProfileUpdateRequest{Name: &newName, Bio: &bio})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Name != newName {
		t.Errorf("expected name %q, got %q", newName, updated.Name)
	}
	if updated.Bio == nil || *updated.Bio != bio {
		t.Error("bio not updated")
	}

	t.Run("too short name is rejected", func(t *testing.T) {
		bad := "A"
		if _, err := service.UpdateProfile(ctx, user, &validator.ProfileUpdateRequest{Name: &bad}); !IsValidationError(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestUserService_Search(t *testing.T) {
	ctx := context.Background()
	repo, service := newUserFixture(t)

	seedUser(t, repo, models.RoleTeacher, "Martin Prof")
	seedUser(t, repo, models.RoleStudent, "Martin Eleve")
	seedUser(t, repo, models.RoleStudent, "Julie")

	t.Run("name match", func(t *testing.T) {
		users, err := service.Search(ctx, "martin", nil)
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(users) != 2 {
			t.Errorf("expected 2 matches, got %d", len(users))
		}
	})

	t.Run("role filter", func(t *testing.T) {
		role := models.RoleTeacher
		users, err := service.Search(ctx, "martin", &role)
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(users) != 1 || users[0].Role != models.RoleTeacher {
			t.Errorf("expected only the teacher, got %+v", users)
		}
	})

	t.Run("capped at 20 results", func(t *testing.T) {
		for i := 0; i < 30; i++ {
			seedUser(t, repo, models.RoleStudent, fmt.Sprintf("Bulk%02d", i))
		}
		users, err := service.Search(ctx, "bulk", nil)
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(users) != 20 {
			t.Errorf("expected 20 results, got %d", len(users))
		}
	})
}

func TestUserService_ValidateTeacher(t *testing.T) {
	ctx := context.Background()
	repo, service := newUserFixture(t)

	admin := seedUser(t, repo, models.RoleAdmin, "Admin")
	teacher := seedUser(t, repo, models.RoleTeacher, "Prof")
	student := seedUser(t, repo, models.RoleStudent, "Alice")

	t.Run("pending list", func(t *testing.T) {
		pending, err := service.ListPendingTeachers(ctx, admin)
		if err != nil {
			t.Fatalf("ListPendingTeachers failed: %v", err)
		}
		if len(pending) != 1 || pending[0].ID != teacher.ID {
			t.Errorf("expected only the pending teacher, got %+v", pending)
		}
	})

	t.Run("admin validates", func(t *testing.T) {
		if err := service.ValidateTeacher(ctx, admin, teacher.ID); err != nil {
			t.Fatalf("ValidateTeacher failed: %v", err)
		}
		if !teacher.IsValidated {
			t.Error("teacher should be validated")
		}

		pending, _ := service.ListPendingTeachers(ctx, admin)
		if len(pending) != 0 {
			t.Errorf("expected no pending teachers, got %d", len(pending))
		}
	})

	t.Run("students cannot be validated", func(t *testing.T) {
		if err := service.ValidateTeacher(ctx, admin, student.ID); !IsBusinessRuleError(err) {
			t.Fatalf("expected business rule error, got %v", err)
		}
	})

	t.Run("non-admin is refused", func(t *testing.T) {
		if err := service.ValidateTeacher(ctx, student, teacher.ID); !IsPermissionError(err) {
			t.Fatalf("expected permission error, got %v", err)
		}
	})

	t.Run("unknown teacher", func(t *testing.T) {
		if err := service.ValidateTeacher(ctx, admin, "ghost"); !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}
