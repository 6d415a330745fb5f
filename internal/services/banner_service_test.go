package services

import (
	"context"
	"errors"
	"testing"

	"github.com/scolink/community-service/internal/models"
	"github.com/scolink/community-service/internal/validator"
)

func newBannerFixture(t *testing.T) (*fakeRepo, BannerService) {
	t.Helper()
	repo := newFakeRepo()
	service := NewBannerService(repo, nil, testLogger(), validator.New())
	return repo, service
}

func TestBannerService_Create(t *testing.T) {
	ctx := context.Background()
	repo, service := newBannerFixture(t)

	admin := seedUser(t, repo, models.RoleAdmin, "Admin")
	teacher := seedUser(t, repo, models.RoleTeacher, "Prof")

	t.Run("active by default", func(t *testing.T) {
		banner, err := service.Create(ctx, admin, &validator.BannerCreateRequest{
			Title:    "Rentrée 2026",
			ImageURL: "https://cdn.example.com/rentree.png",
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if !banner.IsActive {
			t.Error("banner should default to active")
		}
	})

	t.Run("explicit inactive", func(t *testing.T) {
		inactive := false
		banner, err := service.Create(ctx, admin, &validator.BannerCreateRequest{
			Title:    "Brouillon",
			ImageURL: "https://cdn.example.com/draft.png",
			IsActive: &inactive,
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if banner.IsActive {
			t.Error("banner should stay inactive")
		}
	})

	t.Run("missing image is rejected", func(t *testing.T) {
		if _, err := service.Create(ctx, admin, &validator.BannerCreateRequest{Title: "Sans image"}); !IsValidationError(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("non-admin is refused", func(t *testing.T) {
		_, err := service.Create(ctx, teacher, &validator.BannerCreateRequest{
			Title:    "Interdit",
			ImageURL: "https://cdn.example.com/x.png",
		})
		if !IsPermissionError(err) {
			t.Fatalf("expected permission error, got %v", err)
		}
	})
}

func TestBannerService_Visibility(t *testing.T) {
	ctx := context.Background()
	repo, service := newBannerFixture(t)
	admin := seedUser(t, repo, models.RoleAdmin, "Admin")

	inactive := false
	if _, err := service.Create(ctx, admin, &validator.BannerCreateRequest{Title: "Visible", ImageURL: "https://cdn.example.com/a.png"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := service.Create(ctx, admin, &validator.BannerCreateRequest{Title: "Cachée", ImageURL: "https://cdn.example.com/b.png", IsActive: &inactive}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("public list holds active only", func(t *testing.T) {
		banners, err := service.ListActive(ctx)
		if err != nil {
			t.Fatalf("ListActive failed: %v", err)
		}
		if len(banners) != 1 || banners[0].Title != "Visible" {
			t.Errorf("expected only the active banner, got %+v", banners)
		}
	})

	t.Run("admin list holds everything", func(t *testing.T) {
		banners, err := service.ListAll(ctx, admin)
		if err != nil {
			t.Fatalf("ListAll failed: %v", err)
		}
		if len(banners) != 2 {
			t.Errorf("expected 2 banners, got %d", len(banners))
		}
	})
}

func TestBannerService_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	repo, service := newBannerFixture(t)
	admin := seedUser(t, repo, models.RoleAdmin, "Admin")

	banner, err := service.Create(ctx, admin, &validator.BannerCreateRequest{Title: "Avant", ImageURL: "https://cdn.example.com/a.png"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("partial update", func(t *testing.T) {
		title := "Après"
		active := false
		updated, err := service.Update(ctx, admin, banner.ID, &validator.BannerUpdateRequest{Title: &title, IsActive: &active})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.Title != "Après" || updated.IsActive {
			t.Errorf("update not applied: %+v", updated)
		}
	})

	t.Run("unknown banner", func(t *testing.T) {
		title := "X"
		if _, err := service.Update(ctx, admin, "ghost", &validator.BannerUpdateRequest{Title: &title}); !errors.Is(err, ErrBannerNotFound) {
			t.Fatalf("expected ErrBannerNotFound, got %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := service.Delete(ctx, admin, banner.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if err := service.Delete(ctx, admin, banner.ID); !errors.Is(err, ErrBannerNotFound) {
			t.Fatalf("expected ErrBannerNotFound on second delete, got %v", err)
		}
	})
}
