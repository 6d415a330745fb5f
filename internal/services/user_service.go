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

type userService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewUserService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) UserService {
	return &userService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, nil, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies the caller's own profile changes. The request
// type only admits user-editable fields, so role, password and
// validation state can never slip through.
func (s *userService) UpdateProfile(ctx context.Context, actor *models.User, req *validator.ProfileUpdateRequest) (*models.User, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Establishment != nil {
		updates["establishment"] = *req.Establishment
	}
	if req.Objectives != nil {
		updates["objectives"] = *req.Objectives
	}
	if req.BranchID != nil {
		updates["branch_id"] = *req.BranchID
	}
	if req.LevelID != nil {
		updates["level_id"] = *req.LevelID
	}
	if req.Filiere != nil {
		updates["filiere"] = *req.Filiere
	}

	if len(updates) > 0 {
		if err := s.repo.User().Update(ctx, nil, actor.ID, updates); err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	return s.GetProfile(ctx, actor.ID)
}

// Search matches names case-insensitively, optionally narrowed by role.
func (s *userService) Search(ctx context.Context, query string, role *models.UserRole) ([]*models.User, error) {
	users, err := s.repo.User().Search(ctx, nil, repositories.UserFilters{
		Query: query,
		Role:  role,
		Limit: 20,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return users, nil
}

func (s *userService) ListPendingTeachers(ctx context.Context, actor *models.User) ([]*models.User, error) {
	if err := Authorize(actor, OpValidateTeacher); err != nil {
		return nil, err
	}

	teachers, err := s.repo.User().ListByRole(ctx, nil, models.RoleTeacher)
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}

	pending := make([]*models.User, 0)
	for _, t := range teachers {
		if !t.IsValidated {
			pending = append(pending, t)
		}
	}
	return pending, nil
}

func (s *userService) ValidateTeacher(ctx context.Context, actor *models.User, teacherID string) error {
	if err := Authorize(actor, OpValidateTeacher); err != nil {
		return err
	}

	teacher, err := s.repo.User().GetByID(ctx, nil, teacherID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get teacher: %w", err)
	}
	if teacher.Role != models.RoleTeacher {
		return NewBusinessRuleError("validate_teacher", "only teacher accounts can be validated")
	}

	if err := s.repo.User().SetValidation(ctx, nil, teacherID, true); err != nil {
		return fmt.Errorf("failed to validate teacher: %w", err)
	}

	s.logger.Info("teacher validated", "teacher_id", teacherID, "admin_id", actor.ID)

	if err := s.publisher.Publish(ctx, events.NewEvent(events.EventTeacherValidated, map[string]string{
		"teacher_id": teacherID,
		"admin_id":   actor.ID,
	})); err != nil {
		s.logger.Warn("failed to publish validation event", "error", err, "teacher_id", teacherID)
	}

	return nil
}
