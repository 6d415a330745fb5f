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

type taxonomyService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewTaxonomyService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator) TaxonomyService {
	return &taxonomyService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: v,
	}
}

func (s *taxonomyService) CreateBranch(ctx context.Context, actor *models.User, req *validator.BranchCreateRequest) (*models.Branch, error) {
	if err := Authorize(actor, OpManageTaxonomy); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	branch := &models.Branch{
		Name:     req.Name,
		NameEn:   req.NameEn,
		IsActive: true,
	}
	if err := s.repo.Taxonomy().CreateBranch(ctx, nil, branch); err != nil {
		return nil, fmt.Errorf("failed to create branch: %w", err)
	}

	s.logger.Info("branch created", "branch_id", branch.ID, "name", branch.Name)
	return branch, nil
}

func (s *taxonomyService) ListBranches(ctx context.Context) ([]*models.Branch, error) {
	branches, err := s.repo.Taxonomy().ListBranches(ctx, nil, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	return branches, nil
}

func (s *taxonomyService) CreateLevel(ctx context.Context, actor *models.User, req *validator.LevelCreateRequest) (*models.Level, error) {
	if err := Authorize(actor, OpManageTaxonomy); err != nil {
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

	level := &models.Level{
		Name:     req.Name,
		NameEn:   req.NameEn,
		BranchID: req.BranchID,
	}
	if err := s.repo.Taxonomy().CreateLevel(ctx, nil, level); err != nil {
		return nil, fmt.Errorf("failed to create level: %w", err)
	}

	s.logger.Info("level created", "level_id", level.ID, "branch_id", level.BranchID)
	return level, nil
}

func (s *taxonomyService) ListLevels(ctx context.Context, branchID *string) ([]*models.Level, error) {
	levels, err := s.repo.Taxonomy().ListLevels(ctx, nil, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}
	return levels, nil
}

func (s *taxonomyService) CreateSubject(ctx context.Context, actor *models.User, req *validator.SubjectCreateRequest) (*models.Subject, error) {
	if err := Authorize(actor, OpManageTaxonomy); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	subject := &models.Subject{
		Name:     req.Name,
		NameEn:   req.NameEn,
		BranchID: req.BranchID,
		LevelID:  req.LevelID,
	}
	if err := s.repo.Taxonomy().CreateSubject(ctx, nil, subject); err != nil {
		return nil, fmt.Errorf("failed to create subject: %w", err)
	}

	s.logger.Info("subject created", "subject_id", subject.ID, "name", subject.Name)
	return subject, nil
}

func (s *taxonomyService) ListSubjects(ctx context.Context, branchID, levelID *string) ([]*models.Subject, error) {
	subjects, err := s.repo.Taxonomy().ListSubjects(ctx, nil, repositories.SubjectFilters{
		BranchID: branchID,
		LevelID:  levelID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	return subjects, nil
}

func (s *taxonomyService) AssignSubject(ctx context.Context, actor *models.User, req *validator.TeacherSubjectRequest) error {
	if err := Authorize(actor, OpAssignSubject); err != nil {
		return err
	}
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return errs
	}

	if _, err := s.repo.Taxonomy().GetSubject(ctx, nil, req.SubjectID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrSubjectNotFound
		}
		return fmt.Errorf("failed to get subject: %w", err)
	}

	teaches, err := s.repo.Taxonomy().TeachesSubject(ctx, nil, actor.ID, req.SubjectID)
	if err != nil {
		return fmt.Errorf("failed to check teacher subject: %w", err)
	}
	if teaches {
		return NewBusinessRuleError("duplicate_subject", "subject is already assigned to this teacher")
	}

	ts := &models.TeacherSubject{TeacherID: actor.ID, SubjectID: req.SubjectID}
	if err := s.repo.Taxonomy().AssignTeacherSubject(ctx, nil, ts); err != nil {
		return fmt.Errorf("failed to assign subject: %w", err)
	}
	return nil
}

func (s *taxonomyService) RemoveSubject(ctx context.Context, actor *models.User, subjectID string) error {
	if err := Authorize(actor, OpAssignSubject); err != nil {
		return err
	}

	if err := s.repo.Taxonomy().RemoveTeacherSubject(ctx, nil, actor.ID, subjectID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrSubjectNotFound
		}
		return fmt.Errorf("failed to remove subject: %w", err)
	}
	return nil
}

func (s *taxonomyService) ListMySubjects(ctx context.Context, actor *models.User) ([]*models.Subject, error) {
	subjects, err := s.repo.Taxonomy().ListTeacherSubjects(ctx, nil, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teacher subjects: %w", err)
	}
	return subjects, nil
}
