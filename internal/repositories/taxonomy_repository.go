package repositories

import (
	"context"

	"github.com/scolink/community-service/internal/models"
	"gorm.io/gorm"
)

// TaxonomyRepository interface for the branch, level and subject catalog.
// List methods are cache-backed; writes invalidate the cached lists.
type TaxonomyRepository interface {
	CreateBranch(ctx context.Context, tx *gorm.DB, branch *models.Branch) error
	GetBranch(ctx context.Context, tx *gorm.DB, id string) (*models.Branch, error)
	ListBranches(ctx context.Context, tx *gorm.DB, activeOnly bool) ([]*models.Branch, error)

	CreateLevel(ctx context.Context, tx *gorm.DB, level *models.Level) error
	GetLevel(ctx context.Context, tx *gorm.DB, id string) (*models.Level, error)
	ListLevels(ctx context.Context, tx *gorm.DB, branchID *string) ([]*models.Level, error)

	CreateSubject(ctx context.Context, tx *gorm.DB, subject *models.Subject) error
	GetSubject(ctx context.Context, tx *gorm.DB, id string) (*models.Subject, error)
	ListSubjects(ctx context.Context, tx *gorm.DB, filters SubjectFilters) ([]*models.Subject, error)

	AssignTeacherSubject(ctx context.Context, tx *gorm.DB, ts *models.TeacherSubject) error
	RemoveTeacherSubject(ctx context.Context, tx *gorm.DB, teacherID, subjectID string) error
	ListTeacherSubjects(ctx context.Context, tx *gorm.DB, teacherID string) ([]*models.Subject, error)
	TeachesSubject(ctx context.Context, tx *gorm.DB, teacherID, subjectID string) (bool, error)
}
