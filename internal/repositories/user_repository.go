package repositories

import (
	"context"

	"github.com/scolink/community-service/internal/models"
	"gorm.io/gorm"
)

// UserRepository interface for account operations
type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*models.User, error)

	// Update applies a partial update. Callers are responsible for
	// stripping fields users may not change themselves.
	Update(ctx context.Context, tx *gorm.DB, id string, updates map[string]interface{}) error

	// Search matches name case-insensitively, optionally filtered by role.
	Search(ctx context.Context, tx *gorm.DB, filters UserFilters) ([]*models.User, error)

	ListByRole(ctx context.Context, tx *gorm.DB, role models.UserRole) ([]*models.User, error)

	// ListStudentsByLevel returns the students enrolled in a level, used
	// for assignment fan-out.
	ListStudentsByLevel(ctx context.Context, tx *gorm.DB, levelID string) ([]*models.User, error)

	ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	SetValidation(ctx context.Context, tx *gorm.DB, id string, validated bool) error
	CountByRole(ctx context.Context, tx *gorm.DB, role models.UserRole) (int64, error)
}
