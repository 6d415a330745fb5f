package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/scolink/community-service/internal/cache"
	"github.com/scolink/community-service/internal/models"
	"github.com/scolink/community-service/internal/repositories"
)

type TaxonomyPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewTaxonomyPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.TaxonomyRepository {
	return &TaxonomyPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (t *TaxonomyPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return t.db
}

// ===== BRANCHES =====

func (t *TaxonomyPostgreSQL) CreateBranch(ctx context.Context, tx *gorm.DB, branch *models.Branch) error {
	if err := t.getDB(tx).WithContext(ctx).Create(branch).Error; err != nil {
		return fmt.Errorf("failed to create branch: %w", err)
	}
	cache.SafeInvalidatePattern(ctx, t.cacheManager.Taxonomy, "branches:*")
	return nil
}

func (t *TaxonomyPostgreSQL) GetBranch(ctx context.Context, tx *gorm.DB, id string) (*models.Branch, error) {
	var branch models.Branch
	if err := t.getDB(tx).WithContext(ctx).First(&branch, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

func (t *TaxonomyPostgreSQL) ListBranches(ctx context.Context, tx *gorm.DB, activeOnly bool) ([]*models.Branch, error) {
	cacheKey := fmt.Sprintf("branches:active:%t", activeOnly)
	var branches []*models.Branch

	err := t.cacheManager.Taxonomy.CacheOrExecute(ctx, cacheKey, &branches, cache.TaxonomyCacheConfig.TTL, func() (interface{}, error) {
		query := t.getDB(tx).WithContext(ctx).Model(&models.Branch{})
		if activeOnly {
			query = query.Where("is_active = ?", true)
		}
		var dbBranches []*models.Branch
		if err := query.Order("name ASC").Find(&dbBranches).Error; err != nil {
			return nil, fmt.Errorf("failed to list branches: %w", err)
		}
		return dbBranches, nil
	})
	if err != nil {
		return nil, err
	}
	return branches, nil
}

// ===== LEVELS =====

func (t *TaxonomyPostgreSQL) CreateLevel(ctx context.Context, tx *gorm.DB, level *models.Level) error {
	if err := t.getDB(tx).WithContext(ctx).Create(level).Error; err != nil {
		return fmt.Errorf("failed to create level: %w", err)
	}
	cache.SafeInvalidatePattern(ctx, t.cacheManager.Taxonomy, "levels:*")
	return nil
}

func (t *TaxonomyPostgreSQL) GetLevel(ctx context.Context, tx *gorm.DB, id string) (*models.Level, error) {
	var level models.Level
	if err := t.getDB(tx).WithContext(ctx).First(&level, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &level, nil
}

func (t *TaxonomyPostgreSQL) ListLevels(ctx context.Context, tx *gorm.DB, branchID *string) ([]*models.Level, error) {
	cacheKey := "levels:all"
	if branchID != nil {
		cacheKey = "levels:branch:" + *branchID
	}

	var levels []*models.Level
	err := t.cacheManager.Taxonomy.CacheOrExecute(ctx, cacheKey, &levels, cache.TaxonomyCacheConfig.TTL, func() (interface{}, error) {
		query := t.getDB(tx).WithContext(ctx).Model(&models.Level{})
		if branchID != nil {
			query = query.Where("branch_id = ?", *branchID)
		}
		var dbLevels []*models.Level
		if err := query.Order("name ASC").Find(&dbLevels).Error; err != nil {
			return nil, fmt.Errorf("failed to list levels: %w", err)
		}
		return dbLevels, nil
	})
	if err != nil {
		return nil, err
	}
	return levels, nil
}

// ===== SUBJECTS =====

func (t *TaxonomyPostgreSQL) CreateSubject(ctx context.Context, tx *gorm.DB, subject *models.Subject) error {
	if err := t.getDB(tx).WithContext(ctx).Create(subject).Error; err != nil {
		return fmt.Errorf("failed to create subject: %w", err)
	}
	cache.SafeInvalidatePattern(ctx, t.cacheManager.Taxonomy, "subjects:*")
	return nil
}

func (t *TaxonomyPostgreSQL) GetSubject(ctx context.Context, tx *gorm.DB, id string) (*models.Subject, error) {
	var subject models.Subject
	if err := t.getDB(tx).WithContext(ctx).First(&subject, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (t *TaxonomyPostgreSQL) ListSubjects(ctx context.Context, tx *gorm.DB, filters repositories.SubjectFilters) ([]*models.Subject, error) {
	cacheKey := "subjects:all"
	switch {
	case filters.BranchID != nil && filters.LevelID != nil:
		cacheKey = fmt.Sprintf("subjects:branch:%s:level:%s", *filters.BranchID, *filters.LevelID)
	case filters.BranchID != nil:
		cacheKey = "subjects:branch:" + *filters.BranchID
	case filters.LevelID != nil:
		cacheKey = "subjects:level:" + *filters.LevelID
	}

	var subjects []*models.Subject
	err := t.cacheManager.Taxonomy.CacheOrExecute(ctx, cacheKey, &subjects, cache.TaxonomyCacheConfig.TTL, func() (interface{}, error) {
		query := t.getDB(tx).WithContext(ctx).Model(&models.Subject{})
		if filters.BranchID != nil {
			query = query.Where("branch_id = ?", *filters.BranchID)
		}
		if filters.LevelID != nil {
			query = query.Where("level_id = ?", *filters.LevelID)
		}
		var dbSubjects []*models.Subject
		if err := query.Order("name ASC").Find(&dbSubjects).Error; err != nil {
			return nil, fmt.Errorf("failed to list subjects: %w", err)
		}
		return dbSubjects, nil
	})
	if err != nil {
		return nil, err
	}
	return subjects, nil
}

// ===== TEACHER-SUBJECT ASSIGNMENTS =====

func (t *TaxonomyPostgreSQL) AssignTeacherSubject(ctx context.Context, tx *gorm.DB, ts *models.TeacherSubject) error {
	if err := t.getDB(tx).WithContext(ctx).Create(ts).Error; err != nil {
		return fmt.Errorf("failed to assign teacher subject: %w", err)
	}
	return nil
}

func (t *TaxonomyPostgreSQL) RemoveTeacherSubject(ctx context.Context, tx *gorm.DB, teacherID, subjectID string) error {
	result := t.getDB(tx).WithContext(ctx).
		Where("teacher_id = ? AND subject_id = ?", teacherID, subjectID).
		Delete(&models.TeacherSubject{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove teacher subject: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (t *TaxonomyPostgreSQL) ListTeacherSubjects(ctx context.Context, tx *gorm.DB, teacherID string) ([]*models.Subject, error) {
	var subjects []*models.Subject
	err := t.getDB(tx).WithContext(ctx).
		Model(&models.Subject{}).
		Joins("JOIN teacher_subjects ON teacher_subjects.subject_id = subjects.id").
		Where("teacher_subjects.teacher_id = ?", teacherID).
		Find(&subjects).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list teacher subjects: %w", err)
	}
	return subjects, nil
}

func (t *TaxonomyPostgreSQL) TeachesSubject(ctx context.Context, tx *gorm.DB, teacherID, subjectID string) (bool, error) {
	var count int64
	err := t.getDB(tx).WithContext(ctx).
		Model(&models.TeacherSubject{}).
		Where("teacher_id = ? AND subject_id = ?", teacherID, subjectID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check teacher subject: %w", err)
	}
	return count > 0, nil
}
