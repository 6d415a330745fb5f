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

type StatsPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewStatsPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.StatsRepository {
	return &StatsPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (s *StatsPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return s.db
}

// PlatformCounts aggregates the counts shown on the admin dashboard.
// The result is cached briefly since every admin page load requests it.
func (s *StatsPostgreSQL) PlatformCounts(ctx context.Context, tx *gorm.DB) (*repositories.PlatformCounts, error) {
	var counts repositories.PlatformCounts

	err := s.cacheManager.Stats.CacheOrExecute(ctx, "platform", &counts, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		db := s.getDB(tx).WithContext(ctx)
		var c repositories.PlatformCounts

		if err := db.Model(&models.User{}).Count(&c.TotalUsers).Error; err != nil {
			return nil, fmt.Errorf("failed to count users: %w", err)
		}
		if err := db.Model(&models.User{}).Where("role = ?", models.RoleStudent).Count(&c.TotalStudents).Error; err != nil {
			return nil, fmt.Errorf("failed to count students: %w", err)
		}
		if err := db.Model(&models.User{}).Where("role = ?", models.RoleTeacher).Count(&c.TotalTeachers).Error; err != nil {
			return nil, fmt.Errorf("failed to count teachers: %w", err)
		}
		if err := db.Model(&models.User{}).
			Where("role = ? AND is_validated = ?", models.RoleTeacher, false).
			Count(&c.PendingTeachers).Error; err != nil {
			return nil, fmt.Errorf("failed to count pending teachers: %w", err)
		}
		if err := db.Model(&models.Topic{}).Count(&c.TotalTopics).Error; err != nil {
			return nil, fmt.Errorf("failed to count topics: %w", err)
		}
		if err := db.Model(&models.Post{}).Count(&c.TotalPosts).Error; err != nil {
			return nil, fmt.Errorf("failed to count posts: %w", err)
		}
		if err := db.Model(&models.Assignment{}).Count(&c.TotalAssignments).Error; err != nil {
			return nil, fmt.Errorf("failed to count assignments: %w", err)
		}
		if err := db.Model(&models.Branch{}).Count(&c.TotalBranches).Error; err != nil {
			return nil, fmt.Errorf("failed to count branches: %w", err)
		}
		return &c, nil
	})
	if err != nil {
		return nil, err
	}
	return &counts, nil
}

func (s *StatsPostgreSQL) TeacherCounts(ctx context.Context, tx *gorm.DB, teacherID string) (*repositories.TeacherCounts, error) {
	db := s.getDB(tx).WithContext(ctx)
	var c repositories.TeacherCounts

	if err := db.Model(&models.Assignment{}).Where("teacher_id = ?", teacherID).Count(&c.TotalAssignments).Error; err != nil {
		return nil, fmt.Errorf("failed to count teacher assignments: %w", err)
	}
	if err := db.Model(&models.Topic{}).Where("author_id = ?", teacherID).Count(&c.TotalTopics).Error; err != nil {
		return nil, fmt.Errorf("failed to count teacher topics: %w", err)
	}
	if err := db.Model(&models.Follow{}).Where("followed_id = ?", teacherID).Count(&c.TotalFollowers).Error; err != nil {
		return nil, fmt.Errorf("failed to count followers: %w", err)
	}
	return &c, nil
}
