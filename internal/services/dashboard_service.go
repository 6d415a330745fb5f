package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"gorm.io/gorm"

	"github.com/scolink/community-service/internal/models"
	"github.com/scolink/community-service/internal/repositories"
)

type dashboardService struct {
	repo   repositories.Repository
	db     *gorm.DB
	logger *slog.Logger
}

func NewDashboardService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger) DashboardService {
	return &dashboardService{repo: repo, db: db, logger: logger}
}

func (s *dashboardService) AdminStats(ctx context.Context, actor *models.User) (*AdminStats, error) {
	if err := Authorize(actor, OpViewAdminStats); err != nil {
		return nil, err
	}

	counts, err := s.repo.Stats().PlatformCounts(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load platform counts: %w", err)
	}

	return &AdminStats{
		TotalUsers:       counts.TotalUsers,
		TotalStudents:    counts.TotalStudents,
		TotalTeachers:    counts.TotalTeachers,
		PendingTeachers:  counts.PendingTeachers,
		TotalTopics:      counts.TotalTopics,
		TotalPosts:       counts.TotalPosts,
		TotalAssignments: counts.TotalAssignments,
		TotalBranches:    counts.TotalBranches,
	}, nil
}

func (s *dashboardService) TeacherStats(ctx context.Context, actor *models.User) (*TeacherStats, error) {
	if err := Authorize(actor, OpViewTeacherStats); err != nil {
		return nil, err
	}

	counts, err := s.repo.Stats().TeacherCounts(ctx, nil, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load teacher counts: %w", err)
	}

	return &TeacherStats{
		TotalAssignments: counts.TotalAssignments,
		TotalTopics:      counts.TotalTopics,
		TotalFollowers:   counts.TotalFollowers,
	}, nil
}

// StudentStats reports assignment progress for the student's level and
// their average score as a percentage of points earned per answered question.
func (s *dashboardService) StudentStats(ctx context.Context, actor *models.User) (*StudentStats, error) {
	if err := Authorize(actor, OpViewStudentStats); err != nil {
		return nil, err
	}

	stats := &StudentStats{}

	if actor.LevelID != nil {
		total, err := s.repo.Assignment().CountByLevel(ctx, nil, *actor.LevelID)
		if err != nil {
			return nil, fmt.Errorf("failed to count assignments: %w", err)
		}
		stats.TotalAssignments = total
	}

	completed, err := s.repo.Assignment().CompletedAssignmentIDs(ctx, nil, actor.ID, actor.LevelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed assignments: %w", err)
	}
	stats.CompletedAssignments = int64(len(completed))

	answers, err := s.repo.Assignment().ListAnswersByStudent(ctx, nil, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}
	// Ungraded answers count as zero but still widen the denominator.
	totalScore := 0
	for _, a := range answers {
		if a.Score != nil {
			totalScore += *a.Score
		}
	}
	if len(answers) > 0 {
		stats.AverageScore = math.Round(float64(totalScore)/float64(len(answers))*100*100) / 100
	}

	following, err := s.repo.Social().CountFollowing(ctx, nil, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count following: %w", err)
	}
	stats.Following = following

	return stats, nil
}
