package repositories

import (
	"github.com/scolink/community-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type UserFilters struct {
	Query  string           `json:"query"` // Case-insensitive name match
	Role   *models.UserRole `json:"role"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

type TopicFilters struct {
	BranchID  *string `json:"branch_id"`
	LevelID   *string `json:"level_id"`
	SubjectID *string `json:"subject_id"`
	AuthorID  *string `json:"author_id"`
	Limit     int     `json:"limit"`
	Offset    int     `json:"offset"`
}

type AssignmentFilters struct {
	BranchID  *string `json:"branch_id"`
	LevelID   *string `json:"level_id"`
	SubjectID *string `json:"subject_id"`
	TeacherID *string `json:"teacher_id"`
	Limit     int     `json:"limit"`
	Offset    int     `json:"offset"`
}

type SubjectFilters struct {
	BranchID *string `json:"branch_id"`
	LevelID  *string `json:"level_id"`
}

// ===== SHARED STATISTICS STRUCTS =====

type PlatformCounts struct {
	TotalUsers       int64 `json:"total_users"`
	TotalStudents    int64 `json:"total_students"`
	TotalTeachers    int64 `json:"total_teachers"`
	PendingTeachers  int64 `json:"pending_teachers"`
	TotalTopics      int64 `json:"total_topics"`
	TotalPosts       int64 `json:"total_posts"`
	TotalAssignments int64 `json:"total_assignments"`
	TotalBranches    int64 `json:"total_branches"`
}

type TeacherCounts struct {
	TotalAssignments int64 `json:"total_assignments"`
	TotalTopics      int64 `json:"total_topics"`
	TotalFollowers   int64 `json:"total_followers"`
}
