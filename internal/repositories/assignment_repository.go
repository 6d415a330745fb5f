package repositories

import (
	"context"

	"github.com/scolink/community-service/internal/models"
	"gorm.io/gorm"
)

// AssignmentRepository interface for assignments, questions and answers
type AssignmentRepository interface {
	// Create persists the assignment and its questions together.
	Create(ctx context.Context, tx *gorm.DB, assignment *models.Assignment, questions []*models.Question) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Assignment, error)
	List(ctx context.Context, tx *gorm.DB, filters AssignmentFilters) ([]*models.Assignment, error)
	Delete(ctx context.Context, tx *gorm.DB, id string) error

	ListQuestions(ctx context.Context, tx *gorm.DB, assignmentID string) ([]*models.Question, error)
	GetQuestionsByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*models.Question, error)
	CreateQuestion(ctx context.Context, tx *gorm.DB, question *models.Question) error

	CreateAnswers(ctx context.Context, tx *gorm.DB, answers []*models.StudentAnswer) error
	ListAnswers(ctx context.Context, tx *gorm.DB, assignmentID, studentID string) ([]*models.StudentAnswer, error)
	ListAnswersForAssignment(ctx context.Context, tx *gorm.DB, assignmentID string) ([]*models.StudentAnswer, error)
	ListAnswersByStudent(ctx context.Context, tx *gorm.DB, studentID string) ([]*models.StudentAnswer, error)
	HasSubmitted(ctx context.Context, tx *gorm.DB, assignmentID, studentID string) (bool, error)

	// CompletedAssignmentIDs returns the distinct assignments a student
	// has submitted answers for, restricted to the given level when set.
	CompletedAssignmentIDs(ctx context.Context, tx *gorm.DB, studentID string, levelID *string) ([]string, error)

	CountByTeacher(ctx context.Context, tx *gorm.DB, teacherID string) (int64, error)
	CountByLevel(ctx context.Context, tx *gorm.DB, levelID string) (int64, error)
}
