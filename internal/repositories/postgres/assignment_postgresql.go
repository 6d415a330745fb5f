package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/scolink/community-service/internal/models"
	"github.com/scolink/community-service/internal/repositories"
)

type AssignmentPostgreSQL struct {
	db *gorm.DB
}

func NewAssignmentPostgreSQL(db *gorm.DB) repositories.AssignmentRepository {
	return &AssignmentPostgreSQL{db: db}
}

func (a *AssignmentPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return a.db
}

// Create persists the assignment and its questions in one transaction
// so a failed question insert never leaves a question-less quiz behind.
func (a *AssignmentPostgreSQL) Create(ctx context.Context, tx *gorm.DB, assignment *models.Assignment, questions []*models.Question) error {
	return a.getDB(tx).WithContext(ctx).Transaction(func(txn *gorm.DB) error {
		if err := txn.Create(assignment).Error; err != nil {
			return fmt.Errorf("failed to create assignment: %w", err)
		}
		for _, q := range questions {
			q.AssignmentID = assignment.ID
		}
		if len(questions) > 0 {
			if err := txn.Create(&questions).Error; err != nil {
				return fmt.Errorf("failed to create questions: %w", err)
			}
		}
		return nil
	})
}

func (a *AssignmentPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Assignment, error) {
	var assignment models.Assignment
	if err := a.getDB(tx).WithContext(ctx).First(&assignment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (a *AssignmentPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.AssignmentFilters) ([]*models.Assignment, error) {
	query := a.getDB(tx).WithContext(ctx).Model(&models.Assignment{})
	query = applyAssignmentFilters(query, filters)
	query = applyPagination(query, filters.Limit, filters.Offset)

	var assignments []*models.Assignment
	if err := query.Find(&assignments).Error; err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

func (a *AssignmentPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	return a.getDB(tx).WithContext(ctx).Transaction(func(txn *gorm.DB) error {
		if err := txn.Where("assignment_id = ?", id).Delete(&models.StudentAnswer{}).Error; err != nil {
			return fmt.Errorf("failed to delete answers: %w", err)
		}
		if err := txn.Where("assignment_id = ?", id).Delete(&models.Question{}).Error; err != nil {
			return fmt.Errorf("failed to delete questions: %w", err)
		}
		result := txn.Delete(&models.Assignment{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete assignment: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (a *AssignmentPostgreSQL) ListQuestions(ctx context.Context, tx *gorm.DB, assignmentID string) ([]*models.Question, error) {
	var questions []*models.Question
	err := a.getDB(tx).WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Order("created_at ASC").
		Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

func (a *AssignmentPostgreSQL) CreateQuestion(ctx context.Context, tx *gorm.DB, question *models.Question) error {
	if err := a.getDB(tx).WithContext(ctx).Create(question).Error; err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

func (a *AssignmentPostgreSQL) GetQuestionsByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*models.Question, error) {
	if len(ids) == 0 {
		return []*models.Question{}, nil
	}
	var questions []*models.Question
	if err := a.getDB(tx).WithContext(ctx).Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	return questions, nil
}

func (a *AssignmentPostgreSQL) CreateAnswers(ctx context.Context, tx *gorm.DB, answers []*models.StudentAnswer) error {
	if len(answers) == 0 {
		return nil
	}
	if err := a.getDB(tx).WithContext(ctx).Create(&answers).Error; err != nil {
		return fmt.Errorf("failed to create answers: %w", err)
	}
	return nil
}

func (a *AssignmentPostgreSQL) ListAnswers(ctx context.Context, tx *gorm.DB, assignmentID, studentID string) ([]*models.StudentAnswer, error) {
	var answers []*models.StudentAnswer
	err := a.getDB(tx).WithContext(ctx).
		Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		Find(&answers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}
	return answers, nil
}

func (a *AssignmentPostgreSQL) ListAnswersForAssignment(ctx context.Context, tx *gorm.DB, assignmentID string) ([]*models.StudentAnswer, error) {
	var answers []*models.StudentAnswer
	err := a.getDB(tx).WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Order("student_id, created_at").
		Find(&answers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list assignment answers: %w", err)
	}
	return answers, nil
}

func (a *AssignmentPostgreSQL) ListAnswersByStudent(ctx context.Context, tx *gorm.DB, studentID string) ([]*models.StudentAnswer, error) {
	var answers []*models.StudentAnswer
	err := a.getDB(tx).WithContext(ctx).
		Where("student_id = ?", studentID).
		Find(&answers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list student answers: %w", err)
	}
	return answers, nil
}

func (a *AssignmentPostgreSQL) HasSubmitted(ctx context.Context, tx *gorm.DB, assignmentID, studentID string) (bool, error) {
	var count int64
	err := a.getDB(tx).WithContext(ctx).
		Model(&models.StudentAnswer{}).
		Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check submission: %w", err)
	}
	return count > 0, nil
}

func (a *AssignmentPostgreSQL) CompletedAssignmentIDs(ctx context.Context, tx *gorm.DB, studentID string, levelID *string) ([]string, error) {
	query := a.getDB(tx).WithContext(ctx).
		Model(&models.StudentAnswer{}).
		Where("student_answers.student_id = ?", studentID)
	if levelID != nil {
		query = query.
			Joins("JOIN assignments ON assignments.id = student_answers.assignment_id").
			Where("assignments.level_id = ?", *levelID)
	}

	var ids []string
	err := query.
		Distinct("student_answers.assignment_id").
		Pluck("student_answers.assignment_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get completed assignments: %w", err)
	}
	return ids, nil
}

func (a *AssignmentPostgreSQL) CountByTeacher(ctx context.Context, tx *gorm.DB, teacherID string) (int64, error) {
	var count int64
	err := a.getDB(tx).WithContext(ctx).
		Model(&models.Assignment{}).
		Where("teacher_id = ?", teacherID).
		Count(&count).Error
	return count, err
}

func (a *AssignmentPostgreSQL) CountByLevel(ctx context.Context, tx *gorm.DB, levelID string) (int64, error) {
	var count int64
	err := a.getDB(tx).WithContext(ctx).
		Model(&models.Assignment{}).
		Where("level_id = ?", levelID).
		Count(&count).Error
	return count, err
}
