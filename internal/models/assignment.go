package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AssignmentType string

const (
	AssignmentQuiz       AssignmentType = "quiz"
	AssignmentSubmission AssignmentType = "submission"
)

type QuestionType string

const (
	QuestionMCQ       QuestionType = "mcq"
	QuestionText      QuestionType = "text"
	QuestionTrueFalse QuestionType = "true_false"
)

// Assignment is homework published by a validated teacher for a level.
// A nil DueDate means no deadline.
type Assignment struct {
	ID          string `json:"id" gorm:"primaryKey;size:36"`
	Title       string `json:"title" gorm:"not null;size:200;index"`
	Description string `json:"description" gorm:"type:text"`

	SubjectID string `json:"subject_id" gorm:"not null;size:36;index"`
	BranchID  string `json:"branch_id" gorm:"not null;size:36;index"`
	LevelID   string `json:"level_id" gorm:"not null;size:36;index"`
	TeacherID string `json:"teacher_id" gorm:"not null;size:36;index"`

	DueDate        *time.Time     `json:"due_date"`
	AssignmentType AssignmentType `json:"assignment_type" gorm:"size:20;default:quiz"`
	AllowFiles     bool           `json:"allow_files" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
}

// Question belongs to one assignment. Options is only populated for MCQ.
type Question struct {
	ID           string `json:"id" gorm:"primaryKey;size:36"`
	AssignmentID string `json:"assignment_id" gorm:"not null;size:36;index"`

	QuestionType  QuestionType   `json:"question_type" gorm:"not null;size:20"`
	QuestionText  string         `json:"question_text" gorm:"type:text;not null"`
	Options       datatypes.JSON `json:"options,omitempty"`
	CorrectAnswer string         `json:"correct_answer" gorm:"not null;size:500"`
	Points        int            `json:"points" gorm:"default:1"`

	CreatedAt time.Time `json:"created_at"`
}

// StudentAnswer records one student's answer to one question. IsCorrect and
// Score stay nil when the referenced question no longer exists (ungraded).
type StudentAnswer struct {
	ID           string `json:"id" gorm:"primaryKey;size:36"`
	AssignmentID string `json:"assignment_id" gorm:"not null;size:36;index:idx_answers_assignment_student"`
	QuestionID   string `json:"question_id" gorm:"not null;size:36;index"`
	StudentID    string `json:"student_id" gorm:"not null;size:36;index:idx_answers_assignment_student"`

	AnswerValue string `json:"answer_value" gorm:"type:text;not null"`
	IsCorrect   *bool  `json:"is_correct"`
	Score       *int   `json:"score"`

	CreatedAt time.Time `json:"created_at"`
}

func (Assignment) TableName() string    { return "assignments" }
func (Question) TableName() string      { return "questions" }
func (StudentAnswer) TableName() string { return "answers" }

func (a *Assignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

func (sa *StudentAnswer) BeforeCreate(tx *gorm.DB) error {
	if sa.ID == "" {
		sa.ID = uuid.NewString()
	}
	return nil
}
