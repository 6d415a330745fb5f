package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Branch is the top tier of the academic taxonomy (e.g. Lycée).
type Branch struct {
	ID       string `json:"id" gorm:"primaryKey;size:36"`
	Name     string `json:"name" gorm:"not null;size:100"`
	NameEn   string `json:"name_en" gorm:"not null;size:100"`
	IsActive bool   `json:"is_active" gorm:"default:true"`

	CreatedAt time.Time `json:"created_at"`
}

// Level is a grade within a branch (e.g. Seconde).
type Level struct {
	ID       string `json:"id" gorm:"primaryKey;size:36"`
	BranchID string `json:"branch_id" gorm:"not null;size:36;index"`
	Name     string `json:"name" gorm:"not null;size:100"`
	NameEn   string `json:"name_en" gorm:"not null;size:100"`

	CreatedAt time.Time `json:"created_at"`
}

// Subject is a course discipline (e.g. Mathématiques). Branch/level scoping
// is optional; a subject may apply platform-wide.
type Subject struct {
	ID       string  `json:"id" gorm:"primaryKey;size:36"`
	Name     string  `json:"name" gorm:"not null;size:100"`
	NameEn   string  `json:"name_en" gorm:"not null;size:100"`
	BranchID *string `json:"branch_id" gorm:"size:36;index"`
	LevelID  *string `json:"level_id" gorm:"size:36;index"`

	CreatedAt time.Time `json:"created_at"`
}

// TeacherSubject links a teacher to a subject they declare teaching.
type TeacherSubject struct {
	ID        string `json:"id" gorm:"primaryKey;size:36"`
	TeacherID string `json:"teacher_id" gorm:"not null;size:36;index"`
	SubjectID string `json:"subject_id" gorm:"not null;size:36;index"`

	CreatedAt time.Time `json:"created_at"`
}

func (Branch) TableName() string         { return "branches" }
func (Level) TableName() string          { return "levels" }
func (Subject) TableName() string        { return "subjects" }
func (TeacherSubject) TableName() string { return "teacher_subjects" }

func (b *Branch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

func (l *Level) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

func (s *Subject) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

func (ts *TeacherSubject) BeforeCreate(tx *gorm.DB) error {
	if ts.ID == "" {
		ts.ID = uuid.NewString()
	}
	return nil
}
