package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
)

// User is an account on the platform. Teachers register unvalidated and are
// blocked from authoring assignments until an admin validates them.
type User struct {
	ID       string   `json:"id" gorm:"primaryKey;size:36"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password string   `json:"-" gorm:"not null;size:255"`
	Name     string   `json:"name" gorm:"not null;size:100"`
	Role     UserRole `json:"role" gorm:"not null;size:20;index"`

	// Taxonomy placement (students and teachers)
	BranchID *string `json:"branch_id" gorm:"size:36;index"`
	LevelID  *string `json:"level_id" gorm:"size:36;index"`
	Filiere  *string `json:"filiere" gorm:"size:100"`

	// Profile info
	AvatarURL     *string `json:"avatar_url" gorm:"size:500"`
	Bio           *string `json:"bio" gorm:"type:text"`
	Establishment *string `json:"establishment" gorm:"size:200"`
	Objectives    *string `json:"objectives" gorm:"type:text"`

	// Teachers start unvalidated; students and admins are validated on creation.
	IsValidated bool `json:"is_validated" gorm:"default:false;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// IsValidRole reports whether the given role string is one of the known roles.
func IsValidRole(role string) bool {
	switch UserRole(role) {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}
