package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Follow is a directed edge from a student to a teacher. The composite
// unique index enforces at most one edge per pair.
type Follow struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	FollowerID string    `json:"follower_id" gorm:"not null;size:36;uniqueIndex:idx_follows_pair;index"`
	FollowedID string    `json:"followed_id" gorm:"not null;size:36;uniqueIndex:idx_follows_pair;index"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Follow) TableName() string { return "follows" }

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
