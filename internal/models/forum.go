package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TopicVisibility string

const (
	VisibilityPublic        TopicVisibility = "public"
	VisibilityFollowersOnly TopicVisibility = "followers_only"
)

// Topic is a forum thread. Author identity is snapshotted at creation so
// renames do not rewrite historical threads.
type Topic struct {
	ID        string  `json:"id" gorm:"primaryKey;size:36"`
	BranchID  string  `json:"branch_id" gorm:"not null;size:36;index"`
	LevelID   string  `json:"level_id" gorm:"not null;size:36;index"`
	SubjectID *string `json:"subject_id" gorm:"size:36;index"`

	Title   string `json:"title" gorm:"not null;size:200"`
	Content string `json:"content" gorm:"type:text;not null"`

	// Author snapshot
	AuthorID   string   `json:"author_id" gorm:"not null;size:36;index"`
	AuthorName string   `json:"author_name" gorm:"size:100"`
	AuthorRole UserRole `json:"author_role" gorm:"size:20"`

	Visibility TopicVisibility `json:"visibility" gorm:"not null;size:20;default:public"`

	// Advisory counters, incremented atomically at the store level.
	ViewsCount   int `json:"views_count" gorm:"default:0"`
	RepliesCount int `json:"replies_count" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
}

// Post is a reply on a topic. Creating one bumps the parent's replies_count.
type Post struct {
	ID      string `json:"id" gorm:"primaryKey;size:36"`
	TopicID string `json:"topic_id" gorm:"not null;size:36;index"`

	AuthorID   string   `json:"author_id" gorm:"not null;size:36;index"`
	AuthorName string   `json:"author_name" gorm:"size:100"`
	AuthorRole UserRole `json:"author_role" gorm:"size:20"`

	Content string `json:"content" gorm:"type:text;not null"`

	CreatedAt time.Time `json:"created_at"`
}

func (Topic) TableName() string { return "topics" }
func (Post) TableName() string  { return "posts" }

func (t *Topic) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// VisibleTo reports whether the topic detail may be shown to the viewer,
// given whether the viewer currently follows the author.
func (t *Topic) VisibleTo(viewerID string, viewerFollowsAuthor bool) bool {
	if t.Visibility != VisibilityFollowersOnly {
		return true
	}
	return t.AuthorID == viewerID || viewerFollowsAuthor
}
