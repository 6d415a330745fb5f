package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationNewPost       NotificationType = "new_post"
	NotificationForumReply    NotificationType = "forum_reply"
	NotificationNewAssignment NotificationType = "new_assignment"
	NotificationNewFollower   NotificationType = "new_follower"
)

// Notification carries a French and an English rendering of the same
// message so clients can pick at display time.
type Notification struct {
	ID     string           `json:"id" gorm:"primaryKey;size:36"`
	UserID string           `json:"user_id" gorm:"not null;size:36;index:idx_notifications_user_created"`
	Type   NotificationType `json:"type" gorm:"not null;size:30"`

	Title     string `json:"title" gorm:"not null;size:200"`
	TitleEn   string `json:"title_en" gorm:"size:200"`
	Message   string `json:"message" gorm:"type:text;not null"`
	MessageEn string `json:"message_en" gorm:"type:text"`
	Link      string `json:"link" gorm:"size:500"`

	Read      bool      `json:"read" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_notifications_user_created,sort:desc"`
}

// NotificationSettings holds one user's per-category toggles. Every
// category defaults to enabled.
type NotificationSettings struct {
	ID     string `json:"id" gorm:"primaryKey;size:36"`
	UserID string `json:"user_id" gorm:"not null;size:36;uniqueIndex"`

	NewPosts       bool `json:"new_posts" gorm:"default:true"`
	ForumReplies   bool `json:"forum_replies" gorm:"default:true"`
	NewAssignments bool `json:"new_assignments" gorm:"default:true"`
	NewFollowers   bool `json:"new_followers" gorm:"default:true"`

	UpdatedAt time.Time `json:"updated_at"`
}

func (Notification) TableName() string         { return "notifications" }
func (NotificationSettings) TableName() string { return "notification_settings" }

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

func (ns *NotificationSettings) BeforeCreate(tx *gorm.DB) error {
	if ns.ID == "" {
		ns.ID = uuid.NewString()
	}
	return nil
}

// Allows reports whether the settings permit a notification of the
// given type. Unknown types are always delivered.
func (ns *NotificationSettings) Allows(t NotificationType) bool {
	switch t {
	case NotificationNewPost:
		return ns.NewPosts
	case NotificationForumReply:
		return ns.ForumReplies
	case NotificationNewAssignment:
		return ns.NewAssignments
	case NotificationNewFollower:
		return ns.NewFollowers
	default:
		return true
	}
}

// DefaultNotificationSettings returns all-enabled settings for a user.
func DefaultNotificationSettings(userID string) *NotificationSettings {
	return &NotificationSettings{
		UserID:         userID,
		NewPosts:       true,
		ForumReplies:   true,
		NewAssignments: true,
		NewFollowers:   true,
	}
}
