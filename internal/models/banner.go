package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdBanner is an admin-managed promotional banner. Only active banners
// are served to regular users.
type AdBanner struct {
	ID       string `json:"id" gorm:"primaryKey;size:36"`
	Title    string `json:"title" gorm:"not null;size:200"`
	ImageURL string `json:"image_url" gorm:"not null;size:500"`
	LinkURL  string `json:"link_url" gorm:"size:500"`
	IsActive bool   `json:"is_active" gorm:"default:true;index"`

	CreatedAt time.Time `json:"created_at"`
}

func (AdBanner) TableName() string { return "ad_banners" }

func (b *AdBanner) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
