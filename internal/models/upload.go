package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FileUpload records a stored file and who uploaded it. StoredName is
// the randomized on-disk name, OriginalName what the client sent.
type FileUpload struct {
	ID           string `json:"id" gorm:"primaryKey;size:36"`
	UploaderID   string `json:"uploader_id" gorm:"not null;size:36;index"`
	OriginalName string `json:"original_name" gorm:"not null;size:255"`
	StoredName   string `json:"stored_name" gorm:"not null;size:255;uniqueIndex"`
	ContentType  string `json:"content_type" gorm:"size:100"`
	SizeBytes    int64  `json:"size_bytes"`
	URL          string `json:"url" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at"`
}

func (FileUpload) TableName() string { return "file_uploads" }

func (f *FileUpload) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
