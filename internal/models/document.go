package models

import (
	"time"

	"github.com/google/uuid"
)

// Document is a registered company document. It may be linked to a project,
// but it has independent lifecycle value: deleting a project detaches its
// documents instead of removing them.
type Document struct {
	ID              uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	ReferenceNumber string     `json:"reference_number" gorm:"uniqueIndex;not null"`
	Title           string     `json:"title" gorm:"not null"`
	ProjectID       *uuid.UUID `json:"project_id,omitempty" gorm:"type:uuid"`
	ContentType     string     `json:"content_type"`
	Size            int64      `json:"size"`
	StorageKey      string     `json:"storage_key"`
	UploadedAt      time.Time  `json:"uploaded_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}
