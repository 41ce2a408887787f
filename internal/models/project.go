package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is the central aggregate root. All owned relations below are
// removed together with the project, except Documents which are detached.
type Project struct {
	ID              uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	ReferenceNumber string     `json:"reference_number" gorm:"uniqueIndex;not null"`
	Name            string     `json:"name" gorm:"not null"`
	Description     string     `json:"description"`
	Pin             *string    `json:"pin,omitempty" gorm:"uniqueIndex"`
	Status          string     `json:"status"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	ClientID        *uuid.UUID `json:"client_id,omitempty" gorm:"type:uuid"`
	CreatedAt       time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	Client      *Client             `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Tasks       []Task              `json:"tasks,omitempty" gorm:"foreignKey:ProjectID"`
	Assignments []ProjectAssignment `json:"assignments,omitempty" gorm:"foreignKey:ProjectID"`
	Checklists  []ProjectChecklist  `json:"checklists,omitempty" gorm:"foreignKey:ProjectID"`
	Attachments []ProjectAttachment `json:"attachments,omitempty" gorm:"foreignKey:ProjectID"`
	Documents   []Document          `json:"documents,omitempty" gorm:"foreignKey:ProjectID"`
	Tenders     []Tender            `json:"tenders,omitempty" gorm:"foreignKey:ProjectID"`
}

// ProjectAssignment links a user to a project in a given role.
type ProjectAssignment struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	ProjectID uuid.UUID `json:"project_id" gorm:"type:uuid;not null"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

type ProjectChecklist struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	ProjectID uuid.UUID `json:"project_id" gorm:"type:uuid;not null"`
	Title     string    `json:"title" gorm:"not null"`
	Done      bool      `json:"done" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// ProjectAttachment is a file uploaded against a project. The binary lives in
// the object store under StorageKey; the row only holds metadata.
type ProjectAttachment struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	ProjectID   uuid.UUID `json:"project_id" gorm:"type:uuid;not null"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	StorageKey  string    `json:"storage_key"`
	UploadedAt  time.Time `json:"uploaded_at" gorm:"autoCreateTime"`
}
