package models

import (
	"time"

	"github.com/google/uuid"
)

// Invitation status values. The state machine is deliberately small:
// PENDING -> ACCEPTED and nothing else. There is no declined, expired or
// revoked state in the current workflow.
const (
	InvitationStatusPending  = "PENDING"
	InvitationStatusAccepted = "ACCEPTED"
)

// Tender belongs to a Project and optionally references a Client.
type Tender struct {
	ID              uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	ReferenceNumber string     `json:"reference_number" gorm:"uniqueIndex;not null"`
	ProjectID       uuid.UUID  `json:"project_id" gorm:"type:uuid;not null"`
	ClientID        *uuid.UUID `json:"client_id,omitempty" gorm:"type:uuid"`
	Title           string     `json:"title" gorm:"not null"`
	Description     string     `json:"description"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	Project     *Project              `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Client      *Client               `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Invitations []TenderInvitation    `json:"invitations,omitempty" gorm:"foreignKey:TenderID"`
	Submissions []TechnicalSubmission `json:"submissions,omitempty" gorm:"foreignKey:TenderID"`
}

// TenderInvitation binds a tender to an invited engineer through an opaque
// token. The token carries no subject identifiers; tender and engineer are
// resolved from the row it indexes.
type TenderInvitation struct {
	ID              uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	TenderID        uuid.UUID  `json:"tender_id" gorm:"type:uuid;not null"`
	EngineerID      uuid.UUID  `json:"engineer_id" gorm:"type:uuid;not null"`
	InvitationToken string     `json:"-" gorm:"uniqueIndex;not null"`
	Status          string     `json:"status" gorm:"not null;default:'PENDING'"`
	AcceptedAt      *time.Time `json:"accepted_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	Tender   *Tender `json:"tender,omitempty" gorm:"foreignKey:TenderID"`
	Engineer *User   `json:"engineer,omitempty" gorm:"foreignKey:EngineerID"`
}

// TechnicalSubmission is an engineer's submitted offer for a tender.
type TechnicalSubmission struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	TenderID    uuid.UUID `json:"tender_id" gorm:"type:uuid;not null"`
	EngineerID  uuid.UUID `json:"engineer_id" gorm:"type:uuid;not null"`
	Summary     string    `json:"summary"`
	StorageKey  string    `json:"storage_key"`
	SubmittedAt time.Time `json:"submitted_at" gorm:"autoCreateTime"`

	Engineer *User `json:"engineer,omitempty" gorm:"foreignKey:EngineerID"`
}
