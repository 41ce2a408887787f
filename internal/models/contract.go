package models

import (
	"time"

	"github.com/google/uuid"
)

// Contract is a signed agreement. Beyond its generated reference number the
// entity is plain CRUD.
type Contract struct {
	ID              uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	ReferenceNumber string     `json:"reference_number" gorm:"uniqueIndex;not null"`
	Title           string     `json:"title" gorm:"not null"`
	PartyName       string     `json:"party_name"`
	ProjectID       *uuid.UUID `json:"project_id,omitempty" gorm:"type:uuid"`
	Value           float64    `json:"value"`
	SignedAt        *time.Time `json:"signed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}
