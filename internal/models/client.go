package models

import (
	"time"

	"github.com/google/uuid"
)

// Client is a customer of the company. Projects and Tenders may reference a
// Client through a nullable foreign key; the client may also carry a single
// registration document stored in the object store.
type Client struct {
	ID              uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	ReferenceNumber string    `json:"reference_number" gorm:"uniqueIndex;not null"`
	Name            string    `json:"name" gorm:"not null"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Address         string    `json:"address"`
	DocumentKey     *string   `json:"document_key,omitempty"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Projects []Project `json:"projects,omitempty" gorm:"foreignKey:ClientID"`
	Tenders  []Tender  `json:"tenders,omitempty" gorm:"foreignKey:ClientID"`
}
