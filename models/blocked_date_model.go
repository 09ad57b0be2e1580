package models

import (
	"time"

	"github.com/google/uuid"
)

// BlockedDate closes a whole calendar day for booking.
type BlockedDate struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Date time.Time `gorm:"not null" json:"date"`
	Note *string   `gorm:"type:text" json:"note,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
