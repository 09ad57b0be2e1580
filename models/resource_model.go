package models

import (
	"github.com/google/uuid"
)

type Resource struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name string    `gorm:"size:255;not null;unique" json:"name"`

	Weekdays []Weekday `gorm:"foreignkey:ResourceID;constraint:OnDelete:CASCADE" json:"weekdays,omitempty"`
}
