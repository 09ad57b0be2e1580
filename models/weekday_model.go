package models

import (
	"github.com/google/uuid"
)

// Weekday is the abstract weekly template under a resource. Name is one of
// monday..sunday; nothing prevents two weekdays with the same name under one
// resource (split shifts).
type Weekday struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ResourceID uuid.UUID `gorm:"not null" json:"resource_id"`
	Name       string    `gorm:"size:20;not null" json:"name"`

	Resource  Resource   `gorm:"foreignkey:ResourceID" json:"-"`
	Timeslots []Timeslot `gorm:"foreignkey:WeekdayID;constraint:OnDelete:CASCADE" json:"timeslots,omitempty"`
}
