package models

import (
	"time"

	"github.com/google/uuid"
)

// Booking is one concrete occupation of a timeslot occurrence. StartDate and
// EndDate are the resolved occurrence instants computed by the interval
// validator, never raw client input.
type Booking struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TimeslotID uuid.UUID `gorm:"not null" json:"timeslot_id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Email      *string   `gorm:"size:255" json:"email,omitempty"`
	StartDate  time.Time `gorm:"not null" json:"start_date"`
	EndDate    time.Time `gorm:"not null" json:"end_date"`
	IsVerified bool      `gorm:"not null;default:false" json:"is_verified"`

	Timeslot Timeslot `gorm:"foreignkey:TimeslotID" json:"timeslot,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
