package models

import (
	"github.com/google/uuid"
)

// Timeslot is a time-of-day template on a weekday. Capacity bounds concurrent
// bookings per concrete occurrence, not per template.
type Timeslot struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	WeekdayID    uuid.UUID `gorm:"not null" json:"weekday_id"`
	StartHours   int       `gorm:"not null" json:"start_hours"`
	StartMinutes int       `gorm:"not null" json:"start_minutes"`
	EndHours     int       `gorm:"not null" json:"end_hours"`
	EndMinutes   int       `gorm:"not null" json:"end_minutes"`
	Capacity     int       `gorm:"not null;default:1" json:"capacity"`

	Weekday  Weekday   `gorm:"foreignkey:WeekdayID" json:"weekday,omitempty"`
	Bookings []Booking `gorm:"foreignkey:TimeslotID;constraint:OnDelete:CASCADE" json:"bookings,omitempty"`
}
