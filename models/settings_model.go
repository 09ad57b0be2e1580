package models

import "time"

// Settings is a single-row table (ID = 1). Updates replace the whole row.
type Settings struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingDeadlineMillis   int64 `gorm:"not null;default:0" json:"booking_deadline_millis"`
	EnableBookingDeadline   bool  `gorm:"not null;default:false" json:"enable_booking_deadline"`
	MaxBookingWeekDistance  int   `gorm:"not null;default:-1" json:"max_booking_week_distance"`
	RequireMailConfirmation bool  `gorm:"not null;default:false" json:"require_mail_confirmation"`

	UpdatedAt time.Time `json:"updated_at"`
}
