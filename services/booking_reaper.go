package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tobiasmeier/timeslot_booking/models"
)

// Expired reports whether a booking's occurrence has already ended. Such a
// booking is logically deleted and must never reach a caller.
func Expired(booking models.Booking, now time.Time) bool {
	return !now.Before(booking.EndDate)
}

func partitionExpired(bookings []models.Booking, now time.Time) (expired, live []models.Booking) {
	live = make([]models.Booking, 0, len(bookings))
	for _, booking := range bookings {
		if Expired(booking, now) {
			expired = append(expired, booking)
			continue
		}
		live = append(live, booking)
	}
	return expired, live
}

// ReapExpired partitions bookings into expired and live, destroys the expired
// rows and returns the live remainder. Running it again on its own output is
// a no-op.
func ReapExpired(db *gorm.DB, bookings []models.Booking, now time.Time) ([]models.Booking, error) {
	expired, live := partitionExpired(bookings, now)
	for _, booking := range expired {
		if err := db.Delete(&models.Booking{}, "id = ?", booking.ID).Error; err != nil {
			return nil, err
		}
	}
	return live, nil
}

// FindBookings returns all live bookings, reaping expired rows on the way.
func FindBookings(db *gorm.DB) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := db.Preload("Timeslot.Weekday").Order("start_date asc").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return ReapExpired(db, bookings, time.Now())
}

// FindBookingsByEmail returns the live bookings tied to an email address.
func FindBookingsByEmail(db *gorm.DB, email string) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := db.Preload("Timeslot.Weekday").Where("email = ?", email).Order("start_date asc").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return ReapExpired(db, bookings, time.Now())
}

// FindBookingByID returns a live booking or gorm.ErrRecordNotFound. An
// expired booking is destroyed and reported as not found.
func FindBookingByID(db *gorm.DB, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := db.Preload("Timeslot.Weekday").First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	live, err := ReapExpired(db, []models.Booking{booking}, time.Now())
	if err != nil {
		return nil, err
	}
	if len(live) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &live[0], nil
}

// DeleteBooking removes a booking by id.
func DeleteBooking(db *gorm.DB, id uuid.UUID) error {
	result := db.Delete(&models.Booking{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
