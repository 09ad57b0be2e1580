package services

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	config "github.com/tobiasmeier/timeslot_booking/configs"
	"github.com/tobiasmeier/timeslot_booking/models"
	"github.com/tobiasmeier/timeslot_booking/notifications"
	"github.com/tobiasmeier/timeslot_booking/scheduling"
	"github.com/tobiasmeier/timeslot_booking/tokens"
)

var (
	ErrCapacityExceeded = errors.New("max capacity reached")
	ErrEmailRequired    = errors.New("an email address is required for this booking")
)

// BookingData is the already-decoded booking request. BookingDay is the
// calendar day the requester picked; the concrete instants are derived from
// it, never taken from the client.
type BookingData struct {
	Name       string
	Email      *string
	BookingDay time.Time
}

// BookingOptions distinguish the public self-service flow from the
// administrative one.
type BookingOptions struct {
	IgnoreDeadlines       bool
	IgnoreMaxWeekDistance bool
	RequireMail           bool
	AutoVerify            bool
	AllowToExceedCapacity bool
}

// CreateBooking admits a new booking against a timeslot occurrence. The
// capacity check and the insert run in one transaction with the timeslot row
// locked, so two concurrent requests for the last seat are serialized.
func CreateBooking(db *gorm.DB, timeslotID uuid.UUID, data BookingData, opts BookingOptions) (*models.Booking, error) {
	return commitBooking(db, timeslotID, nil, data, opts, time.Now())
}

// UpdateBooking applies new data to an existing booking. The interval is
// re-validated but capacity is not re-checked against the booking itself.
// Loading goes through the reaper, so touching an expired booking destroys
// it instead of resurrecting it.
func UpdateBooking(db *gorm.DB, bookingID uuid.UUID, data BookingData, opts BookingOptions) (*models.Booking, error) {
	existing, err := FindBookingByID(db, bookingID)
	if err != nil {
		return nil, err
	}
	return commitBooking(db, existing.TimeslotID, existing, data, opts, time.Now())
}

func commitBooking(db *gorm.DB, timeslotID uuid.UUID, existing *models.Booking, data BookingData, opts BookingOptions, now time.Time) (*models.Booking, error) {
	if opts.RequireMail && (data.Email == nil || *data.Email == "") {
		return nil, ErrEmailRequired
	}

	var booking models.Booking
	var weekday models.Weekday
	var slot models.Timeslot

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&slot, "id = ?", timeslotID).Error; err != nil {
			return err
		}
		if err := tx.First(&weekday, "id = ?", slot.WeekdayID).Error; err != nil {
			return err
		}
		settings, err := LoadSettings(tx)
		if err != nil {
			return err
		}
		var blockedRows []models.BlockedDate
		if err := tx.Find(&blockedRows).Error; err != nil {
			return err
		}
		blocked := make([]time.Time, len(blockedRows))
		for i, b := range blockedRows {
			blocked[i] = b.Date
		}

		start, end, err := scheduling.ResolveInterval(
			data.BookingDay,
			weekday.Name,
			scheduling.SlotTimes{
				StartHours:   slot.StartHours,
				StartMinutes: slot.StartMinutes,
				EndHours:     slot.EndHours,
				EndMinutes:   slot.EndMinutes,
			},
			scheduling.Rules{
				DeadlineEnabled: settings.EnableBookingDeadline,
				DeadlineMillis:  settings.BookingDeadlineMillis,
				MaxWeekDistance: settings.MaxBookingWeekDistance,
			},
			scheduling.Options{
				IgnoreDeadlines:       opts.IgnoreDeadlines,
				IgnoreMaxWeekDistance: opts.IgnoreMaxWeekDistance,
			},
			blocked,
			now,
		)
		if err != nil {
			return err
		}

		live, err := liveBookingsForOccurrence(tx, slot.ID, start, now)
		if err != nil {
			return err
		}
		if !admissionAllowed(len(live), slot.Capacity, existing != nil, opts.AllowToExceedCapacity) {
			return ErrCapacityExceeded
		}

		if existing != nil {
			booking = *existing
		}
		booking.TimeslotID = slot.ID
		booking.Name = data.Name
		booking.Email = data.Email
		booking.StartDate = start
		booking.EndDate = end
		if opts.AutoVerify {
			booking.IsVerified = true
		}
		return tx.Save(&booking).Error
	})
	if err != nil {
		return nil, err
	}

	if booking.Email != nil && *booking.Email != "" {
		go sendConfirmationMail(booking, weekday, slot)
	}
	return &booking, nil
}

// admissionAllowed is the capacity decision: a new booking needs a free
// seat, while modifications and administrative overrides are always let
// through.
func admissionAllowed(liveCount, capacity int, modify, allowToExceedCapacity bool) bool {
	return liveCount < capacity || modify || allowToExceedCapacity
}

// occurrenceWindow bounds the concrete calendar day of an occurrence:
// [start of day, start of next day).
func occurrenceWindow(start time.Time) (time.Time, time.Time) {
	y, m, d := start.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, start.Location())
	return dayStart, dayStart.AddDate(0, 0, 1)
}

// liveBookingsForOccurrence loads the bookings occupying the same concrete
// calendar day of a timeslot, reaping expired rows before counting so stale
// bookings never hold a seat.
func liveBookingsForOccurrence(tx *gorm.DB, timeslotID uuid.UUID, start time.Time, now time.Time) ([]models.Booking, error) {
	dayStart, dayEnd := occurrenceWindow(start)

	var sameDay []models.Booking
	err := tx.
		Where("timeslot_id = ? AND start_date >= ? AND start_date < ?", timeslotID, dayStart, dayEnd).
		Find(&sameDay).Error
	if err != nil {
		return nil, err
	}
	return ReapExpired(tx, sameDay, now)
}

func sendConfirmationMail(booking models.Booking, weekday models.Weekday, slot models.Timeslot) {
	secret := []byte(config.Config("JWT_SECRET"))
	minted, err := tokens.BookingLookupToken(secret, *booking.Email, weekday.Name, slot.EndHours, slot.EndMinutes, time.Now())
	if err != nil {
		log.Printf("🔥 Failed to mint lookup token for booking %s: %v", booking.ID, err)
		return
	}

	link := config.Config("FRONTEND_URL") + "/bookings?token=" + minted.Token
	notifications.SendBookingConfirmation(booking, link)
}
