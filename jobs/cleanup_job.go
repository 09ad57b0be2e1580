package jobs

import (
	"log"
	"time"

	"github.com/tobiasmeier/timeslot_booking/database"
	"github.com/tobiasmeier/timeslot_booking/models"
	"github.com/tobiasmeier/timeslot_booking/services"
)

// CleanupExpiredBookings is the nightly sweep. Read paths already reap
// lazily; this bounds how long abandoned rows survive when nobody queries
// them.
func CleanupExpiredBookings() {
	log.Println("Running job: CleanupExpiredBookings...")

	var bookings []models.Booking
	if err := database.DB.Find(&bookings).Error; err != nil {
		log.Printf("Error loading bookings for cleanup: %v", err)
		return
	}

	live, err := services.ReapExpired(database.DB, bookings, time.Now())
	if err != nil {
		log.Printf("Error cleaning up expired bookings: %v", err)
		return
	}

	removed := len(bookings) - len(live)
	if removed == 0 {
		log.Println("No expired bookings found.")
		return
	}
	log.Printf("Removed %d expired booking(s).", removed)
}
