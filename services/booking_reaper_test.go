package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tobiasmeier/timeslot_booking/models"
)

var reaperNow = time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

func bookingEnding(end time.Time) models.Booking {
	return models.Booking{
		ID:        uuid.New(),
		Name:      "guest",
		StartDate: end.Add(-time.Hour),
		EndDate:   end,
	}
}

func TestExpired(t *testing.T) {
	tests := []struct {
		name string
		end  time.Time
		want bool
	}{
		{"ended yesterday", reaperNow.Add(-24 * time.Hour), true},
		{"ends exactly now", reaperNow, true},
		{"ends in an hour", reaperNow.Add(time.Hour), false},
		{"ends next week", reaperNow.Add(7 * 24 * time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Expired(bookingEnding(tt.end), reaperNow); got != tt.want {
				t.Errorf("Expired(end=%s) = %v; want %v", tt.end, got, tt.want)
			}
		})
	}
}

func TestPartitionExpired(t *testing.T) {
	past := bookingEnding(reaperNow.Add(-time.Hour))
	upcoming := bookingEnding(reaperNow.Add(time.Hour))
	nextWeek := bookingEnding(reaperNow.Add(7 * 24 * time.Hour))

	expired, live := partitionExpired([]models.Booking{past, upcoming, nextWeek}, reaperNow)

	if len(expired) != 1 || expired[0].ID != past.ID {
		t.Fatalf("expired = %v; want only the past booking", expired)
	}
	if len(live) != 2 || live[0].ID != upcoming.ID || live[1].ID != nextWeek.ID {
		t.Fatalf("live = %v; want the two future bookings in order", live)
	}
}

func TestPartitionExpiredIdempotent(t *testing.T) {
	bookings := []models.Booking{
		bookingEnding(reaperNow.Add(-time.Hour)),
		bookingEnding(reaperNow.Add(time.Hour)),
		bookingEnding(reaperNow.Add(-time.Minute)),
	}

	_, live := partitionExpired(bookings, reaperNow)
	expiredAgain, liveAgain := partitionExpired(live, reaperNow)

	if len(expiredAgain) != 0 {
		t.Errorf("second pass reclassified %d live booking(s) as expired", len(expiredAgain))
	}
	if len(liveAgain) != len(live) {
		t.Errorf("second pass changed the live set: %d -> %d", len(live), len(liveAgain))
	}
}

func TestPartitionExpiredEmpty(t *testing.T) {
	expired, live := partitionExpired(nil, reaperNow)
	if len(expired) != 0 || len(live) != 0 {
		t.Errorf("partition of nil = (%v, %v); want empty", expired, live)
	}
}
