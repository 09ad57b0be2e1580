package handlers

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tobiasmeier/timeslot_booking/models"
)

func TestBookingResponseOmitsTimeslotInternals(t *testing.T) {
	email := "guest@example.com"
	booking := models.Booking{
		ID:         uuid.New(),
		TimeslotID: uuid.New(),
		Name:       "guest",
		Email:      &email,
		StartDate:  time.Date(2024, time.January, 2, 10, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, time.January, 2, 11, 0, 0, 0, time.UTC),
		IsVerified: true,
		Timeslot: models.Timeslot{
			ID:       uuid.New(),
			Capacity: 4,
			Weekday:  models.Weekday{ID: uuid.New(), Name: "tuesday"},
		},
	}

	responses := toBookingResponses([]models.Booking{booking})
	if len(responses) != 1 {
		t.Fatalf("got %d responses, want 1", len(responses))
	}
	got := responses[0]
	if got.ID != booking.ID || got.Name != booking.Name || !got.IsVerified {
		t.Errorf("response fields do not match the booking: %+v", got)
	}
	if !got.StartDate.Equal(booking.StartDate) || !got.EndDate.Equal(booking.EndDate) {
		t.Errorf("occurrence instants not carried over: %+v", got)
	}

	body, err := json.Marshal(responses)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, internal := range []string{"timeslot", "capacity", "weekday"} {
		if strings.Contains(strings.ToLower(string(body)), internal) {
			t.Errorf("holder-facing response leaks %q: %s", internal, body)
		}
	}
}

func TestBookingResponseEmpty(t *testing.T) {
	responses := toBookingResponses(nil)
	body, err := json.Marshal(responses)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(body) != "[]" {
		t.Errorf("empty lookup should serialize as [], got %s", body)
	}
}
