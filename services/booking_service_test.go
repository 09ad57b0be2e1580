package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tobiasmeier/timeslot_booking/models"
	"github.com/tobiasmeier/timeslot_booking/scheduling"
)

// 2024-01-01 was a Monday; the booked slot is Tuesdays 10:00-11:00.
var (
	admissionNow = time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	tuesdaySlot  = scheduling.SlotTimes{StartHours: 10, StartMinutes: 0, EndHours: 11, EndMinutes: 0}
)

// resolveTuesday runs the same validation a create goes through and returns
// the concrete occurrence instants.
func resolveTuesday(t *testing.T, day time.Time) (time.Time, time.Time) {
	t.Helper()
	start, end, err := scheduling.ResolveInterval(day, "tuesday", tuesdaySlot,
		scheduling.Rules{MaxWeekDistance: -1}, scheduling.Options{}, nil, admissionNow)
	if err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}
	return start, end
}

func occupant(start, end time.Time) models.Booking {
	return models.Booking{ID: uuid.New(), Name: "guest", StartDate: start, EndDate: end}
}

func TestCreateResolvesUpcomingTuesday(t *testing.T) {
	// Happy path: booked on Monday for the next day, the occupied seats
	// carry the resolved Tuesday 10:00-11:00 instants.
	start, end := resolveTuesday(t, time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC))

	if !start.Equal(time.Date(2024, time.January, 2, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %s; want Tuesday 10:00", start)
	}
	if !end.Equal(time.Date(2024, time.January, 2, 11, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %s; want Tuesday 11:00", end)
	}
	if !admissionAllowed(0, 1, false, false) {
		t.Error("an empty occurrence must admit the first booking")
	}
}

func TestAdmissionStopsAtCapacity(t *testing.T) {
	// Capacity 2: two sequential creates are admitted, the third is not.
	start, end := resolveTuesday(t, time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC))
	const capacity = 2

	var live []models.Booking
	for i := 0; i < capacity; i++ {
		if !admissionAllowed(len(live), capacity, false, false) {
			t.Fatalf("booking %d rejected below capacity", i+1)
		}
		live = append(live, occupant(start, end))
	}
	if admissionAllowed(len(live), capacity, false, false) {
		t.Error("third booking admitted past capacity")
	}
}

func TestAdmissionAfterSeatFreed(t *testing.T) {
	// Capacity 1: A occupies the seat, B is rejected; deleting A lets B in.
	start, end := resolveTuesday(t, time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC))

	live := []models.Booking{occupant(start, end)}
	if admissionAllowed(len(live), 1, false, false) {
		t.Fatal("second booking admitted into a full occurrence")
	}

	live = live[:0]
	if !admissionAllowed(len(live), 1, false, false) {
		t.Error("freed seat not re-admitted")
	}
}

func TestAdmissionBypasses(t *testing.T) {
	// A full occurrence still admits modifications and explicit overrides.
	if !admissionAllowed(3, 1, true, false) {
		t.Error("modification must not re-check capacity")
	}
	if !admissionAllowed(3, 1, false, true) {
		t.Error("AllowToExceedCapacity must bypass the ceiling")
	}
	if admissionAllowed(3, 1, false, false) {
		t.Error("plain create admitted into an overfull occurrence")
	}
}

func TestOccurrenceWindowCoversSingleDay(t *testing.T) {
	start, _ := resolveTuesday(t, time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC))
	dayStart, dayEnd := occurrenceWindow(start)

	if !dayStart.Equal(time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("window start = %s; want Tuesday midnight", dayStart)
	}
	if !dayEnd.Equal(time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("window end = %s; want Wednesday midnight", dayEnd)
	}

	// A booking for the same timeslot one week out must not occupy this
	// week's seats.
	nextWeek := start.AddDate(0, 0, 7)
	if !nextWeek.Before(dayStart) && nextWeek.Before(dayEnd) {
		t.Errorf("next week's occurrence %s falls inside this week's window", nextWeek)
	}

	// Seats counted against the occurrence are reaped first: a leftover
	// row from a past week never holds a seat.
	stale := occupant(start.AddDate(0, 0, -7), start.AddDate(0, 0, -7).Add(time.Hour))
	_, liveSeats := partitionExpired([]models.Booking{stale, occupant(start, start.Add(time.Hour))}, admissionNow)
	if len(liveSeats) != 1 {
		t.Errorf("stale row still counted: %d live seat(s), want 1", len(liveSeats))
	}
}

func TestTouchingExpiredBookingDestroysIt(t *testing.T) {
	// Loading a single already-expired booking through the reaper leaves
	// nothing to update: the row is partitioned for destruction, not
	// handed back.
	expired := occupant(admissionNow.Add(-2*time.Hour), admissionNow.Add(-time.Hour))
	gone, live := partitionExpired([]models.Booking{expired}, admissionNow)
	if len(live) != 0 {
		t.Fatalf("expired booking handed back as live: %v", live)
	}
	if len(gone) != 1 || gone[0].ID != expired.ID {
		t.Fatalf("expired booking not marked for destruction: %v", gone)
	}
}
