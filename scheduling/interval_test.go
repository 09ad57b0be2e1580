package scheduling

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var labSlot = SlotTimes{StartHours: 10, StartMinutes: 0, EndHours: 11, EndMinutes: 0}

func noRules() Rules {
	return Rules{MaxWeekDistance: -1}
}

func assertRejected(t *testing.T, err error, fragment string) {
	t.Helper()
	var rejection *RejectionError
	if !errors.As(err, &rejection) {
		t.Fatalf("expected a rejection, got %v", err)
	}
	if !strings.Contains(rejection.Reason, fragment) {
		t.Fatalf("rejection %q does not mention %q", rejection.Reason, fragment)
	}
}

func TestResolveIntervalHappyPath(t *testing.T) {
	// Now is a Monday; book the upcoming Tuesday.
	now := date(1, 9, 0)
	start, end, err := ResolveInterval(date(2, 0, 0), "tuesday", labSlot, noRules(), Options{}, nil, now)
	if err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}
	if !start.Equal(date(2, 10, 0)) || !end.Equal(date(2, 11, 0)) {
		t.Errorf("resolved interval %s - %s; want Tuesday 10:00 - 11:00", start, end)
	}
}

func TestResolveIntervalWrongWeekday(t *testing.T) {
	now := date(1, 9, 0)
	_, _, err := ResolveInterval(date(3, 0, 0), "tuesday", labSlot, noRules(), Options{}, nil, now)
	assertRejected(t, err, "not a tuesday")
}

func TestResolveIntervalPastDate(t *testing.T) {
	now := date(9, 9, 0)
	_, _, err := ResolveInterval(date(2, 0, 0), "tuesday", labSlot, noRules(), Options{}, nil, now)
	assertRejected(t, err, "in the past")
}

func TestResolveIntervalSameDayAfterStart(t *testing.T) {
	// 10:30 on the booked Tuesday itself: the start instant already passed.
	now := date(2, 10, 30)
	_, _, err := ResolveInterval(date(2, 0, 0), "tuesday", labSlot, noRules(), Options{}, nil, now)
	assertRejected(t, err, "in the past")
}

func TestResolveIntervalBlockedDate(t *testing.T) {
	now := date(1, 9, 0)
	blocked := []time.Time{date(2, 15, 30)} // any time of day blocks the whole day
	_, _, err := ResolveInterval(date(2, 0, 0), "tuesday", labSlot, noRules(), Options{}, blocked, now)
	assertRejected(t, err, "blocked")
}

func TestResolveIntervalDeadline(t *testing.T) {
	rules := Rules{
		DeadlineEnabled: true,
		DeadlineMillis:  int64(2 * time.Hour / time.Millisecond),
		MaxWeekDistance: -1,
	}
	// 09:00 on the Tuesday itself: within the deadline window of the
	// 10:00 occurrence, so this week is closed.
	now := date(2, 9, 0)

	_, _, err := ResolveInterval(date(2, 0, 0), "tuesday", labSlot, rules, Options{}, nil, now)
	assertRejected(t, err, "too early")

	// One week later is bookable.
	start, _, err := ResolveInterval(date(9, 0, 0), "tuesday", labSlot, rules, Options{}, nil, now)
	if err != nil {
		t.Fatalf("unexpected rejection one week out: %v", err)
	}
	if !start.Equal(date(9, 10, 0)) {
		t.Errorf("start = %s; want Tuesday next week 10:00", start)
	}

	// Administrative bypass skips the deadline.
	if _, _, err := ResolveInterval(date(2, 0, 0), "tuesday", labSlot, rules, Options{IgnoreDeadlines: true}, nil, now); err != nil {
		t.Errorf("IgnoreDeadlines should bypass the deadline, got %v", err)
	}
}

func TestResolveIntervalMaxWeekDistance(t *testing.T) {
	rules := Rules{MaxWeekDistance: 1}
	now := date(1, 9, 0)

	// Two weeks out is beyond the one-week horizon.
	_, _, err := ResolveInterval(date(16, 0, 0), "tuesday", labSlot, rules, Options{}, nil, now)
	assertRejected(t, err, "too far ahead")

	// One week out is within it.
	if _, _, err := ResolveInterval(date(9, 0, 0), "tuesday", labSlot, rules, Options{}, nil, now); err != nil {
		t.Errorf("one week out should be bookable, got %v", err)
	}

	// Bypass flag lifts the horizon.
	if _, _, err := ResolveInterval(date(16, 0, 0), "tuesday", labSlot, rules, Options{IgnoreMaxWeekDistance: true}, nil, now); err != nil {
		t.Errorf("IgnoreMaxWeekDistance should bypass the horizon, got %v", err)
	}
}

func TestResolveIntervalBlockedBeatsBypass(t *testing.T) {
	now := date(1, 9, 0)
	blocked := []time.Time{date(2, 0, 0)}
	_, _, err := ResolveInterval(date(2, 0, 0), "tuesday", labSlot, noRules(), Options{IgnoreDeadlines: true, IgnoreMaxWeekDistance: true}, blocked, now)
	assertRejected(t, err, "blocked")
}
