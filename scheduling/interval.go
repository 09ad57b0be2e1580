package scheduling

import (
	"fmt"
	"time"
)

// SlotTimes is the time-of-day template of a timeslot.
type SlotTimes struct {
	StartHours   int
	StartMinutes int
	EndHours     int
	EndMinutes   int
}

// Rules carries the booking-related settings the validator needs.
type Rules struct {
	DeadlineEnabled bool
	DeadlineMillis  int64
	// MaxWeekDistance < 0 means unlimited.
	MaxWeekDistance int
}

// Options relax individual checks for administrative callers.
type Options struct {
	IgnoreDeadlines       bool
	IgnoreMaxWeekDistance bool
}

// RejectionError is an expected validation outcome, not a failure of the
// system. Reason is safe to show to the requester.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string {
	return e.Reason
}

func reject(format string, args ...interface{}) error {
	return &RejectionError{Reason: fmt.Sprintf(format, args...)}
}

// ResolveInterval checks that day is a legal occurrence of the named weekday
// under the given rules and returns the concrete start/end instants built
// from the slot's time of day. Checks short-circuit in order: weekday match,
// not in the past, blocked date, deadline, advance horizon. Blocked dates
// apply even when deadlines are bypassed.
func ResolveInterval(day time.Time, weekdayName string, slot SlotTimes, rules Rules, opts Options, blocked []time.Time, now time.Time) (time.Time, time.Time, error) {
	target, ok := WeekdayIndex(weekdayName)
	if !ok {
		return time.Time{}, time.Time{}, reject("unknown weekday %q", weekdayName)
	}
	if isoWeekday(day) != target {
		return time.Time{}, time.Time{}, reject("%s is not a %s", day.Format("2006-01-02"), weekdayName)
	}

	start := CombineDayTime(day, slot.StartHours, slot.StartMinutes)
	end := CombineDayTime(day, slot.EndHours, slot.EndMinutes)

	if start.Before(now) {
		return time.Time{}, time.Time{}, reject("booking date is in the past (requested start %s, now %s)", start.Format(time.RFC3339), now.Format(time.RFC3339))
	}

	dayStart := startOfDay(day)
	for _, b := range blocked {
		if startOfDay(b).Equal(dayStart) {
			return time.Time{}, time.Time{}, reject("%s is blocked for booking", day.Format("2006-01-02"))
		}
	}

	if !opts.IgnoreDeadlines {
		earliest := EarliestBookingDate(weekdayName, now, rules.DeadlineEnabled, rules.DeadlineMillis)
		if dayStart.Before(earliest) {
			return time.Time{}, time.Time{}, reject("booking date is too early, bookings for this weekday open on %s", earliest.Format("2006-01-02"))
		}

		if rules.MaxWeekDistance >= 0 && !opts.IgnoreMaxWeekDistance {
			latest := LatestBookingDate(weekdayName, now, rules.MaxWeekDistance)
			if dayStart.After(latest) {
				return time.Time{}, time.Time{}, reject("booking date is too far ahead, bookings close after %s", latest.Format("2006-01-02"))
			}
		}
	}

	return start, end, nil
}
