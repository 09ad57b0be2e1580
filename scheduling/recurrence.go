package scheduling

import "time"

var isoWeekdays = map[string]int{
	"monday":    1,
	"tuesday":   2,
	"wednesday": 3,
	"thursday":  4,
	"friday":    5,
	"saturday":  6,
	"sunday":    7,
}

// WeekdayIndex maps a lowercase weekday name to its ISO index (Monday=1 ..
// Sunday=7). Callers validate names at the request edge; an unknown name here
// is a programming error.
func WeekdayIndex(name string) (int, bool) {
	idx, ok := isoWeekdays[name]
	return idx, ok
}

func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// NextOccurrence returns the next calendar date (start of day) on which the
// named weekday occurs. When now already falls on that weekday the result is
// today, regardless of time of day; the interval validator decides whether
// today is still bookable.
func NextOccurrence(name string, now time.Time) time.Time {
	target := isoWeekdays[name]
	today := isoWeekday(now)
	day := startOfDay(now)
	if today <= target {
		return day.AddDate(0, 0, target-today)
	}
	return day.AddDate(0, 0, 7-(today-target))
}

// PreviousOccurrence returns the most recent past calendar date (start of day)
// on which the named weekday occurred. When now falls on that weekday the
// result is one week ago.
func PreviousOccurrence(name string, now time.Time) time.Time {
	target := isoWeekdays[name]
	today := isoWeekday(now)
	day := startOfDay(now)
	if today <= target {
		return day.AddDate(0, 0, target-today-7)
	}
	return day.AddDate(0, 0, target-today)
}

// CombineDayTime places a time of day onto a calendar day.
func CombineDayTime(day time.Time, hours, minutes int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, hours, minutes, 0, 0, day.Location())
}

// NextOccurrenceEnd resolves the end instant of the nearest upcoming
// occurrence. If today is the weekday but the end time has already passed,
// the occurrence one week out is returned instead.
func NextOccurrenceEnd(name string, endHours, endMinutes int, now time.Time) time.Time {
	end := CombineDayTime(NextOccurrence(name, now), endHours, endMinutes)
	if !end.After(now) {
		end = end.AddDate(0, 0, 7)
	}
	return end
}

// EarliestBookingDate computes the first calendar day on which the named
// weekday may still be booked. Without a deadline that is simply the next
// occurrence. With a deadline, an occurrence whose deadline has already
// passed pushes the earliest bookable date out by exactly one week. The bump
// is deliberately applied at most once; deadlines longer than a week keep
// this single-bump behavior.
func EarliestBookingDate(name string, now time.Time, deadlineEnabled bool, deadlineMillis int64) time.Time {
	next := NextOccurrence(name, now)
	if !deadlineEnabled {
		return next
	}
	deadline := next.Add(-time.Duration(deadlineMillis) * time.Millisecond)
	if deadline.Before(now) {
		return next.AddDate(0, 0, 7)
	}
	return next
}

// LatestBookingDate computes the last bookable occurrence of the named
// weekday given an advance-booking horizon in weeks. A negative horizon means
// unlimited; the zero time is returned in that case.
func LatestBookingDate(name string, now time.Time, maxWeekDistance int) time.Time {
	if maxWeekDistance < 0 {
		return time.Time{}
	}
	return NextOccurrence(name, now).AddDate(0, 0, 7*maxWeekDistance)
}
