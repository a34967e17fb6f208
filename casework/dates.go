package casework

import (
	"math"
	"time"
)

// DateLayout is the calendar date format used for arrest, deadline and history dates
const DateLayout = "2006-01-02"

const day = 24 * time.Hour

// Today formats the calendar date of t
func Today(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// Timestamp formats t the way createdAt and updatedAt are stored
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseDate accepts either a calendar date or an RFC3339 timestamp
func ParseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// DaysBetween is the ceiling of the day difference from..to; it is negative when to
// precedes from.
func DaysBetween(from, to time.Time) int {
	return int(math.Ceil(float64(to.Sub(from)) / float64(day)))
}
