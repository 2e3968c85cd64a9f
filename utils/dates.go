package utils

import (
	"fmt"
	"time"
)

// Dates in this app are calendar dates in the canonical YYYY-MM-DD form,
// never instants. All comparisons are exact string equality on day keys.

// DayKey formats a time as a canonical day key.
func DayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// ParseDayKey parses a canonical day key. Callers treating malformed keys as
// "no match" should check the error and move on rather than fail the request.
func ParseDayKey(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}

// IsDayKey reports whether s is a valid canonical day key.
func IsDayKey(s string) bool {
	_, err := ParseDayKey(s)
	return err == nil
}

// MonthPrefix returns the "YYYY-MM-" prefix shared by every day key in the
// given month. Day keys are matched by prefix so malformed rows simply never
// match instead of breaking a parse.
func MonthPrefix(year, month int) string {
	return fmt.Sprintf("%04d-%02d-", year, month)
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year, month int) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysElapsedInMonth returns how many days of the month have passed as of
// today: the day-of-month for the current month (so incomplete months are not
// penalized), the full month length for past months, and 0 for future months.
func DaysElapsedInMonth(year, month int, today time.Time) int {
	switch {
	case year == today.Year() && time.Month(month) == today.Month():
		return today.Day()
	case year < today.Year() || (year == today.Year() && time.Month(month) < today.Month()):
		return DaysInMonth(year, month)
	default:
		return 0
	}
}
