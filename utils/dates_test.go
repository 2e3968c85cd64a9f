package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayKeyRoundTrip(t *testing.T) {
	day := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	key := DayKey(day)
	assert.Equal(t, "2026-02-28", key)

	parsed, err := ParseDayKey(key)
	assert.NoError(t, err)
	assert.True(t, parsed.Equal(day))
}

func TestIsDayKey(t *testing.T) {
	assert.True(t, IsDayKey("2026-02-28"))
	assert.False(t, IsDayKey("2026-2-28"))
	assert.False(t, IsDayKey("28/02/2026"))
	assert.False(t, IsDayKey("2026-02-30"))
	assert.False(t, IsDayKey(""))
}

func TestMonthPrefix(t *testing.T) {
	assert.Equal(t, "2026-02-", MonthPrefix(2026, 2))
	assert.Equal(t, "2026-12-", MonthPrefix(2026, 12))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(2026, 1))
	assert.Equal(t, 28, DaysInMonth(2026, 2))
	assert.Equal(t, 29, DaysInMonth(2028, 2)) // leap year
	assert.Equal(t, 30, DaysInMonth(2026, 4))
}

func TestDaysElapsedInMonth(t *testing.T) {
	today := time.Date(2026, 2, 10, 15, 4, 5, 0, time.UTC)

	// current month: only the days that have actually passed
	assert.Equal(t, 10, DaysElapsedInMonth(2026, 2, today))

	// past months: full length
	assert.Equal(t, 31, DaysElapsedInMonth(2026, 1, today))
	assert.Equal(t, 31, DaysElapsedInMonth(2025, 12, today))

	// future months: nothing elapsed yet
	assert.Equal(t, 0, DaysElapsedInMonth(2026, 3, today))
	assert.Equal(t, 0, DaysElapsedInMonth(2027, 1, today))
}
