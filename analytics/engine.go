// Package analytics turns raw event lists (mood entries, habit completions)
// into the derived statistics shown on the dashboard, history, and profile
// views. Every function here is pure: no I/O, no clock reads, no mutation of
// inputs. "Today" is always passed in by the caller.
package analytics

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-bouhaba/MindTrack/models"
	"github.com/m-bouhaba/MindTrack/utils"
)

// DefaultWindowSize is the length of the weekly mood series.
const DefaultWindowSize = 7

// moodLevels maps moods to chart heights; higher is more positive. Unknown
// moods and missing entries map to 0.
var moodLevels = map[string]float64{
	models.MoodVeryHappy: 5,
	models.MoodHappy:     4,
	models.MoodNeutral:   3,
	models.MoodSad:       2,
	models.MoodStressed:  1.5,
	models.MoodAngry:     1,
}

// MoodLevel returns the numeric intensity for a mood, 0 when unknown.
func MoodLevel(mood string) float64 {
	return moodLevels[mood]
}

// MoodPoint is one bar of the weekly mood chart.
type MoodPoint struct {
	Label string  `json:"label"`
	Mood  string  `json:"mood,omitempty"`
	Level float64 `json:"level"`
}

// DayDetail is the mood plus completed habits for a single date.
type DayDetail struct {
	Mood            *models.MoodEntry `json:"mood"`
	CompletedHabits []models.Habit    `json:"completed_habits"`
}

// MoodForDate returns the entry recorded for dateKey, or nil when there is
// none. If duplicates exist the first encountered wins; a malformed dateKey
// simply never matches.
func MoodForDate(entries []models.MoodEntry, dateKey string) *models.MoodEntry {
	for i := range entries {
		if entries[i].Date == dateKey {
			return &entries[i]
		}
	}
	return nil
}

// WeeklyMoodSeries builds windowSize points, oldest first, ending at
// referenceDate inclusive. Days without an entry get an empty mood and level 0.
func WeeklyMoodSeries(entries []models.MoodEntry, referenceDate time.Time, windowSize int) []MoodPoint {
	if windowSize <= 0 {
		return []MoodPoint{}
	}

	points := make([]MoodPoint, 0, windowSize)
	for i := windowSize - 1; i >= 0; i-- {
		day := referenceDate.AddDate(0, 0, -i)
		point := MoodPoint{Label: day.Format("Mon")}
		if entry := MoodForDate(entries, utils.DayKey(day)); entry != nil {
			point.Mood = entry.Mood
			point.Level = MoodLevel(entry.Mood)
		}
		points = append(points, point)
	}
	return points
}

// MonthlyCompletionRate returns the percentage of possible completions done in
// the given month, counting daysElapsed days and habitCount habits. The second
// return is false when there is not enough data to compute a rate (no habits,
// or no elapsed days) — callers must keep that distinct from a real 0%.
func MonthlyCompletionRate(completions []models.HabitCompletion, habitCount, year, month, daysElapsed int) (int, bool) {
	totalPossible := daysElapsed * habitCount
	if totalPossible <= 0 {
		return 0, false
	}

	prefix := utils.MonthPrefix(year, month)
	completed := 0
	for _, c := range completions {
		if strings.HasPrefix(c.Date, prefix) {
			completed++
		}
	}
	return roundPercent(completed, totalPossible), true
}

// OverallSuccessRate is total completions over the maximum possible
// (daysTracked * habitsCount) as a rounded percentage. A non-positive
// denominator saturates to 0 rather than erroring: the UI shows "0%", not
// "N/A", before any habits or tracked days exist.
func OverallSuccessRate(totalCompletions, daysTracked, habitsCount int) int {
	if daysTracked <= 0 || habitsCount <= 0 {
		return 0
	}
	return roundPercent(totalCompletions, daysTracked*habitsCount)
}

// DayDetailFor collects the mood and the completed habits for one date.
// Completions pointing at deleted habits are dropped silently; the remaining
// habits keep the completions' insertion order.
func DayDetailFor(moodEntries []models.MoodEntry, completions []models.HabitCompletion, habits []models.Habit, dateKey string) DayDetail {
	byID := make(map[uuid.UUID]models.Habit, len(habits))
	for _, h := range habits {
		byID[h.ID] = h
	}

	detail := DayDetail{
		Mood:            MoodForDate(moodEntries, dateKey),
		CompletedHabits: []models.Habit{},
	}
	for _, c := range completions {
		if c.Date != dateKey {
			continue
		}
		if habit, ok := byID[c.HabitID]; ok {
			detail.CompletedHabits = append(detail.CompletedHabits, habit)
		}
	}
	return detail
}

// DaysTracked counts distinct mood-entry dates. This is the "days tracked"
// denominator of the overall success rate: a day counts once no matter how
// many entries it has, and days without a mood do not count at all.
func DaysTracked(entries []models.MoodEntry) int {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		seen[e.Date] = struct{}{}
	}
	return len(seen)
}

// roundPercent rounds half away from zero.
func roundPercent(part, whole int) int {
	return int(math.Round(float64(part) / float64(whole) * 100))
}
