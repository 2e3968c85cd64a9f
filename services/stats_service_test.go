package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/m-bouhaba/MindTrack/models"
	"github.com/m-bouhaba/MindTrack/store"
)

func TestOverview(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	userID := uuid.New()

	h1 := mem.AddHabit(models.Habit{UserID: userID, Name: "Read"})
	h2 := mem.AddHabit(models.Habit{UserID: userID, Name: "Run"})
	mem.AddMoodEntry(models.MoodEntry{UserID: userID, Date: "2026-02-26", Mood: models.MoodHappy})
	mem.AddMoodEntry(models.MoodEntry{UserID: userID, Date: "2026-02-27", Mood: models.MoodSad})
	mem.AddCompletion(models.HabitCompletion{UserID: userID, HabitID: h1.ID, Date: "2026-02-26"})
	mem.AddCompletion(models.HabitCompletion{UserID: userID, HabitID: h2.ID, Date: "2026-02-26"})
	mem.AddCompletion(models.HabitCompletion{UserID: userID, HabitID: h1.ID, Date: "2026-02-27"})

	svc := NewStatsService(mem, zap.NewNop())
	stats := svc.Overview(ctx, userID)

	assert.Equal(t, 2, stats.HabitsCount)
	assert.Equal(t, 2, stats.DaysTracked)
	assert.Equal(t, 3, stats.TotalCompletions)
	// 3 of 2*2 possible = 75%
	assert.Equal(t, 75, stats.SuccessRate)
}

func TestOverviewWithNoData(t *testing.T) {
	svc := NewStatsService(store.NewMemoryStore(), zap.NewNop())
	stats := svc.Overview(context.Background(), uuid.New())

	assert.Equal(t, 0, stats.HabitsCount)
	assert.Equal(t, 0, stats.DaysTracked)
	assert.Equal(t, 0, stats.TotalCompletions)
	assert.Equal(t, 0, stats.SuccessRate)
}

func TestOverviewDegradesWhenFetchFails(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	userID := uuid.New()

	mem.AddHabit(models.Habit{UserID: userID, Name: "Read"})
	mem.AddCompletion(models.HabitCompletion{UserID: userID, HabitID: uuid.New(), Date: "2026-02-26"})
	mem.MoodEntriesErr = errors.New("connection refused")

	svc := NewStatsService(mem, zap.NewNop())
	stats := svc.Overview(ctx, userID)

	// mood fetch failed: treated as zero tracked days, rate saturates to 0
	assert.Equal(t, 1, stats.HabitsCount)
	assert.Equal(t, 0, stats.DaysTracked)
	assert.Equal(t, 1, stats.TotalCompletions)
	assert.Equal(t, 0, stats.SuccessRate)
}

func TestWeeklyMood(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	userID := uuid.New()
	mem.AddMoodEntry(models.MoodEntry{UserID: userID, Date: "2026-02-28", Mood: models.MoodVeryHappy})

	svc := NewStatsService(mem, zap.NewNop())
	ref := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	series := svc.WeeklyMood(ctx, userID, ref)
	require.Len(t, series, 7)
	assert.Equal(t, models.MoodVeryHappy, series[6].Mood)
	assert.Equal(t, 5.0, series[6].Level)
}

func TestWeeklyMoodToleratesFetchFailure(t *testing.T) {
	mem := store.NewMemoryStore()
	mem.MoodEntriesErr = errors.New("timeout")

	svc := NewStatsService(mem, zap.NewNop())
	ref := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	series := svc.WeeklyMood(context.Background(), uuid.New(), ref)
	require.Len(t, series, 7)
	for _, p := range series {
		assert.Empty(t, p.Mood)
		assert.Equal(t, 0.0, p.Level)
	}
}

func TestMonthly(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	userID := uuid.New()
	today := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

	svc := NewStatsService(mem, zap.NewNop())

	// no habits yet: insufficient data, not 0%
	result := svc.Monthly(ctx, userID, 2026, 2, today)
	assert.False(t, result.Available)

	h := mem.AddHabit(models.Habit{UserID: userID, Name: "Read"})

	// habit exists but nothing completed: a real 0%
	result = svc.Monthly(ctx, userID, 2026, 2, today)
	require.True(t, result.Available)
	assert.Equal(t, 0, result.Rate)

	mem.AddCompletion(models.HabitCompletion{UserID: userID, HabitID: h.ID, Date: "2026-02-03"})
	mem.AddCompletion(models.HabitCompletion{UserID: userID, HabitID: h.ID, Date: "2026-02-07"})

	// 2 of 10 elapsed days = 20%
	result = svc.Monthly(ctx, userID, 2026, 2, today)
	require.True(t, result.Available)
	assert.Equal(t, 20, result.Rate)
}

func TestDay(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	userID := uuid.New()

	habit := mem.AddHabit(models.Habit{UserID: userID, Name: "Meditate"})
	mem.AddMoodEntry(models.MoodEntry{UserID: userID, Date: "2026-02-28", Mood: models.MoodNeutral})
	mem.AddCompletion(models.HabitCompletion{UserID: userID, HabitID: habit.ID, Date: "2026-02-28"})
	// completion pointing at a deleted habit
	mem.AddCompletion(models.HabitCompletion{UserID: userID, HabitID: uuid.New(), Date: "2026-02-28"})

	svc := NewStatsService(mem, zap.NewNop())
	detail := svc.Day(ctx, userID, "2026-02-28")

	require.NotNil(t, detail.Mood)
	assert.Equal(t, models.MoodNeutral, detail.Mood.Mood)
	require.Len(t, detail.CompletedHabits, 1)
	assert.Equal(t, "Meditate", detail.CompletedHabits[0].Name)
}

func TestInvalidateUserWithoutRedis(t *testing.T) {
	svc := NewStatsService(store.NewMemoryStore(), zap.NewNop())

	// no redis client wired: invalidation is a no-op, not a panic
	assert.NotPanics(t, func() {
		svc.InvalidateUser(uuid.New())
	})
}
