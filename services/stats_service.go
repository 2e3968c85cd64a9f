package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/m-bouhaba/MindTrack/analytics"
	"github.com/m-bouhaba/MindTrack/cache"
	"github.com/m-bouhaba/MindTrack/models"
	"github.com/m-bouhaba/MindTrack/store"
	"github.com/m-bouhaba/MindTrack/utils"
)

const statsCacheTTL = 5 * time.Minute

// StatsService fetches a user's event snapshot and runs the analytics engine
// over it. All aggregation formulas live in the analytics package; every
// stats endpoint goes through here so the math is defined exactly once.
type StatsService struct {
	store  store.Store
	logger *zap.Logger
}

func NewStatsService(s store.Store, logger *zap.Logger) *StatsService {
	return &StatsService{store: s, logger: logger}
}

// UserStats is the profile overview block.
type UserStats struct {
	UserID           uuid.UUID `json:"user_id"`
	HabitsCount      int       `json:"habits_count"`
	DaysTracked      int       `json:"days_tracked"`
	TotalCompletions int       `json:"total_completions"`
	SuccessRate      int       `json:"success_rate"`
}

// MonthlyCompletion is the monthly ratio with its availability flag kept
// explicit: Available=false means "insufficient data", which the UI must not
// render as 0%.
type MonthlyCompletion struct {
	Year      int  `json:"year"`
	Month     int  `json:"month"`
	Rate      int  `json:"rate"`
	Available bool `json:"available"`
}

type snapshot struct {
	habits      []models.Habit
	moods       []models.MoodEntry
	completions []models.HabitCompletion
}

// fetchSnapshot issues the three independent fetches concurrently and waits
// for all of them. A failed fetch degrades to an empty slice: the engine is
// total over empty inputs, so stats reads stay up when one collection is
// unavailable.
func (s *StatsService) fetchSnapshot(ctx context.Context, userID uuid.UUID) snapshot {
	var snap snapshot
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		habits, err := s.store.Habits(ctx, userID)
		if err != nil {
			s.logger.Warn("fetch_habits_failed", zap.String("user_id", userID.String()), zap.Error(err))
			return
		}
		snap.habits = habits
	}()

	go func() {
		defer wg.Done()
		moods, err := s.store.MoodEntries(ctx, userID)
		if err != nil {
			s.logger.Warn("fetch_moods_failed", zap.String("user_id", userID.String()), zap.Error(err))
			return
		}
		snap.moods = moods
	}()

	go func() {
		defer wg.Done()
		completions, err := s.store.Completions(ctx, userID, "")
		if err != nil {
			s.logger.Warn("fetch_completions_failed", zap.String("user_id", userID.String()), zap.Error(err))
			return
		}
		snap.completions = completions
	}()

	wg.Wait()
	return snap
}

// Overview computes the profile stat block, served from Redis when fresh.
func (s *StatsService) Overview(ctx context.Context, userID uuid.UUID) UserStats {
	cacheKey := statsCacheKey(userID)

	var cached UserStats
	if cache.Client != nil {
		if err := cache.Get(cacheKey, &cached); err == nil {
			s.logger.Debug("stats_cache_hit", zap.String("key", cacheKey))
			return cached
		}
	}

	snap := s.fetchSnapshot(ctx, userID)
	daysTracked := analytics.DaysTracked(snap.moods)

	stats := UserStats{
		UserID:           userID,
		HabitsCount:      len(snap.habits),
		DaysTracked:      daysTracked,
		TotalCompletions: len(snap.completions),
		SuccessRate:      analytics.OverallSuccessRate(len(snap.completions), daysTracked, len(snap.habits)),
	}

	if cache.Client != nil {
		if err := cache.Set(cacheKey, stats, statsCacheTTL); err != nil {
			s.logger.Warn("stats_cache_set_failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	return stats
}

// WeeklyMood returns the mood series for the window ending at referenceDate.
func (s *StatsService) WeeklyMood(ctx context.Context, userID uuid.UUID, referenceDate time.Time) []analytics.MoodPoint {
	moods, err := s.store.MoodEntries(ctx, userID)
	if err != nil {
		s.logger.Warn("fetch_moods_failed", zap.String("user_id", userID.String()), zap.Error(err))
		moods = nil
	}
	return analytics.WeeklyMoodSeries(moods, referenceDate, analytics.DefaultWindowSize)
}

// Monthly computes the completion ratio for a month, with "today" passed in
// so elapsed days for the current month stop at the current day-of-month.
func (s *StatsService) Monthly(ctx context.Context, userID uuid.UUID, year, month int, today time.Time) MonthlyCompletion {
	snap := s.fetchSnapshot(ctx, userID)
	daysElapsed := utils.DaysElapsedInMonth(year, month, today)

	rate, ok := analytics.MonthlyCompletionRate(snap.completions, len(snap.habits), year, month, daysElapsed)
	return MonthlyCompletion{Year: year, Month: month, Rate: rate, Available: ok}
}

// Day returns the detail view (mood plus completed habits) for one date.
func (s *StatsService) Day(ctx context.Context, userID uuid.UUID, dateKey string) analytics.DayDetail {
	snap := s.fetchSnapshot(ctx, userID)
	return analytics.DayDetailFor(snap.moods, snap.completions, snap.habits, dateKey)
}

// InvalidateUser drops the cached overview after any mutation.
func (s *StatsService) InvalidateUser(userID uuid.UUID) {
	if cache.Client == nil {
		return
	}
	if err := cache.Delete(statsCacheKey(userID)); err != nil {
		s.logger.Warn("stats_cache_invalidate_failed", zap.String("user_id", userID.String()), zap.Error(err))
	}
}

// statsCacheKey is the Redis key holding a user's cached overview.
func statsCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("user_stats:%s", userID)
}
