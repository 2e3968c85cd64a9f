// Package store is the read/write access layer for the three event
// collections the analytics engine consumes: habits, mood entries, and habit
// completions. Handlers and services talk to the Store interface; the GORM
// implementation backs production and the in-memory one backs tests.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/m-bouhaba/MindTrack/models"
)

// Toggle outcomes for a habit completion.
const (
	StatusAdded   = "added"
	StatusRemoved = "removed"
)

// ErrNotFound reports a lookup that matched no record for the user.
var ErrNotFound = errors.New("record not found")

// ToggleResult reports which way a completion toggle went. Record is set only
// when a completion was added.
type ToggleResult struct {
	Status string                  `json:"status"`
	Record *models.HabitCompletion `json:"record,omitempty"`
}

type Store interface {
	Habits(ctx context.Context, userID uuid.UUID) ([]models.Habit, error)
	// HabitByID returns the habit only when it exists and belongs to the
	// user; otherwise ErrNotFound.
	HabitByID(ctx context.Context, habitID, userID uuid.UUID) (models.Habit, error)
	CreateHabit(ctx context.Context, habit models.Habit) (models.Habit, error)
	SaveHabit(ctx context.Context, habit models.Habit) (models.Habit, error)
	// DeleteHabit removes the habit row only. Its completions stay behind as
	// orphans; the day detail view filters them out.
	DeleteHabit(ctx context.Context, habitID, userID uuid.UUID) error

	MoodEntries(ctx context.Context, userID uuid.UUID) ([]models.MoodEntry, error)
	// Completions returns all completions for the user, or only those on the
	// given day key when date is non-empty.
	Completions(ctx context.Context, userID uuid.UUID, date string) ([]models.HabitCompletion, error)
	// ToggleCompletion flips presence: an existing completion for
	// (habitID, userID, date) is removed, otherwise one is created.
	ToggleCompletion(ctx context.Context, habitID, userID uuid.UUID, date string) (ToggleResult, error)
	// SubmitMood upserts the mood for (userID, date).
	SubmitMood(ctx context.Context, userID uuid.UUID, date, mood string) (models.MoodEntry, error)
}
