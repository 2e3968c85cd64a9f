package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/m-bouhaba/MindTrack/models"
)

// MemoryStore keeps all events in memory. It backs service tests and keeps
// the same toggle/upsert semantics as the GORM store.
type MemoryStore struct {
	mu          sync.Mutex
	habits      []models.Habit
	moods       []models.MoodEntry
	completions []models.HabitCompletion

	// Optional error injection, one per fetch, for degraded-path tests.
	HabitsErr      error
	MoodEntriesErr error
	CompletionsErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) AddHabit(h models.Habit) models.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	s.habits = append(s.habits, h)
	return h
}

func (s *MemoryStore) AddMoodEntry(e models.MoodEntry) models.MoodEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	s.moods = append(s.moods, e)
	return e
}

func (s *MemoryStore) AddCompletion(c models.HabitCompletion) models.HabitCompletion {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	s.completions = append(s.completions, c)
	return c
}

func (s *MemoryStore) Habits(ctx context.Context, userID uuid.UUID) ([]models.Habit, error) {
	if s.HabitsErr != nil {
		return nil, s.HabitsErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Habit
	for _, h := range s.habits {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (s *MemoryStore) HabitByID(ctx context.Context, habitID, userID uuid.UUID) (models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, h := range s.habits {
		if h.ID == habitID && h.UserID == userID {
			return h, nil
		}
	}
	return models.Habit{}, ErrNotFound
}

func (s *MemoryStore) CreateHabit(ctx context.Context, habit models.Habit) (models.Habit, error) {
	return s.AddHabit(habit), nil
}

func (s *MemoryStore) SaveHabit(ctx context.Context, habit models.Habit) (models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.habits {
		if s.habits[i].ID == habit.ID {
			s.habits[i] = habit
			return habit, nil
		}
	}
	return models.Habit{}, ErrNotFound
}

func (s *MemoryStore) DeleteHabit(ctx context.Context, habitID, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, h := range s.habits {
		if h.ID == habitID && h.UserID == userID {
			s.habits = append(s.habits[:i], s.habits[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) MoodEntries(ctx context.Context, userID uuid.UUID) ([]models.MoodEntry, error) {
	if s.MoodEntriesErr != nil {
		return nil, s.MoodEntriesErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.MoodEntry
	for _, e := range s.moods {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *MemoryStore) Completions(ctx context.Context, userID uuid.UUID, date string) ([]models.HabitCompletion, error) {
	if s.CompletionsErr != nil {
		return nil, s.CompletionsErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.HabitCompletion
	for _, c := range s.completions {
		if c.UserID == userID && (date == "" || c.Date == date) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *MemoryStore) ToggleCompletion(ctx context.Context, habitID, userID uuid.UUID, date string) (ToggleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.completions {
		if c.HabitID == habitID && c.UserID == userID && c.Date == date {
			s.completions = append(s.completions[:i], s.completions[i+1:]...)
			return ToggleResult{Status: StatusRemoved}, nil
		}
	}

	record := models.HabitCompletion{ID: uuid.New(), HabitID: habitID, UserID: userID, Date: date}
	s.completions = append(s.completions, record)
	return ToggleResult{Status: StatusAdded, Record: &record}, nil
}

func (s *MemoryStore) SubmitMood(ctx context.Context, userID uuid.UUID, date, mood string) (models.MoodEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.moods {
		if s.moods[i].UserID == userID && s.moods[i].Date == date {
			s.moods[i].Mood = mood
			return s.moods[i], nil
		}
	}

	entry := models.MoodEntry{ID: uuid.New(), UserID: userID, Date: date, Mood: mood}
	s.moods = append(s.moods, entry)
	return entry, nil
}
