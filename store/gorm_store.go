package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/m-bouhaba/MindTrack/models"
)

// GormStore is the Postgres-backed Store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Habits(ctx context.Context, userID uuid.UUID) ([]models.Habit, error) {
	var habits []models.Habit
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&habits).Error
	return habits, err
}

func (s *GormStore) HabitByID(ctx context.Context, habitID, userID uuid.UUID) (models.Habit, error) {
	var habit models.Habit
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", habitID, userID).
		First(&habit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Habit{}, ErrNotFound
	}
	return habit, err
}

func (s *GormStore) CreateHabit(ctx context.Context, habit models.Habit) (models.Habit, error) {
	err := s.db.WithContext(ctx).Create(&habit).Error
	return habit, err
}

func (s *GormStore) SaveHabit(ctx context.Context, habit models.Habit) (models.Habit, error) {
	err := s.db.WithContext(ctx).Save(&habit).Error
	return habit, err
}

func (s *GormStore) DeleteHabit(ctx context.Context, habitID, userID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", habitID, userID).
		Delete(&models.Habit{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) MoodEntries(ctx context.Context, userID uuid.UUID) ([]models.MoodEntry, error) {
	var entries []models.MoodEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date").
		Find(&entries).Error
	return entries, err
}

func (s *GormStore) Completions(ctx context.Context, userID uuid.UUID, date string) ([]models.HabitCompletion, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if date != "" {
		query = query.Where("date = ?", date)
	}

	var completions []models.HabitCompletion
	err := query.Find(&completions).Error
	return completions, err
}

func (s *GormStore) ToggleCompletion(ctx context.Context, habitID, userID uuid.UUID, date string) (ToggleResult, error) {
	db := s.db.WithContext(ctx)

	var existing models.HabitCompletion
	err := db.Where("habit_id = ? AND user_id = ? AND date = ?", habitID, userID, date).
		First(&existing).Error

	switch {
	case err == nil:
		if err := db.Delete(&existing).Error; err != nil {
			return ToggleResult{}, err
		}
		return ToggleResult{Status: StatusRemoved}, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		record := models.HabitCompletion{HabitID: habitID, UserID: userID, Date: date}
		if err := db.Create(&record).Error; err != nil {
			return ToggleResult{}, err
		}
		return ToggleResult{Status: StatusAdded, Record: &record}, nil

	default:
		return ToggleResult{}, err
	}
}

func (s *GormStore) SubmitMood(ctx context.Context, userID uuid.UUID, date, mood string) (models.MoodEntry, error) {
	db := s.db.WithContext(ctx)

	var existing models.MoodEntry
	err := db.Where("user_id = ? AND date = ?", userID, date).First(&existing).Error

	switch {
	case err == nil:
		existing.Mood = mood
		if err := db.Save(&existing).Error; err != nil {
			return models.MoodEntry{}, err
		}
		return existing, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		entry := models.MoodEntry{UserID: userID, Date: date, Mood: mood}
		if err := db.Create(&entry).Error; err != nil {
			return models.MoodEntry{}, err
		}
		return entry, nil

	default:
		return models.MoodEntry{}, err
	}
}
