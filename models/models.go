package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Mood values accepted in mood entries. Stored as plain strings so the
// aggregation layer tolerates unknown values instead of rejecting rows.
const (
	MoodVeryHappy = "veryHappy"
	MoodHappy     = "happy"
	MoodNeutral   = "neutral"
	MoodSad       = "sad"
	MoodStressed  = "stressed"
	MoodAngry     = "angry"
)

var ValidMoods = map[string]bool{
	MoodVeryHappy: true,
	MoodHappy:     true,
	MoodNeutral:   true,
	MoodSad:       true,
	MoodStressed:  true,
	MoodAngry:     true,
}

type User struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email               string    `gorm:"uniqueIndex" json:"email"`
	PasswordHash        string    `json:"-"`
	OnboardingCompleted bool      `gorm:"default:false" json:"onboarding_completed"`
	OnboardingMood      string    `gorm:"size:50" json:"onboarding_mood"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
	Habits              []Habit   `gorm:"foreignKey:UserID" json:"-"`
}

type Habit struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `gorm:"size:10" json:"icon"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// MoodEntry records one mood for one calendar date. Date is the canonical
// YYYY-MM-DD form with no time component; comparisons are exact string equality.
type MoodEntry struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index:idx_mood_user_date" json:"user_id"`
	Date   string    `gorm:"size:20;index:idx_mood_user_date" json:"date"`
	Mood   string    `gorm:"size:50" json:"mood"`
}

// HabitCompletion marks a habit as done on a date. Presence of the row is the
// completion signal; un-toggling deletes the row. UserID is denormalized so
// per-user queries skip the join through habits.
type HabitCompletion struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	HabitID uuid.UUID `gorm:"type:uuid;index" json:"habit_id"`
	UserID  uuid.UUID `gorm:"type:uuid;index:idx_completion_user_date" json:"user_id"`
	Date    string    `gorm:"size:20;index:idx_completion_user_date" json:"date"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (h *Habit) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

func (m *MoodEntry) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (c *HabitCompletion) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
