package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/m-bouhaba/MindTrack/middleware"
	"github.com/m-bouhaba/MindTrack/models"
	"github.com/m-bouhaba/MindTrack/services"
	"github.com/m-bouhaba/MindTrack/store"
	"github.com/m-bouhaba/MindTrack/utils"
)

func GetMoods(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		entries, err := s.MoodEntries(c.Request.Context(), user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch mood entries"})
			return
		}
		if entries == nil {
			entries = []models.MoodEntry{}
		}

		c.JSON(http.StatusOK, entries)
	}
}

// SubmitMood upserts the mood for one date: recording a second mood for the
// same day replaces the first.
func SubmitMood(s store.Store, stats *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input struct {
			Date string `json:"date" validate:"required"`
			Mood string `json:"mood" validate:"required"`
		}
		if err := c.BindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
			return
		}
		if err := middleware.ValidateStruct(input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}

		if !utils.IsDayKey(input.Date) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be YYYY-MM-DD"})
			return
		}
		if !models.ValidMoods[input.Mood] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mood"})
			return
		}

		entry, err := s.SubmitMood(c.Request.Context(), user.ID, input.Date, input.Mood)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save mood entry"})
			return
		}

		invalidateFor(stats, user.ID)
		c.JSON(http.StatusCreated, entry)
	}
}
