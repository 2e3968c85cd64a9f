package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/m-bouhaba/MindTrack/middleware"
	"github.com/m-bouhaba/MindTrack/models"
	"github.com/m-bouhaba/MindTrack/services"
	"github.com/m-bouhaba/MindTrack/store"
	"github.com/m-bouhaba/MindTrack/utils"
)

func GetCompletions(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		date := c.Query("date")
		if date != "" && !utils.IsDayKey(date) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be YYYY-MM-DD"})
			return
		}

		completions, err := s.Completions(c.Request.Context(), user.ID, date)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch completions"})
			return
		}
		if completions == nil {
			completions = []models.HabitCompletion{}
		}

		c.JSON(http.StatusOK, completions)
	}
}

// ToggleCompletion flips presence for (habit, date): done becomes not done
// and vice versa. The response reports which way it went.
func ToggleCompletion(s store.Store, stats *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input struct {
			HabitID string `json:"habit_id" validate:"required"`
			Date    string `json:"date" validate:"required"`
		}
		if err := c.BindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
			return
		}
		if err := middleware.ValidateStruct(input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}

		habitID, err := uuid.Parse(input.HabitID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid habit id"})
			return
		}
		if !utils.IsDayKey(input.Date) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be YYYY-MM-DD"})
			return
		}

		// the habit must exist and belong to the caller
		if _, err := s.HabitByID(c.Request.Context(), habitID, user.ID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Habit not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not verify habit"})
			return
		}

		result, err := s.ToggleCompletion(c.Request.Context(), habitID, user.ID, input.Date)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not toggle completion"})
			return
		}

		invalidateFor(stats, user.ID)
		c.JSON(http.StatusOK, result)
	}
}
