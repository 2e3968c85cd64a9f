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
)

func GetHabits(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		habits, err := s.Habits(c.Request.Context(), user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch habits"})
			return
		}
		if habits == nil {
			habits = []models.Habit{}
		}

		c.JSON(http.StatusOK, habits)
	}
}

func CreateHabit(s store.Store, stats *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input struct {
			Name        string `json:"name" validate:"required"`
			Description string `json:"description"`
			Icon        string `json:"icon"`
		}
		if err := c.BindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
			return
		}
		if err := middleware.ValidateStruct(input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing name"})
			return
		}

		habit, err := s.CreateHabit(c.Request.Context(), models.Habit{
			UserID:      user.ID,
			Name:        input.Name,
			Description: input.Description,
			Icon:        input.Icon,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create habit"})
			return
		}

		invalidateFor(stats, user.ID)
		c.JSON(http.StatusCreated, habit)
	}
}

func UpdateHabit(s store.Store, stats *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid habit id"})
			return
		}

		habit, err := s.HabitByID(c.Request.Context(), id, user.ID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Habit not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch habit"})
			return
		}

		var input struct {
			Name        *string `json:"name"`
			Description *string `json:"description"`
			Icon        *string `json:"icon"`
		}
		if err := c.BindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
			return
		}

		if input.Name != nil {
			habit.Name = *input.Name
		}
		if input.Description != nil {
			habit.Description = *input.Description
		}
		if input.Icon != nil {
			habit.Icon = *input.Icon
		}

		habit, err = s.SaveHabit(c.Request.Context(), habit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update habit"})
			return
		}

		invalidateFor(stats, user.ID)
		c.JSON(http.StatusOK, habit)
	}
}

// DeleteHabit removes the habit only. Its completions are left in place as
// orphans; the analytics engine filters them out of detail views.
func DeleteHabit(s store.Store, stats *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid habit id"})
			return
		}

		err = s.DeleteHabit(c.Request.Context(), id, user.ID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Habit not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete habit"})
			return
		}

		invalidateFor(stats, user.ID)
		c.JSON(http.StatusOK, gin.H{"message": "Habit deleted"})
	}
}
