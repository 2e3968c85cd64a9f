package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/m-bouhaba/MindTrack/db"
	"github.com/m-bouhaba/MindTrack/middleware"
	"github.com/m-bouhaba/MindTrack/models"
	"github.com/m-bouhaba/MindTrack/services"
	"github.com/m-bouhaba/MindTrack/store"
	"github.com/m-bouhaba/MindTrack/utils"
)

func Signup(c *gin.Context) {
	var input struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	}

	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}
	if err := middleware.ValidateStruct(input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(input.Email)

	var existing models.User
	if err := db.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	user := models.User{
		Email:        email,
		PasswordHash: hash,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		utils.Logger.Error("signup_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  user,
	})
}

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}
	if err := middleware.ValidateStruct(input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", strings.ToLower(input.Email)).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// CompleteOnboarding marks the wizard as finished: records the initial mood
// and creates the habits the user picked during onboarding.
func CompleteOnboarding(s store.Store, stats *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input struct {
			OnboardingMood string `json:"onboarding_mood"`
			SelectedHabits []struct {
				Name        string `json:"name" validate:"required"`
				Description string `json:"description"`
				Icon        string `json:"icon"`
			} `json:"selected_habits"`
		}
		if err := c.BindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
			return
		}

		if input.OnboardingMood != "" && !models.ValidMoods[input.OnboardingMood] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mood"})
			return
		}

		user.OnboardingCompleted = true
		user.OnboardingMood = input.OnboardingMood
		if err := db.DB.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not complete onboarding"})
			return
		}

		for _, h := range input.SelectedHabits {
			icon := h.Icon
			if icon == "" {
				icon = "✨"
			}
			if _, err := s.CreateHabit(c.Request.Context(), models.Habit{
				UserID:      user.ID,
				Name:        h.Name,
				Description: h.Description,
				Icon:        icon,
			}); err != nil {
				utils.Logger.Error("onboarding_habits_failed", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create habits"})
				return
			}
		}

		invalidateFor(stats, user.ID)
		c.JSON(http.StatusOK, gin.H{"message": "Onboarding completed", "user": user})
	}
}

func Profile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, user)
}
