package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/m-bouhaba/MindTrack/middleware"
	"github.com/m-bouhaba/MindTrack/services"
)

// GetInsights returns a short AI reflection built from the caller's current
// stats. When the model is not configured or fails, the service substitutes
// a static encouragement instead of erroring.
func GetInsights(stats *services.StatsService, insights *services.InsightsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input struct {
			Summary string `json:"summary"`
		}
		// summary is optional: absent or malformed bodies fall back to a
		// summary built from the user's own stats
		_ = c.ShouldBindJSON(&input)

		summary := input.Summary
		if summary == "" {
			summary = services.BuildWeeklySummary(stats.Overview(c.Request.Context(), user.ID))
		}

		c.JSON(http.StatusOK, gin.H{
			"text": insights.Reflect(c.Request.Context(), summary),
		})
	}
}
