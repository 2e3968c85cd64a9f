package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/m-bouhaba/MindTrack/middleware"
	"github.com/m-bouhaba/MindTrack/services"
	"github.com/m-bouhaba/MindTrack/utils"
)

// Stats endpoints. All the math lives in the analytics package behind the
// stats service; these handlers only parse parameters and pin down "today"
// so each computation stays deterministic.

func GetStatsOverview(svc *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.JSON(http.StatusOK, svc.Overview(c.Request.Context(), user.ID))
	}
}

func GetWeeklyMood(svc *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		referenceDate := time.Now().UTC()
		if ref := c.Query("reference_date"); ref != "" {
			parsed, err := utils.ParseDayKey(ref)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "reference_date must be YYYY-MM-DD"})
				return
			}
			referenceDate = parsed
		}

		c.JSON(http.StatusOK, gin.H{
			"series": svc.WeeklyMood(c.Request.Context(), user.ID, referenceDate),
		})
	}
}

// GetMonthlyCompletion reports the month's completion ratio. When there is
// not enough data to compute one (no habits, or a future month) the response
// carries available=false — clients must render that as "no data", not 0%.
func GetMonthlyCompletion(svc *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		now := time.Now().UTC()
		year, month := now.Year(), int(now.Month())

		if y := c.Query("year"); y != "" {
			parsed, err := strconv.Atoi(y)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
				return
			}
			year = parsed
		}
		if m := c.Query("month"); m != "" {
			parsed, err := strconv.Atoi(m)
			if err != nil || parsed < 1 || parsed > 12 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
				return
			}
			month = parsed
		}

		c.JSON(http.StatusOK, svc.Monthly(c.Request.Context(), user.ID, year, month, now))
	}
}

func GetDayDetail(svc *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		date := c.Param("date")
		if !utils.IsDayKey(date) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be YYYY-MM-DD"})
			return
		}

		c.JSON(http.StatusOK, svc.Day(c.Request.Context(), user.ID, date))
	}
}
