package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/m-bouhaba/MindTrack/cache"
	"github.com/m-bouhaba/MindTrack/db"
	"github.com/m-bouhaba/MindTrack/handlers"
	"github.com/m-bouhaba/MindTrack/middleware"
	"github.com/m-bouhaba/MindTrack/models"
	"github.com/m-bouhaba/MindTrack/services"
	"github.com/m-bouhaba/MindTrack/store"
	"github.com/m-bouhaba/MindTrack/utils"
)

func main() {
	utils.InitLogger()
	defer utils.Logger.Sync()
	utils.InitMetrics()

	utils.Logger.Info("starting_application")

	db.Connect()
	if err := db.DB.AutoMigrate(
		&models.User{},
		&models.Habit{},
		&models.MoodEntry{},
		&models.HabitCompletion{},
	); err != nil {
		utils.Logger.Fatal("migration_failed", zap.Error(err))
	}

	// Redis is optional: without it the app runs uncached
	if err := cache.InitRedis(utils.Logger); err != nil {
		utils.Logger.Warn("redis_unavailable_running_uncached", zap.Error(err))
		cache.Client = nil
	}
	defer cache.Close()

	eventStore := store.NewGormStore(db.DB)
	statsService := services.NewStatsService(eventStore, utils.Logger)

	var reflector services.Reflector
	if gemini := services.NewGeminiReflectorFromEnv(); gemini != nil {
		reflector = gemini
		utils.Logger.Info("gemini_reflector_enabled")
	} else {
		utils.Logger.Info("gemini_key_missing_using_fallback_reflections")
	}
	insightsService := services.NewInsightsService(reflector, utils.Logger)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())

	if os.Getenv("CSRF_ENABLED") == "true" {
		r.Use(middleware.CSRFProtection([]byte(utils.GetEnv("CSRF_KEY", "32-byte-long-auth-key-goes-here!"))))
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{utils.GetEnv("CORS_ORIGIN", "http://localhost:3000")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now(),
		})
	})

	r.POST("/api/signup", handlers.Signup)
	r.POST("/api/login", handlers.Login)

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("/profile", handlers.Profile)
		api.POST("/onboarding/complete", handlers.CompleteOnboarding(eventStore, statsService))

		api.GET("/habits", handlers.GetHabits(eventStore))
		api.POST("/habits", handlers.CreateHabit(eventStore, statsService))
		api.PUT("/habits/:id", handlers.UpdateHabit(eventStore, statsService))
		api.DELETE("/habits/:id", handlers.DeleteHabit(eventStore, statsService))

		api.GET("/moods", handlers.GetMoods(eventStore))
		api.POST("/moods", handlers.SubmitMood(eventStore, statsService))

		api.GET("/completions", handlers.GetCompletions(eventStore))
		api.POST("/completions/toggle", handlers.ToggleCompletion(eventStore, statsService))

		stats := api.Group("/stats")
		if cache.Client != nil {
			stats.Use(middleware.CacheMiddleware(2 * time.Minute))
		}
		{
			stats.GET("/overview", handlers.GetStatsOverview(statsService))
			stats.GET("/weekly-mood", handlers.GetWeeklyMood(statsService))
			stats.GET("/monthly-completion", handlers.GetMonthlyCompletion(statsService))
			stats.GET("/day/:date", handlers.GetDayDetail(statsService))
		}

		api.POST("/insights", handlers.GetInsights(statsService, insightsService))
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	startServer(r)
}

func startServer(router *gin.Engine) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	utils.Logger.Info("starting_http_server", zap.String("port", port))
	fmt.Printf("MindTrack backend listening on :%s\n", port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Logger.Fatal("http_server_failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.Logger.Info("shutting_down_server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		utils.Logger.Fatal("server_forced_shutdown", zap.Error(err))
	}

	utils.Logger.Info("server_stopped")
}
