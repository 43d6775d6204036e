package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tasktrackr/task-tracker-api/internal/auth"
	"github.com/tasktrackr/task-tracker-api/internal/config"
	"github.com/tasktrackr/task-tracker-api/internal/database"
	"github.com/tasktrackr/task-tracker-api/internal/handlers"
	"github.com/tasktrackr/task-tracker-api/internal/logger"
	"github.com/tasktrackr/task-tracker-api/internal/middleware"
	"github.com/tasktrackr/task-tracker-api/internal/repository"
	"github.com/tasktrackr/task-tracker-api/internal/services"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	cfg := config.Load("")

	l, closeLogger := logger.New(logger.Options{
		Level: cfg.Log.Level,
		JSON:  cfg.Log.JSON,
		File:  cfg.Log.File,
	})
	defer closeLogger()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if cfg.DB.AutoMigrate {
		if err := database.Migrate(); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	tokens := auth.NewTokenService(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenTTLMin)*time.Minute,
		l,
	)
	userService := services.NewUserService(userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo)

	authHandler := handlers.NewAuthHandler(userService, tokens)
	taskHandler := handlers.NewTaskHandler(taskService)
	userHandler := handlers.NewUserHandler(userService)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		logger.Middleware(l),
		middleware.Recovery(l),
		middleware.Metrics(),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login",
				middleware.RateLimitPerIP(rate.Limit(5), 10),
				authHandler.Login,
			)
		}

		users := api.Group("/users")
		users.Use(middleware.RequireAuth(tokens, userService))
		{
			users.GET("", userHandler.SearchOptions)
		}

		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(tokens, userService))
		{
			tasks.GET("", taskHandler.Search)
			tasks.POST("", taskHandler.Create)
			tasks.GET("/:id", taskHandler.Get)
			tasks.PUT("/:id", taskHandler.Update)
			tasks.DELETE("/:id", taskHandler.Delete)
			tasks.PATCH("/:id/complete", taskHandler.Complete)
			tasks.PATCH("/:id/claim", taskHandler.Claim)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	l.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.App.Env))
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
