package main

import (
	"github.com/gin-gonic/gin"

	"tasktrack/internal/config"
	"tasktrack/internal/database"
	"tasktrack/internal/handlers"
	"tasktrack/internal/logger"
	"tasktrack/internal/middleware"
	"tasktrack/internal/repository"
	"tasktrack/internal/services"
	"tasktrack/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		logger.Fatal("failed to run migrations", "error", err)
	}

	// Prepare upload storage
	blobs, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		logger.Fatal("failed to prepare upload dir", "error", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	// Initialize services
	tokens := services.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authService := services.NewAuthService(userRepo, tokens)
	taskService := services.NewTaskService(taskRepo, attachmentRepo, categoryRepo, blobs)
	attachmentService := services.NewAttachmentService(attachmentRepo, taskRepo, blobs, cfg.MaxUploadBytes)
	categoryService := services.NewCategoryService(categoryRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	attachmentHandler := handlers.NewAttachmentHandler(attachmentService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)

	// Initialize Gin router
	r := gin.Default()
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Uploaded bytes are retrievable by stored filename
	r.Static("/uploads", blobs.Dir())

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.GET("/me", middleware.RequireAuth(tokens), authHandler.GetCurrentUser)

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(tokens))
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.PUT("/:id", taskHandler.SetCompleted)
			tasks.PUT("/:id/deadline", taskHandler.SetDeadline)
			tasks.PUT("/:id/note", taskHandler.SetNote)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.POST("/:id/attachments", attachmentHandler.Upload)
			tasks.GET("/:id/attachments", attachmentHandler.List)
		}

		// Attachment routes (protected)
		attachments := api.Group("/attachments")
		attachments.Use(middleware.RequireAuth(tokens))
		{
			attachments.DELETE("/:id", attachmentHandler.Delete)
		}

		// Category routes (protected)
		categories := api.Group("/categories")
		categories.Use(middleware.RequireAuth(tokens))
		{
			categories.GET("", categoryHandler.List)
			categories.POST("", categoryHandler.Create)
			categories.DELETE("/:id", categoryHandler.Delete)
		}
	}

	// Start server
	logger.Info("server starting", "addr", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		logger.Fatal("failed to start server", "error", err)
	}
}
