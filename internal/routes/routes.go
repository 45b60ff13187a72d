package routes

import (
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/logsage/backend/internal/controllers"
	"github.com/logsage/backend/internal/middleware"
	"github.com/logsage/backend/internal/services"
	"gorm.io/gorm"
)

func dailyLimit() int {
	if v := os.Getenv("DAILY_ANALYSIS_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return services.DefaultDailyLimit
}

// SetupRoutes configures all application routes
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Initialize services
	analysisService := services.NewAnalysisService(db, services.NewAnalysisEngine(), dailyLimit())
	todoStore := services.NewTodoStore(db)

	// Initialize controllers
	authController := controllers.NewAuthController(db)
	userController := controllers.NewUserController(db)
	analysisController := controllers.NewAnalysisController(db, analysisService)
	settingsController := controllers.NewSettingsController(db, analysisService)
	todoController := controllers.NewTodoController(todoStore)

	// API routes
	api := r.Group("/api/v1")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authController.Login)
			auth.POST("/register", authController.Register)
		}

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("/auth/refresh", authController.RefreshToken)
			protected.POST("/auth/change-password", authController.ChangePassword)

			// Users
			users := protected.Group("/users")
			{
				users.GET("/me", userController.GetCurrentUser)
				users.PUT("/me", userController.UpdateCurrentUser)
			}

			// Analysis
			analysis := protected.Group("/analysis")
			{
				analysis.POST("", analysisController.Analyze)
				analysis.GET("/usage", analysisController.GetDailyUsage)
			}

			// Reports
			reports := protected.Group("/reports")
			{
				reports.GET("", analysisController.GetHistory)
				reports.GET("/:id", analysisController.GetReport)
			}

			// Settings
			settings := protected.Group("/settings")
			{
				settings.GET("", settingsController.GetSettings)
				settings.PUT("", settingsController.UpdateSettings)
			}

			// Todos
			todos := protected.Group("/todos")
			{
				todos.GET("", todoController.GetTodos)
				todos.POST("", todoController.AddTodo)
				todos.DELETE("/:id", todoController.DeleteTodo)
			}
		}
	}
}
