package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wize-house/api-go/clock"
	"github.com/wize-house/api-go/config"
	"github.com/wize-house/api-go/controllers"
	"github.com/wize-house/api-go/middleware"
	"github.com/wize-house/api-go/services"
	"github.com/wize-house/api-go/storage"
	"github.com/wize-house/api-go/store"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg config.AppConfig) {
	// Wire the core: storage-backed account store, R2 evidence bucket and the
	// accrual service that runs the whole record flow.
	accountStore := store.NewGormStore(db)
	evidence := storage.NewR2Evidence()
	service := services.NewActivityService(accountStore, evidence, clock.New(), cfg.StoreTimeout)

	// Initialize controllers
	authController := controllers.NewAuthController(db, service)
	activityController := controllers.NewActivityController(db, service)
	teamController := controllers.NewTeamController(db, service)
	userController := controllers.NewUserController(db, service)
	adminController := controllers.NewAdminController(db, service)
	leaderboardController := controllers.NewLeaderboardController(db)
	uploadController := controllers.NewUploadController(db, evidence)
	validationController := controllers.NewValidationController(db)

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
		public.POST("/auth/google", authController.GoogleLogin)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", authController.Logout)
		protected.POST("/refresh-token", authController.RefreshToken)
		// User routes
		protected.GET("/profile", authController.GetProfile)
		protected.PUT("/profile", authController.UpdateProfile)

		// Setup other routes within the protected group
		SetupActivityRoutes(protected, activityController)
		SetupTeamRoutes(protected, teamController)
		SetupUserRoutes(protected, userController, leaderboardController)
		SetupUploadRoutes(protected, uploadController)
		SetupValidationRoutes(protected, validationController)
		SetupAdminRoutes(protected, adminController)
	}
}
