package routes

import (
	"tricount-api/internal/adapters/http/handlers"
	"tricount-api/internal/adapters/http/middleware"
	"tricount-api/internal/adapters/persistence/repositories"
	"tricount-api/internal/config"
	"tricount-api/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	tricountRepo := repositories.NewTricountRepository(db)
	operationRepo := repositories.NewOperationRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo)
	tricountService := services.NewTricountService(tricountRepo, userRepo)
	operationService := services.NewOperationService(operationRepo, tricountRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	tricountHandler := handlers.NewTricountHandler(tricountService)
	operationHandler := handlers.NewOperationHandler(operationService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// RPC group
	rpc := app.Group("/rpc")
	setupRPCRoutes(rpc, healthHandler, authHandler, userHandler, tricountHandler, operationHandler, cfg)
}

// setupRPCRoutes configures the rpc endpoints
func setupRPCRoutes(
	router fiber.Router,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	tricountHandler *handlers.TricountHandler,
	operationHandler *handlers.OperationHandler,
	cfg *config.Config,
) {
	auth := middleware.AuthMiddleware(cfg)

	// Public routes
	router.Get("/ping", healthHandler.Ping)
	router.Post("/reset_database", healthHandler.ResetDatabase)
	router.Post("/signup", middleware.AuthRateLimiter(), middleware.NoCacheHeaders(), authHandler.Signup)
	router.Post("/login", middleware.AuthRateLimiter(), middleware.NoCacheHeaders(), authHandler.Login)
	router.Post("/refresh", middleware.NoCacheHeaders(), authHandler.RefreshToken)
	router.Post("/logout", middleware.NoCacheHeaders(), authHandler.Logout)
	router.Post("/check_email_available", userHandler.CheckEmailAvailable)
	router.Post("/check_full_name_available", userHandler.CheckFullNameAvailable)

	// Protected routes
	router.Post("/logout_all", auth, authHandler.LogoutAll)
	router.Get("/get_all_users", auth, userHandler.GetAllUsers)
	router.Get("/get_user_data", auth, userHandler.GetUserData)
	router.Get("/get_my_tricounts", auth, tricountHandler.GetMyTricounts)
	router.Get("/get_tricount_balance", auth, middleware.NoCacheHeaders(), tricountHandler.GetTricountBalance)
	router.Post("/check_tricount_title_available", auth, tricountHandler.CheckTricountTitleAvailable)
	router.Post("/save_tricount", auth, tricountHandler.SaveTricount)
	router.Post("/delete_tricount", auth, tricountHandler.DeleteTricount)
	router.Post("/save_operation", auth, operationHandler.SaveOperation)
	router.Post("/delete_operation", auth, operationHandler.DeleteOperation)
}
