package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"

	"github.com/mverdier/driver-management-api/internal/config"
	"github.com/mverdier/driver-management-api/internal/constants"
	"github.com/mverdier/driver-management-api/internal/database"
	"github.com/mverdier/driver-management-api/internal/handlers"
	"github.com/mverdier/driver-management-api/internal/logging"
	"github.com/mverdier/driver-management-api/internal/middleware"
	"github.com/mverdier/driver-management-api/internal/repository"
	"github.com/mverdier/driver-management-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := logging.Init(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Closer()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logger.Sugar.Fatalw("Failed to connect to database", "err", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logger.Sugar.Fatalw("Failed to run migrations", "err", err)
	}

	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	authGroupRepo := repository.NewAuthGroupRepository(db)
	accessRepo := repository.NewAccessRepository(db)
	driverRepo := repository.NewDriverRepository(db)
	raterRepo := repository.NewRaterRepository(db)
	criterionRepo := repository.NewCriterionRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	// Services
	authService := services.NewAuthService(userRepo)
	groupService := services.NewGroupService(groupRepo, authGroupRepo, userRepo)
	accessService := services.NewAccessService(accessRepo)
	driverService := services.NewDriverService(driverRepo)
	raterService := services.NewRaterService(raterRepo)
	criterionService := services.NewCriterionService(criterionRepo)
	ratingService := services.NewRatingService(ratingRepo, criterionRepo)

	// The group manager role group must exist before any privilege check.
	if created, err := groupService.EnsureGroupManagerGroup(); err != nil {
		logger.Sugar.Fatalw("Failed to ensure group manager group", "err", err)
	} else if created {
		logger.Sugar.Infow("Created group manager role group")
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		logger.Sugar.Fatalw("Failed to create Redis store", "err", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	groupHandler := handlers.NewGroupHandler(groupService)
	navigationHandler := handlers.NewNavigationHandler(accessService, authService)
	driverHandler := handlers.NewDriverHandler(driverService)
	raterHandler := handlers.NewRaterHandler(raterService)
	criterionHandler := handlers.NewCriterionHandler(criterionService)
	ratingHandler := handlers.NewRatingHandler(ratingService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Driver Management API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Group management routes (group managers only)
		groups := api.Group("/groups")
		groups.Use(middleware.RequireAuth(), middleware.RequireGroupManager())
		{
			groups.GET("", groupHandler.ListGroups)
			groups.POST("", groupHandler.CreateGroup)
			groups.GET("/:id", groupHandler.GetGroup)
			groups.DELETE("/:id", groupHandler.DeleteGroup)
			groups.POST("/:id/members", groupHandler.AddMember)
			groups.DELETE("/:id/members/:user_id", groupHandler.RemoveMember)
		}

		// Role group deletion (group managers only)
		authGroups := api.Group("/auth-groups")
		authGroups.Use(middleware.RequireAuth(), middleware.RequireGroupManager())
		{
			authGroups.DELETE("/:id", groupHandler.DeleteAuthGroup)
		}

		// Navigation routes (protected)
		navigation := api.Group("")
		navigation.Use(middleware.RequireAuth())
		{
			navigation.GET("/navigation", navigationHandler.GetNavbar)
			navigation.GET("/pages/:name", navigationHandler.GetPage)
		}

		// Driver routes (protected)
		drivers := api.Group("/drivers")
		drivers.Use(middleware.RequireAuth())
		{
			drivers.GET("", driverHandler.ListDrivers)
			drivers.POST("", driverHandler.CreateDriver)
			drivers.GET("/:id", driverHandler.GetDriver)
			drivers.PUT("/:id", driverHandler.UpdateDriver)
			drivers.GET("/:id/site-history", driverHandler.GetSiteHistory)
		}

		// Rater routes (protected)
		raters := api.Group("/raters")
		raters.Use(middleware.RequireAuth())
		{
			raters.GET("", raterHandler.ListRaters)
			raters.POST("", raterHandler.CreateRater)
			raters.PUT("/:id", raterHandler.UpdateRater)
		}

		// Criterion routes (protected)
		criteria := api.Group("/criteria")
		criteria.Use(middleware.RequireAuth())
		{
			criteria.GET("", criterionHandler.ListCriteria)
			criteria.POST("", criterionHandler.CreateCriterion)
			criteria.PUT("/:id", criterionHandler.UpdateCriterion)
		}

		// Rating routes (protected)
		ratings := api.Group("/ratings")
		ratings.Use(middleware.RequireAuth())
		{
			ratings.POST("", ratingHandler.CreateRating)
			ratings.PUT("/:id/value", ratingHandler.SetValue)
			ratings.GET("/:id/history", ratingHandler.GetHistory)
		}
	}

	// Start server
	logger.Sugar.Infow("Server starting", "addr", ":8080")
	if err := r.Run(":8080"); err != nil {
		logger.Sugar.Fatalw("Failed to start server", "err", err)
	}
}
