package main

import (
	"activitytracker/database"
	"activitytracker/docs"
	"activitytracker/internal/auth"
	"activitytracker/internal/config"
	"activitytracker/internal/controllers"
	"activitytracker/internal/repository"
	"activitytracker/internal/services"
	"activitytracker/routes"
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load environment variables
	cfg := config.Load(".env", "../.env")
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Swagger Documentation
	docs.SwaggerInfo.Title = "Activity Tracker API"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	if err := database.MigrateDatabase(db); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	database.MonitorDBConnections(ctx, db, cfg.Database.MonitorInterval)

	authHelper, err := auth.New(auth.Config{
		SigningKey: []byte(cfg.JWTSecret),
		Algorithm:  cfg.JWTAlgorithm,
		Issuer:     cfg.JWTIssuer,
		TokenTTL:   cfg.JWTTTL,
		BcryptCost: cfg.BcryptCost,
	})
	if err != nil {
		log.Fatalf("Invalid auth configuration: %v", err)
	}
	if cfg.JWTSecret == config.DefaultJWTSecret {
		log.Println("⚠️  JWT_SECRET_KEY is not set; using the development default")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	transactor := repository.NewTransactor(db)

	// Initialize services and controllers
	userService := services.NewUserService(transactor, userRepo, authHelper)
	activityService := services.NewActivityService(transactor, userRepo, activityRepo)

	userController := controllers.NewUserController(userService)
	activityController := controllers.NewActivityController(activityService)

	gin.SetMode(cfg.GinMode)
	router := routes.NewRouter(routes.Dependencies{
		DB:                 db,
		Driver:             cfg.Database.Driver,
		UserController:     userController,
		ActivityController: activityController,
		Tokens:             authHelper,
		AuthRequired:       cfg.AuthRequired,
	})

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		log.Printf("API Documentation: http://localhost:%s/swagger/index.html", cfg.Port)
		log.Printf("Database Health: http://localhost:%s/health/database", cfg.Port)
		log.Printf("Metrics: http://localhost:%s/metrics", cfg.Port)
		if cfg.AuthRequired {
			log.Println("Bearer token required on /user and /activity routes")
		}

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}
