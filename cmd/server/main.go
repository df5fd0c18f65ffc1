package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"medtrack/internal/config"
	"medtrack/internal/database"
	"medtrack/internal/handlers"
	"medtrack/internal/repository"
	"medtrack/internal/security"
	"medtrack/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	elderRepo := repository.NewElderRepository(db)
	medicationRepo := repository.NewMedicationRepository(db)
	logRepo := repository.NewLogRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	// Initialize services
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail,
		cfg.SESFromName, cfg.AppBaseURL, cfg.EmailDebug)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	authService := service.NewAuthService(userRepo, elderRepo, tokenRepo, emailService,
		cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	elderService := service.NewElderService(elderRepo, userRepo, logRepo, emailService)
	medicationService := service.NewMedicationService(medicationRepo, elderRepo)
	logService := service.NewLogService(logRepo, medicationRepo)
	reportService := service.NewReportService(logRepo, medicationRepo)

	oauthProviders := map[string]handlers.OAuthProvider{
		"google": {
			Name:  "google",
			Label: "Google",
			Config: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				Endpoint:     google.Endpoint,
				Scopes:       []string{"openid", "email", "profile"},
			},
			UserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		},
	}

	// Initialize handlers
	limiter := security.NewRateLimiter(10, time.Minute)
	middleware := handlers.NewMiddleware(authService, limiter)
	authHandler := handlers.NewAuthHandler(authService, oauthProviders, cfg.OAuthRedirectBase)
	elderHandler := handlers.NewElderHandler(elderService, logService, reportService)
	caretakerHandler := handlers.NewCaretakerHandler(elderService, reportService)
	medicationHandler := handlers.NewMedicationHandler(medicationService)
	healthHandler := handlers.NewHealthHandler(db)

	// Setup routes
	mux := http.NewServeMux()

	// Auth routes
	mux.HandleFunc("POST /api/auth/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/auth/elder", middleware.RateLimit(authHandler.ElderSignIn))
	mux.HandleFunc("POST /api/auth/refresh", authHandler.Refresh)
	mux.HandleFunc("POST /api/auth/logout", middleware.RequireAuth(authHandler.Logout))
	mux.HandleFunc("GET /api/auth/{provider}/start", authHandler.StartOAuth)
	mux.HandleFunc("GET /api/auth/{provider}/callback", authHandler.OAuthCallback)
	mux.HandleFunc("GET /api/me", middleware.RequireAuth(authHandler.Me))

	// Elder routes
	mux.HandleFunc("GET /api/elder/home", middleware.RequireElder(elderHandler.Home))
	mux.HandleFunc("POST /api/elder/logs/{id}/taken", middleware.RequireElder(elderHandler.MarkTaken))
	mux.HandleFunc("POST /api/elder/logs/{id}/skipped", middleware.RequireElder(elderHandler.MarkSkipped))

	// Caretaker routes
	mux.HandleFunc("POST /api/pair", middleware.RequireCaretaker(caretakerHandler.Pair))
	mux.HandleFunc("GET /api/elders", middleware.RequireCaretaker(caretakerHandler.ListElders))
	mux.HandleFunc("GET /api/elders/{elderID}", middleware.RequireCaretaker(caretakerHandler.ElderDetail))
	mux.HandleFunc("GET /api/elders/{elderID}/history", middleware.RequireCaretaker(caretakerHandler.History))
	mux.HandleFunc("GET /api/elders/{elderID}/medications", middleware.RequireCaretaker(medicationHandler.List))
	mux.HandleFunc("POST /api/elders/{elderID}/medications", middleware.RequireCaretaker(medicationHandler.Create))
	mux.HandleFunc("PUT /api/medications/{id}", middleware.RequireCaretaker(medicationHandler.Update))
	mux.HandleFunc("POST /api/medications/{id}/toggle", middleware.RequireCaretaker(medicationHandler.Toggle))
	mux.HandleFunc("DELETE /api/medications/{id}", middleware.RequireCaretaker(medicationHandler.Delete))

	// Operational routes
	mux.HandleFunc("GET /api/health", healthHandler.Health)

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background refresh token cleanup
	go cleanupExpiredTokens(authService)

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}

func cleanupExpiredTokens(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredTokens(); err != nil {
			log.Printf("Error cleaning up expired refresh tokens: %v", err)
		} else {
			log.Println("Expired refresh tokens cleaned up")
		}
	}
}
