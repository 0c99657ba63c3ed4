package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/EscoLessgo/word-craft-arena/internal/config"
	"github.com/EscoLessgo/word-craft-arena/internal/database"
	"github.com/EscoLessgo/word-craft-arena/internal/docstore"
	"github.com/EscoLessgo/word-craft-arena/internal/handlers"
	"github.com/EscoLessgo/word-craft-arena/internal/models"
	"github.com/EscoLessgo/word-craft-arena/internal/repository"
	"github.com/EscoLessgo/word-craft-arena/internal/security"
	"github.com/EscoLessgo/word-craft-arena/internal/service"
)

func main() {
	// Load .env if present; real deployments set env vars directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	cfg := config.Load()

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize storage
	store := docstore.New(db)
	userRepo := repository.NewUserRepository(db)
	gameRepo := repository.NewGameRepository(store)

	// Initialize services
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	tokens := security.NewTokenIssuer(cfg.JWTSecret, cfg.TokenLifetime)
	authService := service.NewAuthService(userRepo, tokens, emailService, cfg.SessionDuration)
	progressService := service.NewProgressService(gameRepo)

	authService.OnAuthStateChange(func(identity *models.Identity) {
		if identity != nil {
			log.Printf("Auth state: signed in as %s", identity.Email)
		} else {
			log.Println("Auth state: signed out")
		}
	})

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
	middleware := handlers.NewMiddleware(authService)
	authHandler := handlers.NewAuthHandler(authService, oauthProviders, cfg.OAuthRedirectBaseURL)
	progressHandler := handlers.NewProgressHandler(progressService)

	// Setup routes
	mux := http.NewServeMux()

	// Auth routes. Credential endpoints sit behind a per-IP rate limit.
	loginLimiter := security.NewRateLimiter(10, time.Minute)
	mux.HandleFunc("POST /api/register", handlers.RateLimit(loginLimiter, authHandler.Register))
	mux.HandleFunc("POST /api/login", handlers.RateLimit(loginLimiter, authHandler.Login))
	mux.HandleFunc("POST /api/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/me", middleware.RequireAuth(authHandler.Me))
	mux.HandleFunc("GET /auth/{provider}/start", authHandler.StartOAuth)
	mux.HandleFunc("GET /auth/{provider}/callback", authHandler.OAuthCallback)
	mux.HandleFunc("POST /api/password-reset/request", handlers.RateLimit(loginLimiter, authHandler.RequestPasswordReset))
	mux.HandleFunc("POST /api/password-reset/confirm", handlers.RateLimit(loginLimiter, authHandler.ConfirmPasswordReset))

	// Game progress routes
	mux.HandleFunc("POST /api/progress", middleware.RequireAuth(progressHandler.SaveProgress))
	mux.HandleFunc("GET /api/history", middleware.RequireAuth(progressHandler.History))
	mux.HandleFunc("GET /api/stats", middleware.RequireAuth(progressHandler.Stats))
	mux.HandleFunc("GET /api/games/{date}", middleware.RequireAuth(progressHandler.Game))

	handler := handlers.Logging(mux)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background session cleanup
	go cleanupExpiredSessions(authService)

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

// cleanupExpiredSessions periodically removes expired sessions
func cleanupExpiredSessions(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Session cleanup failed: %v", err)
		}
	}
}
