package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/gather-app/gather/internal/assistant"
	"github.com/gather-app/gather/internal/auth"
	"github.com/gather-app/gather/internal/config"
	"github.com/gather-app/gather/internal/database"
	"github.com/gather-app/gather/internal/gcal"
	"github.com/gather-app/gather/internal/notify"
	"github.com/gather-app/gather/internal/server"
)

func main() {
	cfg := config.LoadFromEnv()

	db, err := database.New(cfg.DBPath)
	if err != nil {
		fatal("creating database", err)
	}
	defer db.Close()

	authService := auth.NewService(db, oauthConfig(cfg))
	notifyService := initNotifyService(db, cfg)
	generator := initGenerator(cfg)

	srv := server.New(server.Config{
		DB:            db,
		AuthService:   authService,
		NotifyService: notifyService,
		GCalManager:   gcal.NewManager(db, authService),
		Generator:     generator,
		AppURL:        cfg.AppURL,
		HistoryLimit:  cfg.HistoryLimit,
		Port:          cfg.HTTPPort,
	})
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "HTTP server error: %v\n", err)
		}
	}()

	go sessionCleanupLoop(authService)

	waitForShutdown(srv)
}

func oauthConfig(cfg *config.Config) *oauth2.Config {
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		fmt.Println("Warning: GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET not set, login disabled")
	}
	return &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  cfg.OAuthRedirectURL,
		Scopes:       auth.ProfileScopes,
	}
}

func initGenerator(cfg *config.Config) assistant.Generator {
	if cfg.GeminiAPIKey == "" {
		fmt.Println("Warning: GEMINI_API_KEY not set, event suggestions disabled")
		return nil
	}
	fmt.Println("Gemini client configured")
	return assistant.NewGeminiClient(cfg.GeminiAPIKey)
}

func initNotifyService(db *database.DB, cfg *config.Config) *notify.Service {
	var emailNotifier notify.Notifier
	if cfg.ResendAPIKey != "" {
		emailNotifier = notify.NewResendNotifier(cfg.ResendAPIKey, cfg.EmailFrom)
		fmt.Println("Email invite service configured (Resend)")
	} else {
		fmt.Println("Warning: RESEND_API_KEY not set, invite emails disabled")
	}
	return notify.NewService(db, emailNotifier, cfg.AppURL)
}

// sessionCleanupLoop removes expired sessions once a day.
func sessionCleanupLoop(authService *auth.Service) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			fmt.Printf("Warning: session cleanup failed: %v\n", err)
		}
	}
}

func fatal(context string, err error) {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", context, err)
	os.Exit(1)
}

func waitForShutdown(srv *server.Server) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	fmt.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	srv.Shutdown(ctx)
}
