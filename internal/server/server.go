package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gather-app/gather/internal/assistant"
	"github.com/gather-app/gather/internal/auth"
	"github.com/gather-app/gather/internal/database"
	"github.com/gather-app/gather/internal/gcal"
	"github.com/gather-app/gather/internal/notify"
)

type Server struct {
	db            *database.DB
	authService   *auth.Service
	authMW        *auth.Middleware
	notifyService *notify.Service
	gcalManager   *gcal.Manager
	generator     assistant.Generator
	appURL        string
	historyLimit  int
	httpSrv       *http.Server
	port          int
}

// Config holds everything the server needs to run
type Config struct {
	DB            *database.DB
	AuthService   *auth.Service
	NotifyService *notify.Service
	GCalManager   *gcal.Manager
	Generator     assistant.Generator
	AppURL        string
	HistoryLimit  int
	Port          int
}

func New(cfg Config) *Server {
	s := &Server{
		db:            cfg.DB,
		authService:   cfg.AuthService,
		authMW:        auth.NewMiddleware(cfg.AuthService),
		notifyService: cfg.NotifyService,
		gcalManager:   cfg.GCalManager,
		generator:     cfg.Generator,
		appURL:        cfg.AppURL,
		historyLimit:  cfg.HistoryLimit,
		port:          cfg.Port,
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.httpSrv = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.corsMiddleware(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // chat requests can walk the whole fallback chain
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	authed := func(h http.HandlerFunc) http.Handler {
		return s.authMW.RequireAuth(h)
	}

	// Health check
	mux.HandleFunc("GET /health", s.handleHealthCheck)

	// Auth API
	mux.HandleFunc("GET /api/auth/login", s.handleLoginURL)
	mux.HandleFunc("GET /api/auth/callback", s.handleOAuthCallback)
	mux.Handle("POST /api/auth/logout", authed(s.handleLogout))
	mux.Handle("GET /api/auth/me", authed(s.handleMe))

	// Chat API
	mux.Handle("POST /api/chat", authed(s.handleChat))

	// Activities API
	mux.Handle("GET /api/activities", authed(s.handleListActivities))
	mux.Handle("POST /api/activities", authed(s.handleCreateActivity))
	mux.Handle("PUT /api/activities/{id}", authed(s.handleUpdateActivity))
	mux.Handle("DELETE /api/activities/{id}", authed(s.handleDeleteActivity))

	// Friends API
	mux.Handle("GET /api/friends", authed(s.handleListFriends))
	mux.Handle("POST /api/friends", authed(s.handleCreateFriend))
	mux.Handle("PUT /api/friends/{id}", authed(s.handleUpdateFriend))
	mux.Handle("DELETE /api/friends/{id}", authed(s.handleDeleteFriend))

	// Saved locations API
	mux.Handle("GET /api/locations", authed(s.handleListLocations))
	mux.Handle("POST /api/locations", authed(s.handleCreateLocation))
	mux.Handle("PUT /api/locations/{id}", authed(s.handleUpdateLocation))
	mux.Handle("DELETE /api/locations/{id}", authed(s.handleDeleteLocation))

	// Core values API
	mux.Handle("GET /api/values", authed(s.handleListValues))
	mux.Handle("POST /api/values", authed(s.handleCreateValue))
	mux.Handle("DELETE /api/values/{id}", authed(s.handleDeleteValue))

	// Settings API
	mux.Handle("GET /api/settings", authed(s.handleGetSettings))
	mux.Handle("PUT /api/settings", authed(s.handleUpdateSettings))

	// Events API
	mux.Handle("GET /api/events", authed(s.handleListEvents))
	mux.Handle("POST /api/events", authed(s.handleCreateEvent))
	mux.Handle("GET /api/events/{id}", authed(s.handleGetEvent))
	mux.Handle("PUT /api/events/{id}", authed(s.handleUpdateEvent))
	mux.Handle("DELETE /api/events/{id}", authed(s.handleDeleteEvent))
	mux.Handle("POST /api/events/{id}/confirm", authed(s.handleConfirmEvent))
	mux.Handle("POST /api/events/{id}/cancel", authed(s.handleCancelEvent))
	mux.Handle("GET /api/events/{id}/ics", authed(s.handleEventICS))

	// RSVP API (public: the invite token is the credential)
	mux.HandleFunc("GET /api/rsvp/{token}", s.handleGetRSVP)
	mux.HandleFunc("POST /api/rsvp/{token}", s.handlePostRSVP)
	mux.HandleFunc("GET /api/rsvp/{token}/qr", s.handleRSVPQR)

	// Google Calendar API
	mux.Handle("GET /api/gcal/status", authed(s.handleGCalStatus))
	mux.Handle("GET /api/gcal/calendars", authed(s.handleGCalListCalendars))
	mux.Handle("PUT /api/gcal/settings", authed(s.handleUpdateGCalSettings))
	mux.Handle("POST /api/gcal/connect", authed(s.handleGCalConnect))
	mux.Handle("POST /api/gcal/disconnect", authed(s.handleGCalDisconnect))
}

func (s *Server) Start() error {
	fmt.Printf("Starting HTTP server on http://localhost:%d\n", s.port)
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// Handler returns the server's HTTP handler for testing purposes
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// corsMiddleware adds CORS headers to allow browser requests
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight requests
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
