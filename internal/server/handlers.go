package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gather-app/gather/internal/auth"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		fmt.Printf("Error encoding JSON response: %v\n", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// getUserID pulls the authenticated user id out of the request context.
// Routes behind RequireAuth always have one; a miss is a programming error.
func getUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := auth.GetUserID(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return 0, false
	}
	return userID, true
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// Health Check

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		respondError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"email":  s.notifyService.IsEmailAvailable(),
	})
}

// Auth API

func (s *Server) handleLoginURL(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	respondJSON(w, http.StatusOK, map[string]string{
		"url": s.authService.GetAuthURL(state),
	})
}

func (s *Server) handleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		respondError(w, http.StatusBadRequest, "missing authorization code")
		return
	}

	user, sessionToken, err := s.authService.ExchangeCodeAndLogin(r.Context(), code)
	if err != nil {
		fmt.Printf("OAuth login failed: %v\n", err)
		respondError(w, http.StatusUnauthorized, "login failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": sessionToken,
		"user":  user,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("Authorization")
	if len(token) > 7 {
		token = token[7:] // strip "Bearer "
	}
	if err := s.authService.Logout(token); err != nil {
		respondError(w, http.StatusInternalServerError, "logout failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	respondJSON(w, http.StatusOK, user)
}
