package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gather-app/gather/internal/gcal"
)

// Google Calendar API

func (s *Server) handleGCalStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(w, r)
	if !ok {
		return
	}

	stored, err := s.db.GetGoogleToken(userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load calendar status")
		return
	}

	status := map[string]interface{}{
		"connected":    stored != nil,
		"sync_enabled": false,
		"calendar_id":  "",
	}
	if stored != nil {
		status["sync_enabled"] = stored.SyncEnabled
		status["calendar_id"] = stored.CalendarID
	}

	respondJSON(w, http.StatusOK, status)
}

func (s *Server) handleGCalConnect(w http.ResponseWriter, r *http.Request) {
	if _, ok := getUserID(w, r); !ok {
		return
	}

	state := r.URL.Query().Get("state")
	respondJSON(w, http.StatusOK, map[string]string{
		"url": s.authService.GetCalendarAuthURL(state),
	})
}

func (s *Server) handleGCalDisconnect(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(w, r)
	if !ok {
		return
	}

	if err := s.db.DeleteGoogleToken(userID); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to disconnect calendar")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "disconnected"})
}

func (s *Server) handleGCalListCalendars(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(w, r)
	if !ok {
		return
	}

	calendars, err := s.gcalManager.ListCalendars(r.Context(), userID)
	if err != nil {
		if errors.Is(err, gcal.ErrNotConnected) {
			respondError(w, http.StatusBadRequest, "google calendar not connected")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to list calendars")
		return
	}

	respondJSON(w, http.StatusOK, calendars)
}

func (s *Server) handleUpdateGCalSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(w, r)
	if !ok {
		return
	}

	var payload struct {
		SyncEnabled bool   `json:"sync_enabled"`
		CalendarID  string `json:"calendar_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	stored, err := s.db.GetGoogleToken(userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load calendar status")
		return
	}
	if stored == nil {
		respondError(w, http.StatusBadRequest, "google calendar not connected")
		return
	}

	if payload.CalendarID == "" {
		payload.CalendarID = "primary"
	}

	if err := s.db.SetCalendarSync(userID, payload.SyncEnabled, payload.CalendarID); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save calendar settings")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sync_enabled": payload.SyncEnabled,
		"calendar_id":  payload.CalendarID,
	})
}
