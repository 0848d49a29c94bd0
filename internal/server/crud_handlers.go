package server

import (
	"encoding/json"
	"net/http"

	"github.com/gather-app/gather/internal/assistant"
	"github.com/gather-app/gather/internal/database"
)

// Activities API

type activityPayload struct {
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	DefaultVenueType string `json:"default_venue_type,omitempty"`
}

func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(w, r)
	if !ok {
		return
	}

	activities, err := s.db.ListActivities(userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list activities")
		return
	}
	if activities == nil {
		activities = []database.Activity{}
	}
	respondJSON(w, http.StatusOK, activities)
}

func (s *Server) handleCreateActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(w, r)
	if !ok {
		return
	}

	var payload activityPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	activity, err := s.db.CreateActivity(userID, payload.Name, payload.Description, payload.DefaultVenueType)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create activity")
		return
	}
	respondJSON(w, http.StatusCreated, activity)
}

func (s *Server) handleUpdateActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid activity id")
		return
	}

	var payload activityPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := s.db.UpdateActivity(userID, id, payload.Name, payload.Description, payload.DefaultVenueType); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update activity")
		return
	}

	activity, err := s.db.GetActivityByID(userID, id)
	if err != nil || activity == nil {
		respondError(w, http.StatusNotFound, "activity not found")
		return
	}
	respondJSON(w, http.StatusOK, activity)
}

func (s *Server) handleDeleteActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid activity id")
		return
	}

	if err := s.db.DeleteActivity(userID, id); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete activity")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Friends API

type friendPayload struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

func (s *Server) handleListFriends(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(w, r)
	if !ok {
		return
	}

	friends, err := s.db.ListFriends(userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list friends")
		return
	}
	if friends == nil {
		friends = []database.Friend{}
	}
	respondJSON(w, http.StatusOK, friends)
}

func (s *Server) handleCreateFriend(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(w, r)
	if !ok {
		return
	}

	var payload friendPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	friend, err := s.db.CreateFriend(userID, payload.Name, payload.Email, payload.Phone)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create friend")
		return
	}
	respondJSON(w, http.StatusCreated, friend)
}

func (s *Server) handleUpdateFriend(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid friend id")
		return
	}

	var payload friendPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := s.db.UpdateFriend(userID, id, payload.Name, payload.Email, payload.Phone); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update friend")
		return
	}

	friend, err := s.db.GetFriendByID(userID, id)
	if err != nil || friend == nil {
		respondError(w, http.StatusNotFound, "friend not found")
		return
	}
	respondJSON(w, http.StatusOK, friend)
}

func (s *Server) handleDeleteFriend(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid friend id")
		return
	}

	if err := s.db.DeleteFriend(userID, id); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete friend")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Saved locations API

type locationPayload struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Address     string `json:"address,omitempty"`
	Description string `json:"description,omitempty"`
}

func (s *Server) handleListLocations(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(w, r)
	if !ok {
		return
	}

	locations, err := s.db.ListSavedLocations(userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list locations")
		return
	}
	if locations == nil {
		locations = []database.SavedLocation{}
	}
	respondJSON(w, http.StatusOK, locations)
}

func (s *Server) handleCreateLocation(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(w, r)
	if !ok {
		return
	}

	var payload locationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	location, err := s.db.CreateSavedLocation(userID, payload.Name, payload.Type, payload.Address, payload.Description)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create location")
		return
	}
	respondJSON(w, http.StatusCreated, location)
}

func (s *Server) handleUpdateLocation(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid location id")
		return
	}

	var payload locationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := s.db.UpdateSavedLocation(userID, id, payload.Name, payload.Type, payload.Address, payload.Description); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update location")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleDeleteLocation(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid location id")
		return
	}

	if err := s.db.DeleteSavedLocation(userID, id); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete location")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Core values API

type valuePayload struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (s *Server) handleListValues(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(w, r)
	if !ok {
		return
	}

	values, err := s.db.ListCoreValues(userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list core values")
		return
	}
	if values == nil {
		values = []database.CoreValue{}
	}
	respondJSON(w, http.StatusOK, values)
}

func (s *Server) handleCreateValue(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(w, r)
	if !ok {
		return
	}

	var payload valuePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	value, err := s.db.CreateCoreValue(userID, payload.Name, payload.Description)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create core value")
		return
	}
	respondJSON(w, http.StatusCreated, value)
}

func (s *Server) handleDeleteValue(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid value id")
		return
	}

	if err := s.db.DeleteCoreValue(userID, id); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete core value")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Settings API

type settingsPayload struct {
	DefaultLocation string `json:"default_location"`
	SocialLocation  string `json:"social_location"`
	SystemPrompt    string `json:"system_prompt"`
	PreferredModel  string `json:"preferred_model"`
	EnableSearch    bool   `json:"enable_search"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(w, r)
	if !ok {
		return
	}

	prefs, err := s.db.GetPreferences(userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}
	respondJSON(w, http.StatusOK, prefs)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(w, r)
	if !ok {
		return
	}

	var payload settingsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	prefs := &database.Preferences{
		UserID:          userID,
		DefaultLocation: payload.DefaultLocation,
		SocialLocation:  payload.SocialLocation,
		SystemPrompt:    payload.SystemPrompt,
		PreferredModel:  assistant.NormalizeModel(payload.PreferredModel),
		EnableSearch:    payload.EnableSearch,
	}
	if err := s.db.SetPreferences(prefs); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}
	respondJSON(w, http.StatusOK, prefs)
}
