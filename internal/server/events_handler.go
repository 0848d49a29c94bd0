package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gather-app/gather/internal/database"
	"github.com/gather-app/gather/internal/gcal"
	"github.com/gather-app/gather/internal/ics"
	"github.com/gather-app/gather/internal/timeutil"
)

type eventPayload struct {
	ActivityID          int64   `json:"activity_id"`
	Title               string  `json:"title"`
	Date                string  `json:"date,omitempty"`
	Time                string  `json:"time,omitempty"`
	StartTime           string  `json:"start_time,omitempty"`
	EndDate             string  `json:"end_date,omitempty"`
	EndTime             string  `json:"end_time,omitempty"`
	AllDay              bool    `json:"all_day,omitempty"`
	Venue               string  `json:"venue,omitempty"`
	Address             string  `json:"address,omitempty"`
	City                string  `json:"city,omitempty"`
	State               string  `json:"state,omitempty"`
	Zip                 string  `json:"zip,omitempty"`
	DetailedDescription string  `json:"detailed_description,omitempty"`
	Requirements        string  `json:"requirements,omitempty"`
	ContactInfo         string  `json:"contact_info,omitempty"`
	VenueType           string  `json:"venue_type,omitempty"`
	PriceInfo           string  `json:"price_info,omitempty"`
	Capacity            *int64  `json:"capacity,omitempty"`
	EventURL            string  `json:"event_url,omitempty"`
	AIReasoning         string  `json:"ai_reasoning,omitempty"`
	FriendIDs           []int64 `json:"friend_ids,omitempty"`
}

// parseEventTimes resolves the payload's start and optional end instants in
// the user's timezone. The manual form submits date+time pairs; API clients
// may submit full datetimes instead.
func parseEventTimes(p *eventPayload, timezone string) (time.Time, *time.Time, error) {
	var start time.Time
	var err error

	switch {
	case p.StartTime != "":
		start, _, err = timeutil.ParseDateTime(p.StartTime, timezone)
	case p.Date != "" && p.Time != "":
		start, _, err = timeutil.ParseDateTime(p.Date+"T"+p.Time, timezone)
	case p.Date != "":
		start, _, err = timeutil.ParseDateWithDefaultTime(p.Date, timezone, 18, 0)
	default:
		return time.Time{}, nil, fmt.Errorf("a start date is required")
	}
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("invalid start date: %v", err)
	}

	var end *time.Time
	switch {
	case p.EndTime != "":
		t, _, err := timeutil.ParseDateTime(p.EndTime, timezone)
		if err != nil {
			return time.Time{}, nil, fmt.Errorf("invalid end date: %v", err)
		}
		end = &t
	case p.EndDate != "":
		t, _, err := timeutil.ParseDateWithDefaultTime(p.EndDate, timezone, 23, 59)
		if err != nil {
			return time.Time{}, nil, fmt.Errorf("invalid end date: %v", err)
		}
		end = &t
	}

	if end != nil && end.Before(start) {
		return time.Time{}, nil, fmt.Errorf("end date cannot be before start date")
	}

	return start, end, nil
}

// buildEvent validates the payload against the user's data and assembles the
// event record. Validation failures come back as user-facing messages.
func (s *Server) buildEvent(userID int64, p *eventPayload) (*database.Event, error) {
	if p.ActivityID == 0 {
		return nil, fmt.Errorf("activity_id is required")
	}
	if p.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	activity, err := s.db.GetActivityByID(userID, p.ActivityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity")
	}
	if activity == nil {
		return nil, fmt.Errorf("activity not found")
	}

	timezone, err := s.db.GetUserTimezone(userID)
	if err != nil {
		timezone = "UTC"
	}

	start, end, err := parseEventTimes(p, timezone)
	if err != nil {
		return nil, err
	}

	return &database.Event{
		UserID:              userID,
		ActivityID:          p.ActivityID,
		Title:               p.Title,
		StartTime:           start,
		EndTime:             end,
		AllDay:              p.AllDay,
		Venue:               p.Venue,
		Address:             p.Address,
		City:                p.City,
		State:               p.State,
		Zip:                 p.Zip,
		DetailedDescription: p.DetailedDescription,
		Requirements:        p.Requirements,
		ContactInfo:         p.ContactInfo,
		VenueType:           p.VenueType,
		PriceInfo:           p.PriceInfo,
		Capacity:            p.Capacity,
		EventURL:            p.EventURL,
		AIReasoning:         p.AIReasoning,
	}, nil
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(w, r)
	if !ok {
		return
	}

	var payload eventPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := s.buildEvent(userID, &payload)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.db.CreateEventWithInvites(event, payload.FriendIDs)
	if err != nil {
		if errors.Is(err, database.ErrForeignFriends) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		fmt.Printf("Failed to create event: %v\n", err)
		respondError(w, http.StatusInternalServerError, "failed to create event")
		return
	}

	// Invites go out best-effort after the write commits.
	go s.notifyService.NotifyInvites(context.Background(), created)

	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	existing, err := s.db.GetEventByID(userID, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load event")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "event not found")
		return
	}

	var payload eventPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := s.buildEvent(userID, &payload)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	event.ID = id
	event.GoogleEventID = existing.GoogleEventID

	if err := s.db.UpdateEventWithInvites(event, payload.FriendIDs); err != nil {
		if errors.Is(err, database.ErrForeignFriends) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		fmt.Printf("Failed to update event %d: %v\n", id, err)
		respondError(w, http.StatusInternalServerError, "failed to update event")
		return
	}

	updated, err := s.db.GetEventByID(userID, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load event")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(w, r)
	if !ok {
		return
	}

	var status *database.EventStatus
	if v := r.URL.Query().Get("status"); v != "" {
		st := database.EventStatus(v)
		status = &st
	}

	var activityID *int64
	if v := r.URL.Query().Get("activity_id"); v != "" {
		var id int64
		if _, err := fmt.Sscanf(v, "%d", &id); err == nil {
			activityID = &id
		}
	}

	events, err := s.db.ListEvents(userID, status, activityID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list events")
		return
	}
	if events == nil {
		events = []database.Event{}
	}

	respondJSON(w, http.StatusOK, events)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	event, err := s.db.GetEventByID(userID, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load event")
		return
	}
	if event == nil {
		respondError(w, http.StatusNotFound, "event not found")
		return
	}

	respondJSON(w, http.StatusOK, event)
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	event, err := s.db.GetEventByID(userID, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load event")
		return
	}
	if event == nil {
		respondError(w, http.StatusNotFound, "event not found")
		return
	}

	if err := s.db.DeleteEvent(userID, id); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete event")
		return
	}

	if s.gcalManager != nil {
		if err := s.gcalManager.RemoveEvent(r.Context(), userID, event); err != nil && !errors.Is(err, gcal.ErrNotConnected) {
			fmt.Printf("Failed to remove calendar copy of event %d: %v\n", id, err)
		}
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleConfirmEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	event, err := s.db.GetEventByID(userID, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load event")
		return
	}
	if event == nil {
		respondError(w, http.StatusNotFound, "event not found")
		return
	}

	if err := s.db.UpdateEventStatus(userID, id, database.EventStatusConfirmed); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to confirm event")
		return
	}

	// Calendar sync is best-effort: confirmation succeeds even if Google
	// is unreachable or not connected.
	if s.gcalManager != nil {
		if enabled, err := s.gcalManager.SyncEnabled(userID); err == nil && enabled {
			if err := s.gcalManager.SyncEvent(r.Context(), userID, event); err != nil {
				fmt.Printf("Failed to sync event %d to calendar: %v\n", id, err)
			}
		}
	}

	confirmed, err := s.db.GetEventByID(userID, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load event")
		return
	}

	respondJSON(w, http.StatusOK, confirmed)
}

func (s *Server) handleCancelEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	event, err := s.db.GetEventByID(userID, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load event")
		return
	}
	if event == nil {
		respondError(w, http.StatusNotFound, "event not found")
		return
	}

	if err := s.db.UpdateEventStatus(userID, id, database.EventStatusCancelled); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to cancel event")
		return
	}

	if s.gcalManager != nil {
		if err := s.gcalManager.RemoveEvent(r.Context(), userID, event); err != nil && !errors.Is(err, gcal.ErrNotConnected) {
			fmt.Printf("Failed to remove calendar copy of event %d: %v\n", id, err)
		}
	}

	cancelled, err := s.db.GetEventByID(userID, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load event")
		return
	}

	respondJSON(w, http.StatusOK, cancelled)
}

func (s *Server) handleEventICS(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	event, err := s.db.GetEventByID(userID, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load event")
		return
	}
	if event == nil {
		respondError(w, http.StatusNotFound, "event not found")
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="event-%d.ics"`, event.ID))
	fmt.Fprint(w, ics.Render(event))
}
