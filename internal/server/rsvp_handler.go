package server

import (
	"encoding/json"
	"net/http"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/gather-app/gather/internal/database"
)

// The RSVP surface is unauthenticated: the invite token is the credential.
// It exposes only what an invitee needs to answer, never the host's data.

type rsvpView struct {
	EventTitle string  `json:"event_title"`
	StartTime  string  `json:"start_time"`
	EndTime    *string `json:"end_time,omitempty"`
	AllDay     bool    `json:"all_day"`
	Venue      string  `json:"venue,omitempty"`
	Address    string  `json:"address,omitempty"`
	FriendName string  `json:"friend_name"`
	RSVPStatus string  `json:"rsvp_status"`
	Cancelled  bool    `json:"cancelled"`
}

func (s *Server) loadInvite(w http.ResponseWriter, r *http.Request) (*database.Participant, *database.Event, bool) {
	token := r.PathValue("token")
	if token == "" {
		respondError(w, http.StatusBadRequest, "missing invite token")
		return nil, nil, false
	}

	participant, err := s.db.GetParticipantByToken(token)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load invite")
		return nil, nil, false
	}
	if participant == nil {
		respondError(w, http.StatusNotFound, "invite not found")
		return nil, nil, false
	}

	event, err := s.db.GetInvitedEvent(participant.EventID)
	if err != nil || event == nil {
		respondError(w, http.StatusNotFound, "event not found")
		return nil, nil, false
	}

	return participant, event, true
}

func (s *Server) handleGetRSVP(w http.ResponseWriter, r *http.Request) {
	participant, event, ok := s.loadInvite(w, r)
	if !ok {
		return
	}

	view := rsvpView{
		EventTitle: event.Title,
		StartTime:  event.StartTime.Format("2006-01-02T15:04:05Z07:00"),
		AllDay:     event.AllDay,
		Venue:      event.Venue,
		Address:    event.Address,
		FriendName: participant.FriendName,
		RSVPStatus: participant.RSVPStatus,
		Cancelled:  event.Status == database.EventStatusCancelled,
	}
	if event.EndTime != nil {
		end := event.EndTime.Format("2006-01-02T15:04:05Z07:00")
		view.EndTime = &end
	}

	respondJSON(w, http.StatusOK, view)
}

func (s *Server) handlePostRSVP(w http.ResponseWriter, r *http.Request) {
	participant, event, ok := s.loadInvite(w, r)
	if !ok {
		return
	}

	if event.Status == database.EventStatusCancelled {
		respondError(w, http.StatusConflict, "this event was cancelled")
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch payload.Status {
	case database.RSVPYes, database.RSVPNo, database.RSVPMaybe:
	default:
		respondError(w, http.StatusBadRequest, "status must be yes, no, or maybe")
		return
	}

	if err := s.db.SetRSVP(participant.InviteToken, payload.Status); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to record rsvp")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": payload.Status})
}

func (s *Server) handleRSVPQR(w http.ResponseWriter, r *http.Request) {
	participant, _, ok := s.loadInvite(w, r)
	if !ok {
		return
	}

	link := s.notifyService.RSVPLink(participant.InviteToken)
	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate qr code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
