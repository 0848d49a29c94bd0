package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gather-app/gather/internal/assistant"
	"github.com/gather-app/gather/internal/timeutil"
)

// defaultHistoryLimit caps how many prior turns are folded into the prompt
// when no limit is configured.
const defaultHistoryLimit = 20

type chatRequest struct {
	Message  string `json:"message"`
	Location *struct {
		Address string `json:"address"`
	} `json:"location,omitempty"`
	ConversationHistory []assistant.ConversationTurn `json:"conversationHistory,omitempty"`
}

type chatResponse struct {
	Response chatReplyBody `json:"response"`
}

type chatReplyBody struct {
	Message string `json:"message"`
	// Always empty; retained for shape compatibility with older clients.
	SearchResults   []interface{}              `json:"searchResults"`
	SuggestedEvents []assistant.SuggestedEvent `json:"suggestedEvents"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(w, r)
	if !ok {
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}
	if s.generator == nil {
		respondError(w, http.StatusServiceUnavailable, "event suggestions are not configured")
		return
	}

	// Fail closed: never call the model with a default identity.
	uc, err := assistant.BuildUserContext(s.db, userID)
	if err != nil {
		fmt.Printf("Chat: failed to build user context for user %d: %v\n", userID, err)
		respondError(w, http.StatusInternalServerError, "unable to load your profile")
		return
	}

	override := ""
	if req.Location != nil {
		override = req.Location.Address
	}

	limit := s.historyLimit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	history := req.ConversationHistory
	if len(history) > limit {
		history = history[len(history)-limit:]
	}

	timezone, err := s.db.GetUserTimezone(userID)
	if err != nil {
		timezone = "UTC"
	}
	loc, _ := timeutil.ResolveLocation(timezone)

	prompt := assistant.BuildPrompt(time.Now().In(loc), uc, override, req.Message, history)

	attempts := assistant.BuildAttempts(uc.Preferences.PreferredModel, uc.Preferences.EnableSearch)

	raw, err := assistant.Generate(r.Context(), s.generator, attempts, prompt)
	if err != nil {
		respondJSON(w, http.StatusOK, degradedChatResponse(err))
		return
	}

	result, err := assistant.ParseChatReply(raw)
	if err != nil {
		fmt.Printf("Chat: unparseable model output for user %d: %v\n", userID, err)
		respondJSON(w, http.StatusOK, degradedChatResponse(err))
		return
	}
	if result.Source == assistant.ParseSalvaged {
		fmt.Printf("Chat: salvaged model output for user %d\n", userID)
	}

	respondJSON(w, http.StatusOK, chatResponse{
		Response: chatReplyBody{
			Message:         result.Reply.Message,
			SearchResults:   []interface{}{},
			SuggestedEvents: result.Reply.SuggestedEvents,
		},
	})
}

// degradedChatResponse turns a model or parse failure into a successful chat
// reply: the conversational surface never returns a hard error. Quota
// failures get a model-switch suggestion instead of a raw error dump.
func degradedChatResponse(err error) chatResponse {
	message := "I'm having trouble coming up with suggestions right now. Please try again in a moment."
	if errors.Is(err, assistant.ErrQuotaExhausted) {
		message = "The selected model has hit its usage limit. Try switching models in your settings and ask again."
	}

	return chatResponse{
		Response: chatReplyBody{
			Message:         message,
			SearchResults:   []interface{}{},
			SuggestedEvents: []assistant.SuggestedEvent{},
		},
	}
}
