package assistant

// ConversationTurn is one prior message in the chat, sent back by the client.
// The server holds no chat state between requests.
type ConversationTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// SuggestedEvent is one event proposal from the model. It is transient:
// constructed per response, never persisted, and only promoted into an event
// instance if the user picks it.
type SuggestedEvent struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Venue       string `json:"venue"`
	Address     string `json:"address"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Duration    string `json:"duration"`
	VenueType   string `json:"venueType"`
	Price       string `json:"price"`
	URL         string `json:"url"`
	Reasoning   string `json:"reasoning"`
}

// ChatReply is the fixed output contract of the assistant, regardless of
// which model or parse path produced it.
type ChatReply struct {
	Message         string           `json:"message"`
	SuggestedEvents []SuggestedEvent `json:"suggestedEvents"`
}
