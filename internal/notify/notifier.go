package notify

import (
	"context"

	"github.com/gather-app/gather/internal/database"
)

// Invite is everything a notifier needs to tell one friend about an event.
type Invite struct {
	Event       *database.Event
	HostName    string
	FriendName  string
	FriendEmail string
	RSVPLink    string
}

// Notifier delivers an invite to a single recipient
type Notifier interface {
	// Send delivers the invite
	Send(ctx context.Context, invite *Invite) error
	// Name returns the notifier type name (for logging)
	Name() string
	// IsConfigured returns true if the notifier has server-side config
	IsConfigured() bool
}
