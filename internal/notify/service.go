package notify

import (
	"context"
	"fmt"

	"github.com/gather-app/gather/internal/database"
)

// Service delivers invite notifications best-effort: failures are logged and
// never fail the write path that triggered them.
type Service struct {
	db            *database.DB
	emailNotifier Notifier
	appURL        string
}

// NewService creates a notification service
func NewService(db *database.DB, emailNotifier Notifier, appURL string) *Service {
	return &Service{
		db:            db,
		emailNotifier: emailNotifier,
		appURL:        appURL,
	}
}

// NotifyInvites sends one invite email per participant with a known address.
// Called after the event write commits; errors are logged, not returned.
func (s *Service) NotifyInvites(ctx context.Context, event *database.Event) {
	if s.emailNotifier == nil || !s.emailNotifier.IsConfigured() {
		fmt.Println("Notification: email not configured, skipping invites")
		return
	}

	host, err := s.db.GetUserByID(event.UserID)
	if err != nil {
		fmt.Printf("Notification: failed to load host for event %d: %v\n", event.ID, err)
		return
	}
	hostName := ""
	if host.Name != nil {
		hostName = *host.Name
	}

	for _, p := range event.Participants {
		if p.FriendEmail == "" {
			continue
		}

		invite := &Invite{
			Event:       event,
			HostName:    hostName,
			FriendName:  p.FriendName,
			FriendEmail: p.FriendEmail,
			RSVPLink:    s.RSVPLink(p.InviteToken),
		}

		if err := s.emailNotifier.Send(ctx, invite); err != nil {
			fmt.Printf("Notification: invite email to %s failed: %v\n", p.FriendEmail, err)
		}
	}
}

// RSVPLink builds the public RSVP URL for an invite token.
func (s *Service) RSVPLink(token string) string {
	return fmt.Sprintf("%s/rsvp/%s", s.appURL, token)
}

// IsEmailAvailable returns true if email notifications can be used
func (s *Service) IsEmailAvailable() bool {
	return s.emailNotifier != nil && s.emailNotifier.IsConfigured()
}
