package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/resend/resend-go/v2"
)

// ResendNotifier sends invite emails via the Resend API
type ResendNotifier struct {
	client      *resend.Client
	fromAddress string
}

// NewResendNotifier creates a new Resend email notifier
func NewResendNotifier(apiKey, from string) *ResendNotifier {
	if apiKey == "" {
		return nil
	}
	return &ResendNotifier{
		client:      resend.NewClient(apiKey),
		fromAddress: from,
	}
}

// IsConfigured returns true if the notifier has server-side config
func (r *ResendNotifier) IsConfigured() bool {
	return r.client != nil && r.fromAddress != ""
}

// Send emails one friend their invite with the RSVP link
func (r *ResendNotifier) Send(ctx context.Context, invite *Invite) error {
	if invite.FriendEmail == "" {
		return fmt.Errorf("no recipient specified")
	}

	subject := fmt.Sprintf("You're invited: %s", invite.Event.Title)
	html := r.formatEmailHTML(invite)

	params := &resend.SendEmailRequest{
		From:    r.fromAddress,
		To:      []string{invite.FriendEmail},
		Subject: subject,
		Html:    html,
	}

	_, err := r.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}

	fmt.Printf("Invite email sent to %s for event: %s\n", invite.FriendEmail, invite.Event.Title)
	return nil
}

// Name returns the notifier name
func (r *ResendNotifier) Name() string {
	return "resend"
}

// formatEmailHTML creates the HTML email body
func (r *ResendNotifier) formatEmailHTML(invite *Invite) string {
	event := invite.Event

	startTimeStr := event.StartTime.Format("Monday, January 2, 2006 at 3:04 PM")
	if event.AllDay {
		startTimeStr = event.StartTime.Format("Monday, January 2, 2006")
	}

	endTimeStr := ""
	if event.EndTime != nil && !event.AllDay {
		// If same day, just show the time
		if event.StartTime.Format("2006-01-02") == event.EndTime.Format("2006-01-02") {
			endTimeStr = fmt.Sprintf(" - %s", event.EndTime.Format("3:04 PM"))
		} else {
			endTimeStr = fmt.Sprintf(" - %s", event.EndTime.Format("Monday, January 2, 2006 at 3:04 PM"))
		}
	}

	locationHTML := ""
	if event.Venue != "" || event.Address != "" {
		place := event.Venue
		if event.Address != "" {
			if place != "" {
				place += ", "
			}
			place += event.Address
		}
		locationHTML = fmt.Sprintf(`<p style="margin: 8px 0;"><strong>Where:</strong> %s</p>`, place)
	}

	descriptionHTML := ""
	if event.DetailedDescription != "" {
		descriptionHTML = fmt.Sprintf(`<p style="margin: 16px 0;">%s</p>`, event.DetailedDescription)
	}

	hostName := invite.HostName
	if hostName == "" {
		hostName = "A friend"
	}

	greeting := "Hi"
	if invite.FriendName != "" {
		greeting = fmt.Sprintf("Hi %s", invite.FriendName)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
  <div style="background-color: white; border-radius: 8px; padding: 24px; box-shadow: 0 2px 4px rgba(0,0,0,0.1);">
    <p style="margin: 0 0 8px 0; color: #666;">%s,</p>
    <p style="margin: 0 0 16px 0; color: #666;">%s invited you to:</p>

    <h2 style="margin: 0 0 16px 0; color: #333;">%s</h2>

    <div style="background: #f8f9fa; padding: 16px; border-radius: 8px; margin: 16px 0; border-left: 4px solid #007bff;">
      <p style="margin: 8px 0;"><strong>When:</strong> %s%s</p>
      %s
    </div>

    %s

    <a href="%s" style="display: inline-block; background: #007bff; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin-top: 16px; font-weight: 500;">
      RSVP
    </a>

    <hr style="margin-top: 32px; border: none; border-top: 1px solid #eee;">
    <p style="color: #999; font-size: 12px; margin-top: 16px;">
      Gather - Event Planning<br>
      <span style="color: #ccc;">Sent at %s</span>
    </p>
  </div>
</body>
</html>`,
		greeting,
		hostName,
		event.Title,
		startTimeStr,
		endTimeStr,
		locationHTML,
		descriptionHTML,
		invite.RSVPLink,
		time.Now().Format("Jan 2, 2006 3:04 PM"),
	)
}
