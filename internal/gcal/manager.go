package gcal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/gather-app/gather/internal/auth"
	"github.com/gather-app/gather/internal/database"
)

var ErrNotConnected = errors.New("google calendar not connected")

// Manager syncs confirmed event instances to each user's Google Calendar.
// Calendar lists are cached briefly because the settings UI polls them.
type Manager struct {
	db            *database.DB
	auth          *auth.Service
	calendarCache *gocache.Cache
}

// NewManager creates a calendar sync manager
func NewManager(db *database.DB, authService *auth.Service) *Manager {
	return &Manager{
		db:            db,
		auth:          authService,
		calendarCache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

// serviceFor builds a calendar service authorized as the given user.
func (m *Manager) serviceFor(ctx context.Context, userID int64) (*calendar.Service, error) {
	token, err := m.auth.GoogleToken(userID)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, ErrNotConnected
	}

	httpClient := m.auth.GetOAuthConfig().Client(ctx, token)
	service, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return service, nil
}

// SyncEnabled reports whether the user has connected a calendar and turned
// sync on.
func (m *Manager) SyncEnabled(userID int64) (bool, error) {
	stored, err := m.db.GetGoogleToken(userID)
	if err != nil {
		return false, err
	}
	return stored != nil && stored.SyncEnabled, nil
}

// SyncEvent creates or updates the Google Calendar copy of an event and
// records the resulting event id. Attendee emails come from the invite list.
func (m *Manager) SyncEvent(ctx context.Context, userID int64, event *database.Event) error {
	service, err := m.serviceFor(ctx, userID)
	if err != nil {
		return err
	}

	stored, err := m.db.GetGoogleToken(userID)
	if err != nil {
		return err
	}
	if stored == nil {
		return ErrNotConnected
	}
	calendarID := stored.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}

	gEvent := buildCalendarEvent(event)

	if event.GoogleEventID != nil && *event.GoogleEventID != "" {
		_, err := service.Events.Update(calendarID, *event.GoogleEventID, gEvent).SendUpdates("all").Do()
		if err != nil {
			return fmt.Errorf("failed to update calendar event: %w", err)
		}
		return nil
	}

	created, err := service.Events.Insert(calendarID, gEvent).SendUpdates("all").Do()
	if err != nil {
		return fmt.Errorf("failed to create calendar event: %w", err)
	}

	return m.db.UpdateEventGoogleID(userID, event.ID, created.Id)
}

// RemoveEvent deletes the Google Calendar copy of an event, if one exists.
// A copy already deleted on the Google side is not an error.
func (m *Manager) RemoveEvent(ctx context.Context, userID int64, event *database.Event) error {
	if event.GoogleEventID == nil || *event.GoogleEventID == "" {
		return nil
	}

	service, err := m.serviceFor(ctx, userID)
	if err != nil {
		return err
	}

	stored, err := m.db.GetGoogleToken(userID)
	if err != nil {
		return err
	}
	calendarID := "primary"
	if stored != nil && stored.CalendarID != "" {
		calendarID = stored.CalendarID
	}

	if err := service.Events.Delete(calendarID, *event.GoogleEventID).Do(); err != nil {
		var gErr *googleapi.Error
		if errors.As(err, &gErr) && (gErr.Code == http.StatusNotFound || gErr.Code == http.StatusGone) {
			return nil
		}
		return fmt.Errorf("failed to delete calendar event: %w", err)
	}

	return nil
}

// CalendarEntry is one calendar in the user's calendar list.
type CalendarEntry struct {
	ID      string `json:"id"`
	Summary string `json:"summary"`
	Primary bool   `json:"primary"`
}

// ListCalendars returns the user's calendar list, cached for a few minutes.
func (m *Manager) ListCalendars(ctx context.Context, userID int64) ([]CalendarEntry, error) {
	cacheKey := fmt.Sprintf("calendars:%d", userID)
	if cached, found := m.calendarCache.Get(cacheKey); found {
		return cached.([]CalendarEntry), nil
	}

	service, err := m.serviceFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	list, err := service.CalendarList.List().Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}

	entries := make([]CalendarEntry, 0, len(list.Items))
	for _, item := range list.Items {
		entries = append(entries, CalendarEntry{
			ID:      item.Id,
			Summary: item.Summary,
			Primary: item.Primary,
		})
	}

	m.calendarCache.Set(cacheKey, entries, gocache.DefaultExpiration)
	return entries, nil
}

// buildCalendarEvent maps an event instance onto the Google Calendar shape.
func buildCalendarEvent(event *database.Event) *calendar.Event {
	gEvent := &calendar.Event{
		Summary:     event.Title,
		Description: event.DetailedDescription,
		Location:    eventLocation(event),
	}

	if event.AllDay {
		gEvent.Start = &calendar.EventDateTime{Date: event.StartTime.Format("2006-01-02")}
		end := event.StartTime.Add(24 * time.Hour)
		if event.EndTime != nil {
			end = *event.EndTime
		}
		gEvent.End = &calendar.EventDateTime{Date: end.Format("2006-01-02")}
	} else {
		gEvent.Start = &calendar.EventDateTime{DateTime: event.StartTime.Format(time.RFC3339)}
		end := event.StartTime.Add(time.Hour)
		if event.EndTime != nil {
			end = *event.EndTime
		}
		gEvent.End = &calendar.EventDateTime{DateTime: end.Format(time.RFC3339)}
	}

	for _, p := range event.Participants {
		if p.FriendEmail != "" {
			gEvent.Attendees = append(gEvent.Attendees, &calendar.EventAttendee{
				Email:       p.FriendEmail,
				DisplayName: p.FriendName,
			})
		}
	}

	return gEvent
}

func eventLocation(event *database.Event) string {
	location := event.Venue
	for _, part := range []string{event.Address, event.City, event.State, event.Zip} {
		if part == "" {
			continue
		}
		if location != "" {
			location += ", "
		}
		location += part
	}
	return location
}
