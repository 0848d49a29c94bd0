package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// EventStatus represents the lifecycle state of an event instance
type EventStatus string

const (
	EventStatusPending   EventStatus = "pending"
	EventStatusConfirmed EventStatus = "confirmed"
	EventStatusCancelled EventStatus = "cancelled"
)

// ErrForeignFriends is returned when an invite list references friend ids
// that do not belong to the event's owner. The whole write is rolled back.
var ErrForeignFriends = errors.New("some friends do not belong to the authenticated user")

// Event is a concrete scheduled occurrence of an activity template.
// It is always linked to exactly one activity and one owning user.
type Event struct {
	ID                  int64         `json:"id"`
	UserID              int64         `json:"user_id"`
	ActivityID          int64         `json:"activity_id"`
	Title               string        `json:"title"`
	StartTime           time.Time     `json:"start_time"`
	EndTime             *time.Time    `json:"end_time,omitempty"`
	AllDay              bool          `json:"all_day"`
	Venue               string        `json:"venue,omitempty"`
	Address             string        `json:"address,omitempty"`
	City                string        `json:"city,omitempty"`
	State               string        `json:"state,omitempty"`
	Zip                 string        `json:"zip,omitempty"`
	DetailedDescription string        `json:"detailed_description,omitempty"`
	Requirements        string        `json:"requirements,omitempty"`
	ContactInfo         string        `json:"contact_info,omitempty"`
	VenueType           string        `json:"venue_type,omitempty"`
	PriceInfo           string        `json:"price_info,omitempty"`
	Capacity            *int64        `json:"capacity,omitempty"`
	EventURL            string        `json:"event_url,omitempty"`
	Status              EventStatus   `json:"status"`
	GoogleEventID       *string       `json:"google_event_id,omitempty"`
	AIReasoning         string        `json:"ai_reasoning,omitempty"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
	ActivityName        string        `json:"activity_name,omitempty"` // Joined from activities
	Participants        []Participant `json:"participants,omitempty"`
}

const eventColumns = `
	e.id, e.user_id, e.activity_id, e.title, e.start_time, e.end_time, e.all_day,
	e.venue, e.address, e.city, e.state, e.zip,
	e.detailed_description, e.requirements, e.contact_info, e.venue_type,
	e.price_info, e.capacity, e.event_url, e.status, e.google_event_id,
	e.ai_reasoning, e.created_at, e.updated_at,
	a.name as activity_name`

func scanEvent(scan func(dest ...any) error) (*Event, error) {
	var e Event
	var endTime sql.NullTime
	var venue, address, city, state, zip sql.NullString
	var description, requirements, contact, venueType, price, url, reasoning sql.NullString
	var capacity sql.NullInt64
	var googleEventID sql.NullString

	err := scan(
		&e.ID, &e.UserID, &e.ActivityID, &e.Title, &e.StartTime, &endTime, &e.AllDay,
		&venue, &address, &city, &state, &zip,
		&description, &requirements, &contact, &venueType,
		&price, &capacity, &url, &e.Status, &googleEventID,
		&reasoning, &e.CreatedAt, &e.UpdatedAt,
		&e.ActivityName,
	)
	if err != nil {
		return nil, err
	}

	if endTime.Valid {
		e.EndTime = &endTime.Time
	}
	if capacity.Valid {
		e.Capacity = &capacity.Int64
	}
	if googleEventID.Valid {
		e.GoogleEventID = &googleEventID.String
	}
	e.Venue = venue.String
	e.Address = address.String
	e.City = city.String
	e.State = state.String
	e.Zip = zip.String
	e.DetailedDescription = description.String
	e.Requirements = requirements.String
	e.ContactInfo = contact.String
	e.VenueType = venueType.String
	e.PriceInfo = price.String
	e.EventURL = url.String
	e.AIReasoning = reasoning.String

	return &e, nil
}

// CreateEventWithInvites inserts the event and one participation record per
// invited friend in a single transaction. If any friend id does not belong
// to the owning user the whole write is rolled back and ErrForeignFriends is
// returned; zero participation rows survive a partial failure.
func (d *DB) CreateEventWithInvites(event *Event, friendIDs []int64) (*Event, error) {
	tx, err := d.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := verifyFriendOwnership(tx, event.UserID, friendIDs); err != nil {
		return nil, err
	}

	result, err := tx.Exec(`
		INSERT INTO events (
			user_id, activity_id, title, start_time, end_time, all_day,
			venue, address, city, state, zip,
			detailed_description, requirements, contact_info, venue_type,
			price_info, capacity, event_url, status, ai_reasoning
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		event.UserID, event.ActivityID, event.Title, event.StartTime, event.EndTime, event.AllDay,
		event.Venue, event.Address, event.City, event.State, event.Zip,
		event.DetailedDescription, event.Requirements, event.ContactInfo, event.VenueType,
		event.PriceInfo, event.Capacity, event.EventURL, EventStatusPending, event.AIReasoning,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get event id: %w", err)
	}

	for _, friendID := range friendIDs {
		if _, err := tx.Exec(`
			INSERT INTO event_participants (event_id, friend_id, invite_token)
			VALUES (?, ?, ?)
		`, id, friendID, uuid.NewString()); err != nil {
			return nil, fmt.Errorf("failed to create invite: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit event: %w", err)
	}

	return d.GetEventByID(event.UserID, id)
}

// UpdateEventWithInvites updates a pending event's fields and reconciles its
// invite list by set-difference: invites for friends no longer listed are
// removed, new friends get fresh invite tokens, and surviving invites keep
// their token and RSVP state. The whole operation is transactional.
func (d *DB) UpdateEventWithInvites(event *Event, friendIDs []int64) error {
	tx, err := d.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := verifyFriendOwnership(tx, event.UserID, friendIDs); err != nil {
		return err
	}

	_, err = tx.Exec(`
		UPDATE events
		SET activity_id = ?, title = ?, start_time = ?, end_time = ?, all_day = ?,
			venue = ?, address = ?, city = ?, state = ?, zip = ?,
			detailed_description = ?, requirements = ?, contact_info = ?, venue_type = ?,
			price_info = ?, capacity = ?, event_url = ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND id = ?
	`,
		event.ActivityID, event.Title, event.StartTime, event.EndTime, event.AllDay,
		event.Venue, event.Address, event.City, event.State, event.Zip,
		event.DetailedDescription, event.Requirements, event.ContactInfo, event.VenueType,
		event.PriceInfo, event.Capacity, event.EventURL,
		event.UserID, event.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	existing, err := listInviteFriendIDs(tx, event.ID)
	if err != nil {
		return err
	}

	removed, added := lo.Difference(existing, friendIDs)

	for _, friendID := range removed {
		if _, err := tx.Exec(`
			DELETE FROM event_participants WHERE event_id = ? AND friend_id = ?
		`, event.ID, friendID); err != nil {
			return fmt.Errorf("failed to remove invite: %w", err)
		}
	}

	for _, friendID := range added {
		if _, err := tx.Exec(`
			INSERT INTO event_participants (event_id, friend_id, invite_token)
			VALUES (?, ?, ?)
		`, event.ID, friendID, uuid.NewString()); err != nil {
			return fmt.Errorf("failed to create invite: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit event update: %w", err)
	}

	return nil
}

func verifyFriendOwnership(tx *sql.Tx, userID int64, friendIDs []int64) error {
	friendIDs = lo.Uniq(friendIDs)
	if len(friendIDs) == 0 {
		return nil
	}

	query := `SELECT COUNT(*) FROM friends WHERE user_id = ? AND id IN (`
	args := []any{userID}
	for i, id := range friendIDs {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, id)
	}
	query += ")"

	var count int
	if err := tx.QueryRow(query, args...).Scan(&count); err != nil {
		return fmt.Errorf("failed to verify friend ownership: %w", err)
	}
	if count != len(friendIDs) {
		return ErrForeignFriends
	}
	return nil
}

func listInviteFriendIDs(tx *sql.Tx, eventID int64) ([]int64, error) {
	rows, err := tx.Query(`SELECT friend_id FROM event_participants WHERE event_id = ?`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan invite: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetEventByID retrieves an event scoped to a user, with participants.
// Returns (nil, nil) when no event is found.
func (d *DB) GetEventByID(userID, id int64) (*Event, error) {
	row := d.QueryRow(`
		SELECT `+eventColumns+`
		FROM events e
		JOIN activities a ON e.activity_id = a.id
		WHERE e.user_id = ? AND e.id = ?
	`, userID, id)

	event, err := scanEvent(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	participants, err := d.GetEventParticipants(event.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event participants: %w", err)
	}
	event.Participants = participants

	return event, nil
}

// GetInvitedEvent retrieves an event for the RSVP surface, where the invite
// token (not a session) is the credential, so no user scoping applies.
// Returns (nil, nil) when no event is found.
func (d *DB) GetInvitedEvent(id int64) (*Event, error) {
	row := d.QueryRow(`
		SELECT `+eventColumns+`
		FROM events e
		JOIN activities a ON e.activity_id = a.id
		WHERE e.id = ?
	`, id)

	event, err := scanEvent(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

// ListEvents retrieves events for a user with optional filtering by status
// and activity template.
func (d *DB) ListEvents(userID int64, status *EventStatus, activityID *int64) ([]Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events e
		JOIN activities a ON e.activity_id = a.id
		WHERE e.user_id = ?
	`
	args := []any{userID}

	if status != nil {
		query += " AND e.status = ?"
		args = append(args, *status)
	}

	if activityID != nil {
		query += " AND e.activity_id = ?"
		args = append(args, *activityID)
	}

	query += " ORDER BY e.start_time ASC"

	rows, err := d.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		event, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, *event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	for i := range events {
		participants, err := d.GetEventParticipants(events[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get participants for event %d: %w", events[i].ID, err)
		}
		events[i].Participants = participants
	}

	return events, nil
}

// UpdateEventStatus updates the status of an event.
func (d *DB) UpdateEventStatus(userID, id int64, status EventStatus) error {
	_, err := d.Exec(`
		UPDATE events
		SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND id = ?
	`, status, userID, id)
	if err != nil {
		return fmt.Errorf("failed to update event status: %w", err)
	}
	return nil
}

// UpdateEventGoogleID sets the Google Calendar event id after syncing.
func (d *DB) UpdateEventGoogleID(userID, id int64, googleEventID string) error {
	_, err := d.Exec(`
		UPDATE events
		SET google_event_id = ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND id = ?
	`, googleEventID, userID, id)
	if err != nil {
		return fmt.Errorf("failed to update google event id: %w", err)
	}
	return nil
}

// DeleteEvent removes an event and, via cascade, its invites.
func (d *DB) DeleteEvent(userID, id int64) error {
	_, err := d.Exec(`DELETE FROM events WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}
