package database

import (
	"database/sql"
	"fmt"
	"time"
)

// RSVP statuses for an event invite.
const (
	RSVPInvited = "invited"
	RSVPYes     = "yes"
	RSVPNo      = "no"
	RSVPMaybe   = "maybe"
)

// Participant is an invited friend's participation record for one event.
// The invite token is the friend's credential for responding; it is never
// guessable from the event or friend ids.
type Participant struct {
	ID          int64      `json:"id"`
	EventID     int64      `json:"event_id"`
	FriendID    int64      `json:"friend_id"`
	InviteToken string     `json:"invite_token"`
	RSVPStatus  string     `json:"rsvp_status"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	FriendName  string     `json:"friend_name,omitempty"`  // Joined from friends
	FriendEmail string     `json:"friend_email,omitempty"` // Joined from friends
}

// GetEventParticipants retrieves all invites for an event with friend details.
func (d *DB) GetEventParticipants(eventID int64) ([]Participant, error) {
	rows, err := d.Query(`
		SELECT p.id, p.event_id, p.friend_id, p.invite_token, p.rsvp_status,
			p.responded_at, p.created_at, f.name, f.email
		FROM event_participants p
		JOIN friends f ON p.friend_id = f.id
		WHERE p.event_id = ?
		ORDER BY f.name COLLATE NOCASE
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []Participant
	for rows.Next() {
		p, err := scanParticipant(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participants: %w", err)
	}

	return participants, nil
}

// GetParticipantByToken resolves an invite token to its participation record.
// Returns (nil, nil) when the token is unknown.
func (d *DB) GetParticipantByToken(token string) (*Participant, error) {
	row := d.QueryRow(`
		SELECT p.id, p.event_id, p.friend_id, p.invite_token, p.rsvp_status,
			p.responded_at, p.created_at, f.name, f.email
		FROM event_participants p
		JOIN friends f ON p.friend_id = f.id
		WHERE p.invite_token = ?
	`, token)

	p, err := scanParticipant(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return p, nil
}

// SetRSVP records a friend's response to an invite.
func (d *DB) SetRSVP(token, status string) error {
	result, err := d.Exec(`
		UPDATE event_participants
		SET rsvp_status = ?, responded_at = CURRENT_TIMESTAMP
		WHERE invite_token = ?
	`, status, token)
	if err != nil {
		return fmt.Errorf("failed to set rsvp: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rsvp update: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("invite not found")
	}
	return nil
}

func scanParticipant(scan func(dest ...any) error) (*Participant, error) {
	var p Participant
	var respondedAt sql.NullTime
	var email sql.NullString

	err := scan(
		&p.ID, &p.EventID, &p.FriendID, &p.InviteToken, &p.RSVPStatus,
		&respondedAt, &p.CreatedAt, &p.FriendName, &email,
	)
	if err != nil {
		return nil, err
	}

	if respondedAt.Valid {
		p.RespondedAt = &respondedAt.Time
	}
	p.FriendEmail = email.String

	return &p, nil
}
