package database

import (
	"database/sql"
	"fmt"
)

// GoogleToken holds a user's stored OAuth token for calendar sync.
type GoogleToken struct {
	UserID      int64  `json:"user_id"`
	TokenJSON   string `json:"-"`
	SyncEnabled bool   `json:"sync_enabled"`
	CalendarID  string `json:"calendar_id"`
}

// SaveGoogleToken stores or replaces a user's OAuth token.
func (d *DB) SaveGoogleToken(userID int64, tokenJSON string) error {
	_, err := d.Exec(`
		INSERT INTO google_tokens (user_id, token_json)
		VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			token_json = excluded.token_json,
			updated_at = CURRENT_TIMESTAMP
	`, userID, tokenJSON)
	if err != nil {
		return fmt.Errorf("failed to save google token: %w", err)
	}
	return nil
}

// GetGoogleToken retrieves a user's stored token.
// Returns (nil, nil) when the user has never connected a calendar.
func (d *DB) GetGoogleToken(userID int64) (*GoogleToken, error) {
	t := &GoogleToken{UserID: userID}
	var calendarID sql.NullString

	err := d.QueryRow(`
		SELECT token_json, sync_enabled, calendar_id
		FROM google_tokens
		WHERE user_id = ?
	`, userID).Scan(&t.TokenJSON, &t.SyncEnabled, &calendarID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get google token: %w", err)
	}

	t.CalendarID = calendarID.String
	return t, nil
}

// SetCalendarSync updates whether sync is enabled and which calendar to use.
func (d *DB) SetCalendarSync(userID int64, enabled bool, calendarID string) error {
	_, err := d.Exec(`
		UPDATE google_tokens
		SET sync_enabled = ?, calendar_id = ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ?
	`, enabled, calendarID, userID)
	if err != nil {
		return fmt.Errorf("failed to set calendar sync: %w", err)
	}
	return nil
}

// DeleteGoogleToken disconnects a user's calendar.
func (d *DB) DeleteGoogleToken(userID int64) error {
	_, err := d.Exec(`DELETE FROM google_tokens WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete google token: %w", err)
	}
	return nil
}
