package database

import (
	"database/sql"
	"fmt"
	"time"
)

// CreateSession stores a hashed session token for a user.
func (d *DB) CreateSession(userID int64, tokenHash string, expiresAt time.Time) error {
	_, err := d.Exec(`
		INSERT INTO sessions (user_id, token_hash, expires_at)
		VALUES (?, ?, ?)
	`, userID, tokenHash, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetSessionUserID resolves a hashed token to its user id if the session is
// still valid. Returns (0, nil) for unknown or expired sessions.
func (d *DB) GetSessionUserID(tokenHash string) (int64, error) {
	var userID int64
	err := d.QueryRow(`
		SELECT user_id FROM sessions
		WHERE token_hash = ? AND expires_at > CURRENT_TIMESTAMP
	`, tokenHash).Scan(&userID)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get session: %w", err)
	}
	return userID, nil
}

// DeleteSession removes a session by its hashed token.
func (d *DB) DeleteSession(tokenHash string) error {
	_, err := d.Exec(`DELETE FROM sessions WHERE token_hash = ?`, tokenHash)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions clears out sessions past their expiry.
func (d *DB) DeleteExpiredSessions() error {
	_, err := d.Exec(`DELETE FROM sessions WHERE expires_at <= CURRENT_TIMESTAMP`)
	if err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}
