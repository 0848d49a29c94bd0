package database

import (
	"database/sql"
	"fmt"
	"time"
)

// User represents a user in the system
type User struct {
	ID          int64
	GoogleID    string
	Email       string
	Name        *string
	AvatarURL   *string
	Timezone    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	LastLoginAt *time.Time
}

// UpsertUser creates a user on first login or refreshes profile fields on
// subsequent logins, returning the stored user either way.
func (d *DB) UpsertUser(googleID, email, name, avatarURL string) (*User, error) {
	_, err := d.Exec(`
		INSERT INTO users (google_id, email, name, avatar_url, last_login_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(google_id) DO UPDATE SET
			email = excluded.email,
			name = excluded.name,
			avatar_url = excluded.avatar_url,
			last_login_at = CURRENT_TIMESTAMP,
			updated_at = CURRENT_TIMESTAMP
	`, googleID, email, name, avatarURL)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	return d.GetUserByGoogleID(googleID)
}

// GetUserByID returns a user by internal id.
func (d *DB) GetUserByID(id int64) (*User, error) {
	return d.getUser(`WHERE id = ?`, id)
}

// GetUserByGoogleID returns a user by Google account id.
func (d *DB) GetUserByGoogleID(googleID string) (*User, error) {
	return d.getUser(`WHERE google_id = ?`, googleID)
}

func (d *DB) getUser(where string, arg any) (*User, error) {
	var u User
	var lastLogin sql.NullTime

	err := d.QueryRow(`
		SELECT id, google_id, email, name, avatar_url, COALESCE(timezone, 'UTC'), created_at, updated_at, last_login_at
		FROM users `+where, arg).Scan(
		&u.ID,
		&u.GoogleID,
		&u.Email,
		&u.Name,
		&u.AvatarURL,
		&u.Timezone,
		&u.CreatedAt,
		&u.UpdatedAt,
		&lastLogin,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if lastLogin.Valid {
		u.LastLoginAt = &lastLogin.Time
	}

	return &u, nil
}

// GetUserTimezone returns a user's preferred timezone.
func (d *DB) GetUserTimezone(userID int64) (string, error) {
	var tz sql.NullString
	err := d.QueryRow(`SELECT timezone FROM users WHERE id = ?`, userID).Scan(&tz)
	if err != nil {
		return "", fmt.Errorf("failed to get user timezone: %w", err)
	}
	if !tz.Valid || tz.String == "" {
		return "UTC", nil
	}
	return tz.String, nil
}

// UpdateUserTimezone updates a user's preferred timezone.
func (d *DB) UpdateUserTimezone(userID int64, timezone string) error {
	_, err := d.Exec(`
		UPDATE users
		SET timezone = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, timezone, userID)
	if err != nil {
		return fmt.Errorf("failed to update user timezone: %w", err)
	}
	return nil
}
