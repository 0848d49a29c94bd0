package database

import (
	"database/sql"
	"fmt"
	"time"
)

// Activity is a reusable template an event instance is scheduled from
// (e.g. "Hiking", "Board game night").
type Activity struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	DefaultVenueType string    `json:"default_venue_type,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreateActivity creates a new activity template for a user.
func (d *DB) CreateActivity(userID int64, name, description, defaultVenueType string) (*Activity, error) {
	result, err := d.Exec(`
		INSERT INTO activities (user_id, name, description, default_venue_type)
		VALUES (?, ?, ?, ?)
	`, userID, name, description, defaultVenueType)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get activity id: %w", err)
	}

	return d.GetActivityByID(userID, id)
}

// GetActivityByID retrieves an activity scoped to a user.
// Returns (nil, nil) when no activity is found.
func (d *DB) GetActivityByID(userID, id int64) (*Activity, error) {
	var a Activity
	var description, venueType sql.NullString

	err := d.QueryRow(`
		SELECT id, user_id, name, description, default_venue_type, created_at, updated_at
		FROM activities
		WHERE user_id = ? AND id = ?
	`, userID, id).Scan(&a.ID, &a.UserID, &a.Name, &description, &venueType, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	a.Description = description.String
	a.DefaultVenueType = venueType.String

	return &a, nil
}

// ListActivities retrieves all activity templates for a user.
func (d *DB) ListActivities(userID int64) ([]Activity, error) {
	rows, err := d.Query(`
		SELECT id, user_id, name, description, default_venue_type, created_at, updated_at
		FROM activities
		WHERE user_id = ?
		ORDER BY name COLLATE NOCASE
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		var a Activity
		var description, venueType sql.NullString
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &description, &venueType, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		a.Description = description.String
		a.DefaultVenueType = venueType.String
		activities = append(activities, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activities: %w", err)
	}

	return activities, nil
}

// UpdateActivity updates an activity's fields.
func (d *DB) UpdateActivity(userID, id int64, name, description, defaultVenueType string) error {
	_, err := d.Exec(`
		UPDATE activities
		SET name = ?, description = ?, default_venue_type = ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND id = ?
	`, name, description, defaultVenueType, userID, id)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}
	return nil
}

// DeleteActivity removes an activity and, via cascade, its event instances.
func (d *DB) DeleteActivity(userID, id int64) error {
	_, err := d.Exec(`DELETE FROM activities WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	return nil
}
