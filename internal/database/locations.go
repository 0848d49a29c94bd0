package database

import (
	"database/sql"
	"fmt"
	"time"
)

// SavedLocation is a named place the assistant can ground suggestions on.
type SavedLocation struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Type        string    `json:"type,omitempty"`
	Address     string    `json:"address,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateSavedLocation adds a saved location for a user.
func (d *DB) CreateSavedLocation(userID int64, name, locType, address, description string) (*SavedLocation, error) {
	result, err := d.Exec(`
		INSERT INTO saved_locations (user_id, name, type, address, description)
		VALUES (?, ?, ?, ?, ?)
	`, userID, name, locType, address, description)
	if err != nil {
		return nil, fmt.Errorf("failed to create saved location: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get saved location id: %w", err)
	}

	return &SavedLocation{
		ID:          id,
		UserID:      userID,
		Name:        name,
		Type:        locType,
		Address:     address,
		Description: description,
		CreatedAt:   time.Now(),
	}, nil
}

// ListSavedLocations retrieves all saved locations for a user.
func (d *DB) ListSavedLocations(userID int64) ([]SavedLocation, error) {
	rows, err := d.Query(`
		SELECT id, user_id, name, type, address, description, created_at
		FROM saved_locations
		WHERE user_id = ?
		ORDER BY name COLLATE NOCASE
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved locations: %w", err)
	}
	defer rows.Close()

	var locations []SavedLocation
	for rows.Next() {
		var l SavedLocation
		var locType, address, description sql.NullString
		if err := rows.Scan(&l.ID, &l.UserID, &l.Name, &locType, &address, &description, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan saved location: %w", err)
		}
		l.Type = locType.String
		l.Address = address.String
		l.Description = description.String
		locations = append(locations, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating saved locations: %w", err)
	}

	return locations, nil
}

// UpdateSavedLocation updates a saved location's fields.
func (d *DB) UpdateSavedLocation(userID, id int64, name, locType, address, description string) error {
	_, err := d.Exec(`
		UPDATE saved_locations
		SET name = ?, type = ?, address = ?, description = ?
		WHERE user_id = ? AND id = ?
	`, name, locType, address, description, userID, id)
	if err != nil {
		return fmt.Errorf("failed to update saved location: %w", err)
	}
	return nil
}

// DeleteSavedLocation removes a saved location.
func (d *DB) DeleteSavedLocation(userID, id int64) error {
	_, err := d.Exec(`DELETE FROM saved_locations WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete saved location: %w", err)
	}
	return nil
}
