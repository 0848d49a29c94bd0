package database

import (
	"database/sql"
	"fmt"
	"time"
)

// CoreValue is a short statement of what matters to the user; the assistant
// uses these to bias its suggestions.
type CoreValue struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateCoreValue adds a core value for a user.
func (d *DB) CreateCoreValue(userID int64, name, description string) (*CoreValue, error) {
	result, err := d.Exec(`
		INSERT INTO core_values (user_id, name, description)
		VALUES (?, ?, ?)
	`, userID, name, description)
	if err != nil {
		return nil, fmt.Errorf("failed to create core value: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get core value id: %w", err)
	}

	return &CoreValue{ID: id, UserID: userID, Name: name, Description: description, CreatedAt: time.Now()}, nil
}

// ListCoreValues retrieves all core values for a user.
func (d *DB) ListCoreValues(userID int64) ([]CoreValue, error) {
	rows, err := d.Query(`
		SELECT id, user_id, name, description, created_at
		FROM core_values
		WHERE user_id = ?
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list core values: %w", err)
	}
	defer rows.Close()

	var values []CoreValue
	for rows.Next() {
		var v CoreValue
		var description sql.NullString
		if err := rows.Scan(&v.ID, &v.UserID, &v.Name, &description, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan core value: %w", err)
		}
		v.Description = description.String
		values = append(values, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating core values: %w", err)
	}

	return values, nil
}

// DeleteCoreValue removes a core value.
func (d *DB) DeleteCoreValue(userID, id int64) error {
	_, err := d.Exec(`DELETE FROM core_values WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete core value: %w", err)
	}
	return nil
}
