package database

import (
	"database/sql"
	"fmt"
	"time"
)

// Friend is an invitable contact scoped to the owning user. Friend ids are
// meaningless across users.
type Friend struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateFriend adds a friend for a user.
func (d *DB) CreateFriend(userID int64, name, email, phone string) (*Friend, error) {
	result, err := d.Exec(`
		INSERT INTO friends (user_id, name, email, phone)
		VALUES (?, ?, ?, ?)
	`, userID, name, email, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to create friend: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get friend id: %w", err)
	}

	return &Friend{ID: id, UserID: userID, Name: name, Email: email, Phone: phone, CreatedAt: time.Now()}, nil
}

// GetFriendByID retrieves a friend scoped to a user.
// Returns (nil, nil) when no friend is found.
func (d *DB) GetFriendByID(userID, id int64) (*Friend, error) {
	var f Friend
	var email, phone sql.NullString

	err := d.QueryRow(`
		SELECT id, user_id, name, email, phone, created_at
		FROM friends
		WHERE user_id = ? AND id = ?
	`, userID, id).Scan(&f.ID, &f.UserID, &f.Name, &email, &phone, &f.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get friend: %w", err)
	}

	f.Email = email.String
	f.Phone = phone.String

	return &f, nil
}

// ListFriends retrieves all friends for a user.
func (d *DB) ListFriends(userID int64) ([]Friend, error) {
	rows, err := d.Query(`
		SELECT id, user_id, name, email, phone, created_at
		FROM friends
		WHERE user_id = ?
		ORDER BY name COLLATE NOCASE
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	defer rows.Close()

	var friends []Friend
	for rows.Next() {
		var f Friend
		var email, phone sql.NullString
		if err := rows.Scan(&f.ID, &f.UserID, &f.Name, &email, &phone, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan friend: %w", err)
		}
		f.Email = email.String
		f.Phone = phone.String
		friends = append(friends, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating friends: %w", err)
	}

	return friends, nil
}

// CountFriendsOwned returns how many of the given friend ids belong to the user.
// Used by the event writer to reject invites referencing foreign friends.
func (d *DB) CountFriendsOwned(userID int64, friendIDs []int64) (int, error) {
	if len(friendIDs) == 0 {
		return 0, nil
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
	if err := d.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count owned friends: %w", err)
	}
	return count, nil
}

// UpdateFriend updates a friend's contact fields.
func (d *DB) UpdateFriend(userID, id int64, name, email, phone string) error {
	_, err := d.Exec(`
		UPDATE friends
		SET name = ?, email = ?, phone = ?
		WHERE user_id = ? AND id = ?
	`, name, email, phone, userID, id)
	if err != nil {
		return fmt.Errorf("failed to update friend: %w", err)
	}
	return nil
}

// DeleteFriend removes a friend and, via cascade, their invites.
func (d *DB) DeleteFriend(userID, id int64) error {
	_, err := d.Exec(`DELETE FROM friends WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete friend: %w", err)
	}
	return nil
}
