package database

import (
	"database/sql"
	"fmt"
	"time"
)

// Preferences holds per-user assistant settings. Missing fields fall back
// through the layered resolution in the assistant package; the zero value is
// a valid "nothing configured" record.
type Preferences struct {
	UserID          int64     `json:"user_id"`
	DefaultLocation string    `json:"default_location,omitempty"`
	SocialLocation  string    `json:"social_location,omitempty"`
	SystemPrompt    string    `json:"system_prompt,omitempty"`
	PreferredModel  string    `json:"preferred_model,omitempty"`
	EnableSearch    bool      `json:"enable_search"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// GetPreferences returns the user's preferences. A user with no stored row
// gets the defaults (search enabled, everything else empty).
func (d *DB) GetPreferences(userID int64) (*Preferences, error) {
	p := &Preferences{UserID: userID, EnableSearch: true}

	var defaultLoc, socialLoc, sysPrompt, model sql.NullString
	err := d.QueryRow(`
		SELECT default_location, social_location, system_prompt, preferred_model, enable_search, updated_at
		FROM user_preferences
		WHERE user_id = ?
	`, userID).Scan(&defaultLoc, &socialLoc, &sysPrompt, &model, &p.EnableSearch, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}

	p.DefaultLocation = defaultLoc.String
	p.SocialLocation = socialLoc.String
	p.SystemPrompt = sysPrompt.String
	p.PreferredModel = model.String

	return p, nil
}

// SetPreferences replaces the user's preferences record.
func (d *DB) SetPreferences(p *Preferences) error {
	_, err := d.Exec(`
		INSERT INTO user_preferences (user_id, default_location, social_location, system_prompt, preferred_model, enable_search, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET
			default_location = excluded.default_location,
			social_location = excluded.social_location,
			system_prompt = excluded.system_prompt,
			preferred_model = excluded.preferred_model,
			enable_search = excluded.enable_search,
			updated_at = CURRENT_TIMESTAMP
	`, p.UserID, p.DefaultLocation, p.SocialLocation, p.SystemPrompt, p.PreferredModel, p.EnableSearch)
	if err != nil {
		return fmt.Errorf("failed to set preferences: %w", err)
	}
	return nil
}
