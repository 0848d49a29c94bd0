package migrations

import (
	"database/sql"
)

func init() {
	Register(Migration{
		Version: 1,
		Name:    "initial_schema",
		Up:      initialSchema,
	})
}

func initialSchema(db *sql.DB) error {
	statements := []string{
		// Users table
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			google_id TEXT UNIQUE NOT NULL,
			email TEXT NOT NULL,
			name TEXT,
			avatar_url TEXT,
			timezone TEXT DEFAULT 'UTC',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			last_login_at DATETIME
		)`,
		`CREATE INDEX IF NOT EXISTS idx_users_google_id ON users(google_id)`,

		// Session tokens (hashed at rest)
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			token_hash TEXT UNIQUE NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			expires_at DATETIME NOT NULL,
			FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_token_hash ON sessions(token_hash)`,

		// Activity templates
		`CREATE TABLE IF NOT EXISTS activities (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			default_venue_type TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_user ON activities(user_id)`,

		// Core values used to ground assistant suggestions
		`CREATE TABLE IF NOT EXISTS core_values (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_core_values_user ON core_values(user_id)`,

		// Saved locations
		`CREATE TABLE IF NOT EXISTS saved_locations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			type TEXT,
			address TEXT,
			description TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_saved_locations_user ON saved_locations(user_id)`,

		// Friends (invitees), scoped to the owning user
		`CREATE TABLE IF NOT EXISTS friends (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			email TEXT,
			phone TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_friends_user ON friends(user_id)`,

		// Per-user assistant preferences (one row per user)
		`CREATE TABLE IF NOT EXISTS user_preferences (
			user_id INTEGER PRIMARY KEY,
			default_location TEXT,
			social_location TEXT,
			system_prompt TEXT,
			preferred_model TEXT,
			enable_search BOOLEAN DEFAULT 1,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,

		// Event instances
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			activity_id INTEGER NOT NULL,
			title TEXT NOT NULL,
			start_time DATETIME NOT NULL,
			end_time DATETIME,
			all_day BOOLEAN DEFAULT 0,
			venue TEXT,
			address TEXT,
			city TEXT,
			state TEXT,
			zip TEXT,
			detailed_description TEXT,
			requirements TEXT,
			contact_info TEXT,
			venue_type TEXT,
			price_info TEXT,
			capacity INTEGER,
			event_url TEXT,
			status TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('pending', 'confirmed', 'cancelled')),
			google_event_id TEXT,
			ai_reasoning TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE,
			FOREIGN KEY(activity_id) REFERENCES activities(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_user ON events(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_events_activity ON events(activity_id)`,
		`CREATE INDEX IF NOT EXISTS idx_events_start ON events(user_id, start_time)`,

		// Invited participants, one row per invite
		`CREATE TABLE IF NOT EXISTS event_participants (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			event_id INTEGER NOT NULL,
			friend_id INTEGER NOT NULL,
			invite_token TEXT UNIQUE NOT NULL,
			rsvp_status TEXT NOT NULL DEFAULT 'invited' CHECK(rsvp_status IN ('invited', 'yes', 'no', 'maybe')),
			responded_at DATETIME,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(event_id, friend_id),
			FOREIGN KEY(event_id) REFERENCES events(id) ON DELETE CASCADE,
			FOREIGN KEY(friend_id) REFERENCES friends(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_event_participants_event ON event_participants(event_id)`,
		`CREATE INDEX IF NOT EXISTS idx_event_participants_token ON event_participants(invite_token)`,

		// Google Calendar connection per user
		`CREATE TABLE IF NOT EXISTS google_tokens (
			user_id INTEGER PRIMARY KEY,
			token_json TEXT NOT NULL,
			sync_enabled BOOLEAN DEFAULT 0,
			calendar_id TEXT DEFAULT 'primary',
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
