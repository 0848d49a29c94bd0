package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPreferencesDefaults(t *testing.T) {
	db := NewTestDB(t)
	user := CreateTestUser(t, db)

	// No stored row: defaults with search enabled.
	p, err := db.GetPreferences(user.ID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.True(t, p.EnableSearch)
	assert.Empty(t, p.PreferredModel)
	assert.Empty(t, p.DefaultLocation)
}

func TestSetPreferencesUpsert(t *testing.T) {
	db := NewTestDB(t)
	user := CreateTestUser(t, db)

	err := db.SetPreferences(&Preferences{
		UserID:          user.ID,
		DefaultLocation: "Denver, CO",
		SocialLocation:  "Downtown Denver",
		PreferredModel:  "gemini-2.5-pro",
		EnableSearch:    true,
	})
	require.NoError(t, err)

	p, err := db.GetPreferences(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Denver, CO", p.DefaultLocation)
	assert.Equal(t, "gemini-2.5-pro", p.PreferredModel)

	// Second write replaces the row.
	err = db.SetPreferences(&Preferences{
		UserID:       user.ID,
		EnableSearch: false,
	})
	require.NoError(t, err)

	p, err = db.GetPreferences(user.ID)
	require.NoError(t, err)
	assert.False(t, p.EnableSearch)
	assert.Empty(t, p.DefaultLocation)
	assert.Empty(t, p.PreferredModel)
}
