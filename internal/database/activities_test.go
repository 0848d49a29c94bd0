package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityCRUD(t *testing.T) {
	db := NewTestDB(t)
	user := CreateTestUser(t, db)

	created, err := db.CreateActivity(user.ID, "Board Games", "Weekly game night", "indoor")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Board Games", created.Name)
	assert.Equal(t, "indoor", created.DefaultVenueType)

	err = db.UpdateActivity(user.ID, created.ID, "Game Night", "Weekly game night", "home")
	require.NoError(t, err)

	updated, err := db.GetActivityByID(user.ID, created.ID)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Game Night", updated.Name)
	assert.Equal(t, "home", updated.DefaultVenueType)

	list, err := db.ListActivities(user.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, db.DeleteActivity(user.ID, created.ID))

	gone, err := db.GetActivityByID(user.ID, created.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestActivitiesScopedToUser(t *testing.T) {
	db := NewTestDB(t)
	alice := CreateTestUser(t, db)
	bob := CreateTestUser(t, db)

	created, err := db.CreateActivity(alice.ID, "Climbing", "", "")
	require.NoError(t, err)

	hidden, err := db.GetActivityByID(bob.ID, created.ID)
	require.NoError(t, err)
	assert.Nil(t, hidden)

	list, err := db.ListActivities(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListActivitiesSortedByName(t *testing.T) {
	db := NewTestDB(t)
	user := CreateTestUser(t, db)

	for _, name := range []string{"zeta", "Alpha", "midway"} {
		_, err := db.CreateActivity(user.ID, name, "", "")
		require.NoError(t, err)
	}

	list, err := db.ListActivities(user.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Alpha", list[0].Name)
	assert.Equal(t, "midway", list[1].Name)
	assert.Equal(t, "zeta", list[2].Name)
}
