package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestActivity creates an activity template for testing events
// (events require an activity and user)
func createTestActivity(t *testing.T, db *DB, userID int64) *Activity {
	t.Helper()
	activity, err := db.CreateActivity(userID, "Hiking", "Day hikes around the area", "nature")
	require.NoError(t, err)
	require.NotNil(t, activity)

	return activity
}

func createTestFriend(t *testing.T, db *DB, userID int64, name string) *Friend {
	t.Helper()
	friend, err := db.CreateFriend(userID, name, name+"@example.com", "")
	require.NoError(t, err)
	require.NotNil(t, friend)

	return friend
}

func TestCreateEventWithInvites(t *testing.T) {
	tests := []struct {
		name      string
		event     func(userID, activityID int64) *Event
		friends   int
		wantErr   bool
		checkFunc func(t *testing.T, created *Event)
	}{
		{
			name: "create event with all fields",
			event: func(userID, activityID int64) *Event {
				endTime := time.Now().Add(2 * time.Hour)
				return &Event{
					UserID:              userID,
					ActivityID:          activityID,
					Title:               "Saturday Hike",
					StartTime:           time.Now(),
					EndTime:             &endTime,
					Venue:               "Eagle Peak Trailhead",
					Address:             "100 Trail Rd",
					City:                "Boulder",
					State:               "CO",
					VenueType:           "outdoor",
					PriceInfo:           "free",
					DetailedDescription: "Moderate 6 mile loop",
					Requirements:        "Bring water and sunscreen",
					AIReasoning:         "User enjoys outdoor activities on weekends",
				}
			},
			friends: 2,
			checkFunc: func(t *testing.T, created *Event) {
				assert.NotZero(t, created.ID)
				assert.Equal(t, "Saturday Hike", created.Title)
				assert.Equal(t, EventStatusPending, created.Status)
				assert.Equal(t, "Hiking", created.ActivityName)
				assert.NotNil(t, created.EndTime)
				assert.Len(t, created.Participants, 2)
				for _, p := range created.Participants {
					assert.NotEmpty(t, p.InviteToken)
					assert.Equal(t, RSVPInvited, p.RSVPStatus)
					assert.Nil(t, p.RespondedAt)
				}
			},
		},
		{
			name: "create event with minimal fields",
			event: func(userID, activityID int64) *Event {
				return &Event{
					UserID:     userID,
					ActivityID: activityID,
					Title:      "Quick Hike",
					StartTime:  time.Now(),
				}
			},
			friends: 0,
			checkFunc: func(t *testing.T, created *Event) {
				assert.NotZero(t, created.ID)
				assert.Equal(t, EventStatusPending, created.Status)
				assert.Nil(t, created.EndTime)
				assert.Nil(t, created.GoogleEventID)
				assert.Empty(t, created.Participants)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := NewTestDB(t)
			user := CreateTestUser(t, db)
			activity := createTestActivity(t, db, user.ID)

			var friendIDs []int64
			for i := 0; i < tt.friends; i++ {
				friend := createTestFriend(t, db, user.ID, "Friend"+string(rune('A'+i)))
				friendIDs = append(friendIDs, friend.ID)
			}

			created, err := db.CreateEventWithInvites(tt.event(user.ID, activity.ID), friendIDs)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, created)
			tt.checkFunc(t, created)
		})
	}
}

func TestCreateEventWithInvitesRejectsForeignFriends(t *testing.T) {
	db := NewTestDB(t)
	owner := CreateTestUser(t, db)
	other := CreateTestUser(t, db)
	activity := createTestActivity(t, db, owner.ID)

	ownFriend := createTestFriend(t, db, owner.ID, "Mine")
	foreignFriend := createTestFriend(t, db, other.ID, "Theirs")

	created, err := db.CreateEventWithInvites(&Event{
		UserID:     owner.ID,
		ActivityID: activity.ID,
		Title:      "Mixed Invites",
		StartTime:  time.Now(),
	}, []int64{ownFriend.ID, foreignFriend.ID})

	require.ErrorIs(t, err, ErrForeignFriends)
	assert.Nil(t, created)

	// The whole write rolls back: no event row and no invite rows survive.
	events, err := db.ListEvents(owner.ID, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, events)

	var count int
	err = db.QueryRow(`SELECT COUNT(*) FROM event_participants`).Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGetEventByIDScopedToUser(t *testing.T) {
	db := NewTestDB(t)
	owner := CreateTestUser(t, db)
	other := CreateTestUser(t, db)
	activity := createTestActivity(t, db, owner.ID)

	created, err := db.CreateEventWithInvites(&Event{
		UserID:     owner.ID,
		ActivityID: activity.ID,
		Title:      "Private Event",
		StartTime:  time.Now(),
	}, nil)
	require.NoError(t, err)

	found, err := db.GetEventByID(owner.ID, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Private Event", found.Title)

	// Another user cannot see it.
	hidden, err := db.GetEventByID(other.ID, created.ID)
	require.NoError(t, err)
	assert.Nil(t, hidden)
}

func TestListEventsFilters(t *testing.T) {
	db := NewTestDB(t)
	user := CreateTestUser(t, db)
	hiking := createTestActivity(t, db, user.ID)
	boardGames, err := db.CreateActivity(user.ID, "Board Games", "", "indoor")
	require.NoError(t, err)

	e1, err := db.CreateEventWithInvites(&Event{
		UserID: user.ID, ActivityID: hiking.ID, Title: "Hike A", StartTime: time.Now(),
	}, nil)
	require.NoError(t, err)
	_, err = db.CreateEventWithInvites(&Event{
		UserID: user.ID, ActivityID: boardGames.ID, Title: "Games Night", StartTime: time.Now().Add(time.Hour),
	}, nil)
	require.NoError(t, err)

	require.NoError(t, db.UpdateEventStatus(user.ID, e1.ID, EventStatusConfirmed))

	all, err := db.ListEvents(user.ID, nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	confirmed := EventStatusConfirmed
	onlyConfirmed, err := db.ListEvents(user.ID, &confirmed, nil)
	require.NoError(t, err)
	require.Len(t, onlyConfirmed, 1)
	assert.Equal(t, "Hike A", onlyConfirmed[0].Title)

	onlyGames, err := db.ListEvents(user.ID, nil, &boardGames.ID)
	require.NoError(t, err)
	require.Len(t, onlyGames, 1)
	assert.Equal(t, "Games Night", onlyGames[0].Title)
}

func TestUpdateEventWithInvitesReconciles(t *testing.T) {
	db := NewTestDB(t)
	user := CreateTestUser(t, db)
	activity := createTestActivity(t, db, user.ID)

	alice := createTestFriend(t, db, user.ID, "Alice")
	bob := createTestFriend(t, db, user.ID, "Bob")
	carol := createTestFriend(t, db, user.ID, "Carol")

	created, err := db.CreateEventWithInvites(&Event{
		UserID:     user.ID,
		ActivityID: activity.ID,
		Title:      "Hike",
		StartTime:  time.Now(),
	}, []int64{alice.ID, bob.ID})
	require.NoError(t, err)

	// Alice responds before the edit; her token and RSVP must survive.
	var aliceToken string
	for _, p := range created.Participants {
		if p.FriendID == alice.ID {
			aliceToken = p.InviteToken
		}
	}
	require.NotEmpty(t, aliceToken)
	require.NoError(t, db.SetRSVP(aliceToken, RSVPYes))

	// Drop Bob, add Carol.
	created.Title = "Hike (rescheduled)"
	err = db.UpdateEventWithInvites(created, []int64{alice.ID, carol.ID})
	require.NoError(t, err)

	updated, err := db.GetEventByID(user.ID, created.ID)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Hike (rescheduled)", updated.Title)
	require.Len(t, updated.Participants, 2)

	byFriend := map[int64]Participant{}
	for _, p := range updated.Participants {
		byFriend[p.FriendID] = p
	}
	assert.NotContains(t, byFriend, bob.ID)
	assert.Equal(t, aliceToken, byFriend[alice.ID].InviteToken)
	assert.Equal(t, RSVPYes, byFriend[alice.ID].RSVPStatus)
	assert.Equal(t, RSVPInvited, byFriend[carol.ID].RSVPStatus)
}

func TestUpdateEventStatus(t *testing.T) {
	db := NewTestDB(t)
	user := CreateTestUser(t, db)
	activity := createTestActivity(t, db, user.ID)

	created, err := db.CreateEventWithInvites(&Event{
		UserID: user.ID, ActivityID: activity.ID, Title: "Hike", StartTime: time.Now(),
	}, nil)
	require.NoError(t, err)

	require.NoError(t, db.UpdateEventStatus(user.ID, created.ID, EventStatusConfirmed))

	updated, err := db.GetEventByID(user.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, EventStatusConfirmed, updated.Status)

	require.NoError(t, db.UpdateEventStatus(user.ID, created.ID, EventStatusCancelled))

	updated, err = db.GetEventByID(user.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, EventStatusCancelled, updated.Status)
}

func TestDeleteEventCascadesInvites(t *testing.T) {
	db := NewTestDB(t)
	user := CreateTestUser(t, db)
	activity := createTestActivity(t, db, user.ID)
	friend := createTestFriend(t, db, user.ID, "Alice")

	created, err := db.CreateEventWithInvites(&Event{
		UserID: user.ID, ActivityID: activity.ID, Title: "Hike", StartTime: time.Now(),
	}, []int64{friend.ID})
	require.NoError(t, err)

	require.NoError(t, db.DeleteEvent(user.ID, created.ID))

	var count int
	err = db.QueryRow(`SELECT COUNT(*) FROM event_participants WHERE event_id = ?`, created.ID).Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestParticipantTokenLookupAndRSVP(t *testing.T) {
	db := NewTestDB(t)
	user := CreateTestUser(t, db)
	activity := createTestActivity(t, db, user.ID)
	friend := createTestFriend(t, db, user.ID, "Alice")

	created, err := db.CreateEventWithInvites(&Event{
		UserID: user.ID, ActivityID: activity.ID, Title: "Hike", StartTime: time.Now(),
	}, []int64{friend.ID})
	require.NoError(t, err)
	require.Len(t, created.Participants, 1)
	token := created.Participants[0].InviteToken

	p, err := db.GetParticipantByToken(token)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Alice", p.FriendName)
	assert.Equal(t, RSVPInvited, p.RSVPStatus)

	require.NoError(t, db.SetRSVP(token, RSVPMaybe))

	p, err = db.GetParticipantByToken(token)
	require.NoError(t, err)
	assert.Equal(t, RSVPMaybe, p.RSVPStatus)
	assert.NotNil(t, p.RespondedAt)

	// Unknown token resolves to nothing.
	missing, err := db.GetParticipantByToken("not-a-token")
	require.NoError(t, err)
	assert.Nil(t, missing)

	err = db.SetRSVP("not-a-token", RSVPYes)
	require.Error(t, err)
}
