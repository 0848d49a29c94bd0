package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gather-app/gather/internal/database"
)

func (e *testEnv) createActivity(t *testing.T) *database.Activity {
	t.Helper()
	activity, err := e.db.CreateActivity(e.userID, "Hiking", "", "nature")
	require.NoError(t, err)
	return activity
}

func (e *testEnv) createFriend(t *testing.T, userID int64, name string) *database.Friend {
	t.Helper()
	friend, err := e.db.CreateFriend(userID, name, name+"@example.com", "")
	require.NoError(t, err)
	return friend
}

func TestCreateEvent(t *testing.T) {
	env := newTestEnv(t)
	activity := env.createActivity(t)
	friend := env.createFriend(t, env.userID, "Alice")

	rec := env.do(t, http.MethodPost, "/api/events", map[string]interface{}{
		"activity_id": activity.ID,
		"title":       "Saturday Hike",
		"date":        "2026-09-05",
		"time":        "09:00",
		"venue":       "Eagle Peak Trailhead",
		"friend_ids":  []int64{friend.ID},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	event := decodeBody[database.Event](t, rec)
	assert.Equal(t, "Saturday Hike", event.Title)
	assert.Equal(t, database.EventStatusPending, event.Status)
	require.Len(t, event.Participants, 1)
	assert.NotEmpty(t, event.Participants[0].InviteToken)
}

func TestCreateEventRejectsEndBeforeStart(t *testing.T) {
	env := newTestEnv(t)
	activity := env.createActivity(t)

	rec := env.do(t, http.MethodPost, "/api/events", map[string]interface{}{
		"activity_id": activity.ID,
		"title":       "Backwards Event",
		"date":        "2026-09-05",
		"time":        "09:00",
		"end_date":    "2026-09-04",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "end date cannot be before start date", body["error"])

	// Nothing was written.
	events, err := env.db.ListEvents(env.userID, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestCreateEventRejectsForeignFriends(t *testing.T) {
	env := newTestEnv(t)
	activity := env.createActivity(t)

	other := database.CreateTestUser(t, env.db)
	mine := env.createFriend(t, env.userID, "Mine")
	foreign := env.createFriend(t, other.ID, "Theirs")

	rec := env.do(t, http.MethodPost, "/api/events", map[string]interface{}{
		"activity_id": activity.ID,
		"title":       "Mixed Invites",
		"date":        "2026-09-05",
		"friend_ids":  []int64{mine.ID, foreign.ID},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "some friends do not belong to the authenticated user", body["error"])

	// All-or-nothing: no participation rows for either friend.
	var count int
	err := env.db.QueryRow(`SELECT COUNT(*) FROM event_participants`).Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCreateEventRequiresOwnedActivity(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/events", map[string]interface{}{
		"activity_id": 9999,
		"title":       "Orphan Event",
		"date":        "2026-09-05",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateEventReconcilesInvites(t *testing.T) {
	env := newTestEnv(t)
	activity := env.createActivity(t)
	alice := env.createFriend(t, env.userID, "Alice")
	bob := env.createFriend(t, env.userID, "Bob")

	rec := env.do(t, http.MethodPost, "/api/events", map[string]interface{}{
		"activity_id": activity.ID,
		"title":       "Hike",
		"date":        "2026-09-05",
		"friend_ids":  []int64{alice.ID},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[database.Event](t, rec)

	rec = env.do(t, http.MethodPut, fmt.Sprintf("/api/events/%d", created.ID), map[string]interface{}{
		"activity_id": activity.ID,
		"title":       "Hike (rescheduled)",
		"date":        "2026-09-06",
		"friend_ids":  []int64{bob.ID},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated := decodeBody[database.Event](t, rec)
	assert.Equal(t, "Hike (rescheduled)", updated.Title)
	require.Len(t, updated.Participants, 1)
	assert.Equal(t, bob.ID, updated.Participants[0].FriendID)
}

func TestConfirmAndCancelEvent(t *testing.T) {
	env := newTestEnv(t)
	activity := env.createActivity(t)

	rec := env.do(t, http.MethodPost, "/api/events", map[string]interface{}{
		"activity_id": activity.ID,
		"title":       "Hike",
		"date":        "2026-09-05",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[database.Event](t, rec)

	rec = env.do(t, http.MethodPost, fmt.Sprintf("/api/events/%d/confirm", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	confirmed := decodeBody[database.Event](t, rec)
	assert.Equal(t, database.EventStatusConfirmed, confirmed.Status)

	rec = env.do(t, http.MethodPost, fmt.Sprintf("/api/events/%d/cancel", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cancelled := decodeBody[database.Event](t, rec)
	assert.Equal(t, database.EventStatusCancelled, cancelled.Status)
}

func TestEventICSExport(t *testing.T) {
	env := newTestEnv(t)
	activity := env.createActivity(t)

	rec := env.do(t, http.MethodPost, "/api/events", map[string]interface{}{
		"activity_id": activity.ID,
		"title":       "Hike",
		"date":        "2026-09-05",
		"time":        "09:00",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[database.Event](t, rec)

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/events/%d/ics", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/calendar")
	assert.Contains(t, rec.Body.String(), "SUMMARY:Hike")
}

func TestRSVPFlow(t *testing.T) {
	env := newTestEnv(t)
	activity := env.createActivity(t)
	friend := env.createFriend(t, env.userID, "Alice")

	rec := env.do(t, http.MethodPost, "/api/events", map[string]interface{}{
		"activity_id": activity.ID,
		"title":       "Hike",
		"date":        "2026-09-05",
		"friend_ids":  []int64{friend.ID},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[database.Event](t, rec)
	require.Len(t, created.Participants, 1)
	token := created.Participants[0].InviteToken

	// The RSVP surface needs no session.
	rec = env.doAnon(t, http.MethodGet, "/api/rsvp/"+token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeBody[rsvpView](t, rec)
	assert.Equal(t, "Hike", view.EventTitle)
	assert.Equal(t, database.RSVPInvited, view.RSVPStatus)

	rec = env.doAnon(t, http.MethodPost, "/api/rsvp/"+token, map[string]string{"status": "yes"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doAnon(t, http.MethodGet, "/api/rsvp/"+token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view = decodeBody[rsvpView](t, rec)
	assert.Equal(t, database.RSVPYes, view.RSVPStatus)

	rec = env.doAnon(t, http.MethodPost, "/api/rsvp/"+token, map[string]string{"status": "later"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.doAnon(t, http.MethodGet, "/api/rsvp/unknown-token", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.doAnon(t, http.MethodGet, "/api/rsvp/"+token+"/qr", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}
