package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gather-app/gather/internal/database"
)

func newTestService(t *testing.T) (*Service, *database.DB) {
	t.Helper()
	db := database.NewTestDB(t)
	return NewService(db, nil), db
}

func TestSessionRoundTrip(t *testing.T) {
	svc, db := newTestService(t)
	user := database.CreateTestUser(t, db)

	token, err := svc.CreateSession(user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	validated, err := svc.ValidateSession(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, validated.ID)
	assert.Equal(t, user.Email, validated.Email)

	// Raw tokens are never stored; only the hash is.
	var count int
	err = db.QueryRow(`SELECT COUNT(*) FROM sessions WHERE token_hash = ?`, token).Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, svc.Logout(token))

	_, err = svc.ValidateSession(token)
	assert.Error(t, err)
}

func TestValidateSessionRejectsUnknownToken(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ValidateSession("not-a-real-token")
	assert.Error(t, err)
}

func TestRequireAuthMiddleware(t *testing.T) {
	svc, db := newTestService(t)
	user := database.CreateTestUser(t, db)

	token, err := svc.CreateSession(user.ID)
	require.NoError(t, err)

	middleware := NewMiddleware(svc)
	handler := middleware.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetUserID(r.Context())
		require.NoError(t, err)
		assert.Equal(t, user.ID, id)
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", token, http.StatusUnauthorized},
		{"wrong token", "Bearer bogus", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
