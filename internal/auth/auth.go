package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/gather-app/gather/internal/database"
)

const (
	// SessionDuration is how long session tokens are valid
	SessionDuration = 30 * 24 * time.Hour // 30 days
)

// ProfileScopes - minimum scopes for login (user identity only)
var ProfileScopes = []string{
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
}

// CalendarScopes - for calendar sync (requested separately)
var CalendarScopes = []string{
	calendar.CalendarEventsScope,
}

// Service handles authentication operations
type Service struct {
	db     *database.DB
	config *oauth2.Config
}

// NewService creates a new authentication service
func NewService(db *database.DB, oauthConfig *oauth2.Config) *Service {
	return &Service{
		db:     db,
		config: oauthConfig,
	}
}

// GetAuthURL returns the Google OAuth authorization URL
func (s *Service) GetAuthURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// GetCalendarAuthURL returns an OAuth URL that additionally requests calendar
// access, using incremental authorization so login grants are kept.
func (s *Service) GetCalendarAuthURL(state string) string {
	scoped := &oauth2.Config{
		ClientID:     s.config.ClientID,
		ClientSecret: s.config.ClientSecret,
		Endpoint:     s.config.Endpoint,
		RedirectURL:  s.config.RedirectURL,
		Scopes:       append(append([]string{}, ProfileScopes...), CalendarScopes...),
	}
	return scoped.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.ApprovalForce,
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
	)
}

// GetOAuthConfig returns the OAuth config for use by other packages
func (s *Service) GetOAuthConfig() *oauth2.Config {
	return s.config
}

// ExchangeCodeAndLogin exchanges an OAuth code for tokens, creates or updates
// the user, stores the Google token, and returns the user with a new session token.
func (s *Service) ExchangeCodeAndLogin(ctx context.Context, code string) (*User, string, error) {
	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return nil, "", fmt.Errorf("failed to exchange code: %w", err)
	}

	googleUser, err := s.getGoogleUserInfo(ctx, token)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get user info: %w", err)
	}

	dbUser, err := s.db.UpsertUser(googleUser.Id, googleUser.Email, googleUser.Name, googleUser.Picture)
	if err != nil {
		return nil, "", fmt.Errorf("failed to upsert user: %w", err)
	}

	if err := s.storeGoogleToken(dbUser.ID, token); err != nil {
		return nil, "", fmt.Errorf("failed to store token: %w", err)
	}

	sessionToken, err := s.CreateSession(dbUser.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create session: %w", err)
	}

	return userFromRecord(dbUser), sessionToken, nil
}

// getGoogleUserInfo fetches user profile from Google
func (s *Service) getGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*goauth2.Userinfo, error) {
	client := s.config.Client(ctx, token)
	oauth2Service, err := goauth2.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, err
	}

	return oauth2Service.Userinfo.Get().Do()
}

// storeGoogleToken stores the OAuth token for a user. When incremental auth
// returns no refresh token, the previously stored one is kept.
func (s *Service) storeGoogleToken(userID int64, token *oauth2.Token) error {
	if token.RefreshToken == "" {
		existing, err := s.db.GetGoogleToken(userID)
		if err != nil {
			return err
		}
		if existing != nil {
			var prev oauth2.Token
			if err := json.Unmarshal([]byte(existing.TokenJSON), &prev); err == nil && prev.RefreshToken != "" {
				token.RefreshToken = prev.RefreshToken
			}
		}
	}

	tokenJSON, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	return s.db.SaveGoogleToken(userID, string(tokenJSON))
}

// GoogleToken retrieves the stored OAuth token for a user.
// Returns (nil, nil) when the user has never connected Google.
func (s *Service) GoogleToken(userID int64) (*oauth2.Token, error) {
	stored, err := s.db.GetGoogleToken(userID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, nil
	}

	var token oauth2.Token
	if err := json.Unmarshal([]byte(stored.TokenJSON), &token); err != nil {
		return nil, fmt.Errorf("failed to parse stored token: %w", err)
	}
	return &token, nil
}

// CreateSession creates a new session for a user
func (s *Service) CreateSession(userID int64) (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	if err := s.db.CreateSession(userID, hashToken(token), time.Now().Add(SessionDuration)); err != nil {
		return "", err
	}

	return token, nil
}

// ValidateSession validates a session token and returns the user
func (s *Service) ValidateSession(token string) (*User, error) {
	userID, err := s.db.GetSessionUserID(hashToken(token))
	if err != nil {
		return nil, err
	}
	if userID == 0 {
		return nil, fmt.Errorf("invalid or expired session")
	}

	dbUser, err := s.db.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	return userFromRecord(dbUser), nil
}

// Logout invalidates a session token
func (s *Service) Logout(token string) error {
	return s.db.DeleteSession(hashToken(token))
}

// CleanupExpiredSessions removes all expired sessions
func (s *Service) CleanupExpiredSessions() error {
	return s.db.DeleteExpiredSessions()
}

// hashToken hashes a session token for storage; raw tokens are never persisted.
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return base64.StdEncoding.EncodeToString(hash[:])
}

func userFromRecord(u *database.User) *User {
	user := &User{
		ID:       u.ID,
		GoogleID: u.GoogleID,
		Email:    u.Email,
		Timezone: u.Timezone,
	}
	if u.Name != nil {
		user.Name = *u.Name
	}
	if u.AvatarURL != nil {
		user.AvatarURL = *u.AvatarURL
	}
	return user
}
