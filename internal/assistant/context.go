package assistant

import (
	"fmt"

	"github.com/gather-app/gather/internal/database"
)

// UserContext is a read-only snapshot of everything the prompt grounds
// suggestions on. It is loaded once per chat request.
type UserContext struct {
	Activities  []database.Activity
	CoreValues  []database.CoreValue
	Locations   []database.SavedLocation
	Preferences *database.Preferences
}

// BuildUserContext loads the user's activities, core values, saved locations,
// and preferences. It fails closed: any load error aborts the chat request
// before a model call, because the prompt asserts facts about the user and
// must not be sent with a default identity.
func BuildUserContext(db *database.DB, userID int64) (*UserContext, error) {
	activities, err := db.ListActivities(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}

	values, err := db.ListCoreValues(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load core values: %w", err)
	}

	locations, err := db.ListSavedLocations(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load saved locations: %w", err)
	}

	prefs, err := db.GetPreferences(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	return &UserContext{
		Activities:  activities,
		CoreValues:  values,
		Locations:   locations,
		Preferences: prefs,
	}, nil
}

// HomeLocation resolves the user's home/origin location through the layered
// fallback: configured default, else "Unknown".
func (uc *UserContext) HomeLocation() string {
	if uc.Preferences != nil && uc.Preferences.DefaultLocation != "" {
		return uc.Preferences.DefaultLocation
	}
	return "Unknown"
}

// SocialLocation resolves the user's urban-social hub, falling back to the
// home location when unset.
func (uc *UserContext) SocialLocation() string {
	if uc.Preferences != nil && uc.Preferences.SocialLocation != "" {
		return uc.Preferences.SocialLocation
	}
	return uc.HomeLocation()
}
