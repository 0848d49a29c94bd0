package assistant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gather-app/gather/internal/database"
)

func testUserContext() *UserContext {
	return &UserContext{
		Activities: []database.Activity{
			{Name: "Hiking", Description: "Day hikes"},
		},
		CoreValues: []database.CoreValue{
			{Name: "Community"},
		},
		Locations: []database.SavedLocation{
			{Name: "Home", Address: "123 Oak St"},
		},
		Preferences: &database.Preferences{
			DefaultLocation: "Boulder, CO",
			SocialLocation:  "Downtown Denver",
			EnableSearch:    true,
		},
	}
}

func TestResolveRequestLocation(t *testing.T) {
	uc := testUserContext()

	tests := []struct {
		name     string
		override string
		message  string
		want     string
	}{
		{"nature keyword resolves to home", "", "find me a good hike this weekend", "Boulder, CO"},
		{"travel keyword resolves to home as departure", "", "plan a weekend trip", "Boulder, CO"},
		{"social keyword resolves to social hub", "", "where should we go for dinner", "Downtown Denver"},
		{"no keyword defaults to home", "", "suggest something fun", "Boulder, CO"},
		{"override wins over keywords", "Austin, TX", "dinner and drinks downtown", "Austin, TX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveRequestLocation(uc, tt.override, tt.message))
		})
	}
}

func TestResolveRequestLocationFallbacks(t *testing.T) {
	// Social hub falls back to home, home falls back to "Unknown".
	uc := &UserContext{Preferences: &database.Preferences{DefaultLocation: "Boulder, CO"}}
	assert.Equal(t, "Boulder, CO", ResolveRequestLocation(uc, "", "dinner tonight"))

	empty := &UserContext{Preferences: &database.Preferences{}}
	assert.Equal(t, "Unknown", ResolveRequestLocation(empty, "", "dinner tonight"))
}

func TestBuildPromptReferencesOperativeLocation(t *testing.T) {
	uc := testUserContext()
	today := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)

	hike := BuildPrompt(today, uc, "", "find me a good hike this weekend", nil)
	assert.Contains(t, hike, "Suggest events in or near Boulder, CO")

	dinner := BuildPrompt(today, uc, "", "dinner with friends", nil)
	assert.Contains(t, dinner, "Suggest events in or near Downtown Denver")

	trip := BuildPrompt(today, uc, "", "plan a weekend trip", nil)
	assert.Contains(t, trip, "Plan around Boulder, CO as the departure point")

	override := BuildPrompt(today, uc, "Austin, TX", "dinner with friends", nil)
	assert.Contains(t, override, "Austin, TX")
	assert.NotContains(t, override, "Suggest events in or near Downtown Denver")
}

func TestBuildPromptEncodesPolicy(t *testing.T) {
	uc := testUserContext()
	today := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)

	prompt := BuildPrompt(today, uc, "", "find me a jazz concert this weekend", nil)

	assert.Contains(t, prompt, "Friday, September 4, 2026")
	assert.Contains(t, prompt, "3 to 4 distinct events")
	assert.Contains(t, prompt, "non-empty url")
	assert.Contains(t, prompt, `"message"`)
	assert.Contains(t, prompt, `"suggestedEvents"`)
	assert.Contains(t, prompt, "Hiking")
	assert.Contains(t, prompt, "Community")
	assert.Contains(t, prompt, "123 Oak St")
	assert.Contains(t, prompt, "find me a jazz concert this weekend")
}

func TestBuildPromptAppendsSystemPrompt(t *testing.T) {
	uc := testUserContext()
	uc.Preferences.SystemPrompt = "Prefer vegetarian-friendly venues."
	today := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)

	prompt := BuildPrompt(today, uc, "", "dinner ideas", nil)
	assert.Contains(t, prompt, "Prefer vegetarian-friendly venues.")
}

func TestBuildPromptIsDeterministic(t *testing.T) {
	uc := testUserContext()
	today := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)

	a := BuildPrompt(today, uc, "", "dinner ideas", nil)
	b := BuildPrompt(today, uc, "", "dinner ideas", nil)
	assert.Equal(t, a, b)
}
