package assistant

import (
	"fmt"
	"strings"
	"time"
)

var localNatureKeywords = []string{
	"hike", "hiking", "trail", "nature", "park", "outdoor", "picnic",
	"beach", "camping", "walk", "bike", "kayak",
}

var travelKeywords = []string{
	"travel", "trip", "getaway", "vacation", "road trip", "weekend away",
	"flight", "abroad",
}

var urbanSocialKeywords = []string{
	"dinner", "restaurant", "bar", "drinks", "concert", "museum", "club",
	"brunch", "coffee", "show", "theater", "theatre", "nightlife", "gallery",
}

func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// ResolveRequestLocation picks the operative location for a request. An
// explicit override always wins. Otherwise the request's keyword category
// decides: local/nature activities happen around the home location, travel
// departs from home, and urban/social activities center on the social hub.
// Requests with no recognizable category default to the home location.
func ResolveRequestLocation(uc *UserContext, override, message string) string {
	if override != "" {
		return override
	}

	switch {
	case containsAny(message, localNatureKeywords):
		return uc.HomeLocation()
	case containsAny(message, travelKeywords):
		return uc.HomeLocation()
	case containsAny(message, urbanSocialKeywords):
		return uc.SocialLocation()
	default:
		return uc.HomeLocation()
	}
}

// BuildPrompt renders the full instruction string for one chat request. It is
// a pure function of its inputs: no network, no data store. History is the
// prior conversation, already truncated by the caller.
func BuildPrompt(today time.Time, uc *UserContext, override, message string, history []ConversationTurn) string {
	var b strings.Builder

	b.WriteString("You are an event-planning assistant. Today's date is ")
	b.WriteString(today.Format("Monday, January 2, 2006"))
	b.WriteString(".\n\n")

	b.WriteString("## User profile\n")
	fmt.Fprintf(&b, "Home location: %s\n", uc.HomeLocation())
	fmt.Fprintf(&b, "Social hub: %s\n", uc.SocialLocation())

	if len(uc.Activities) > 0 {
		b.WriteString("\nActivities the user enjoys:\n")
		for _, a := range uc.Activities {
			fmt.Fprintf(&b, "- %s", a.Name)
			if a.Description != "" {
				fmt.Fprintf(&b, ": %s", a.Description)
			}
			b.WriteString("\n")
		}
	}

	if len(uc.CoreValues) > 0 {
		b.WriteString("\nWhat matters to the user:\n")
		for _, v := range uc.CoreValues {
			fmt.Fprintf(&b, "- %s", v.Name)
			if v.Description != "" {
				fmt.Fprintf(&b, ": %s", v.Description)
			}
			b.WriteString("\n")
		}
	}

	if len(uc.Locations) > 0 {
		b.WriteString("\nSaved places:\n")
		for _, l := range uc.Locations {
			fmt.Fprintf(&b, "- %s", l.Name)
			if l.Address != "" {
				fmt.Fprintf(&b, " (%s)", l.Address)
			}
			if l.Description != "" {
				fmt.Fprintf(&b, ": %s", l.Description)
			}
			b.WriteString("\n")
		}
	}

	operative := ResolveRequestLocation(uc, override, message)
	b.WriteString("\n## Location\n")
	if override != "" {
		fmt.Fprintf(&b, "The user asked for suggestions in: %s. Use this location.\n", operative)
	} else if containsAny(message, travelKeywords) {
		fmt.Fprintf(&b, "Plan around %s as the departure point.\n", operative)
	} else {
		fmt.Fprintf(&b, "Suggest events in or near %s.\n", operative)
	}

	b.WriteString("\n## Rules\n")
	b.WriteString("- Suggest 3 to 4 distinct events, dated on or shortly after today's date.\n")
	b.WriteString("- Every suggestion must include a non-empty url field.\n")
	b.WriteString("- Venues must be real, verifiable places. Never invent a venue.\n")
	b.WriteString("- Respond with a single JSON object with exactly two top-level keys: ")
	b.WriteString(`"message" (string) and "suggestedEvents" (array).` + "\n")
	b.WriteString("- Each suggested event has the fields: name, description, venue, address, ")
	b.WriteString("date (YYYY-MM-DD), time (HH:MM), duration, venueType, price, url, reasoning.\n")
	b.WriteString("- Output nothing outside the JSON object. No prose, no code fences.\n")

	if uc.Preferences != nil && uc.Preferences.SystemPrompt != "" {
		b.WriteString("\n## Additional instructions from the user\n")
		b.WriteString(uc.Preferences.SystemPrompt)
		b.WriteString("\n")
	}

	if len(history) > 0 {
		b.WriteString("\n## Conversation so far\n")
		for _, turn := range history {
			fmt.Fprintf(&b, "%s: %s\n", turn.Role, turn.Content)
		}
	}

	b.WriteString("\n## Request\n")
	b.WriteString(message)
	b.WriteString("\n")

	return b.String()
}
