package assistant

import "strings"

// DefaultModel is the terminal fallback: the most available tier.
const DefaultModel = "gemini-1.5-flash-latest"

// proFallbackModel is inserted between a pro-tier preference and the terminal
// fallback so a premium request degrades in two steps instead of one.
const proFallbackModel = "gemini-1.5-pro"

var allowedModels = map[string]bool{
	"gemini-2.5-pro":          true,
	"gemini-2.5-flash":        true,
	"gemini-1.5-pro":          true,
	"gemini-1.5-flash":        true,
	"gemini-1.5-flash-latest": true,
}

// NormalizeModel maps an arbitrary stored model id onto the allow-list,
// falling back to the default for anything unknown or empty.
func NormalizeModel(model string) string {
	if allowedModels[model] {
		return model
	}
	return DefaultModel
}

// Attempt is one (model, tool-configuration) generation attempt.
type Attempt struct {
	Model  string
	Search bool
}

// BuildAttempts expands a preferred model into the ordered, de-duplicated
// attempt list: preferred first, then gemini-1.5-pro when the preference is a
// pro tier that isn't already the terminal fallback, then the terminal
// fallback. With search on, each model is tried with search tools first and
// then without; with search off, each model gets a single plain attempt.
func BuildAttempts(preferred string, search bool) []Attempt {
	preferred = NormalizeModel(preferred)

	candidates := []string{preferred}
	if strings.Contains(preferred, "pro") && preferred != DefaultModel {
		candidates = append(candidates, proFallbackModel)
	}
	candidates = append(candidates, DefaultModel)

	seen := make(map[string]bool)
	var attempts []Attempt
	for _, model := range candidates {
		if seen[model] {
			continue
		}
		seen[model] = true

		if search {
			attempts = append(attempts, Attempt{Model: model, Search: true})
		}
		attempts = append(attempts, Attempt{Model: model, Search: false})
	}

	return attempts
}
