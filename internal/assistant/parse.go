package assistant

import (
	"encoding/json"
	"strings"
)

// ParseSource tags how a reply was recovered from the raw model text.
type ParseSource string

const (
	// ParseStrict means the cleaned text parsed as-is.
	ParseStrict ParseSource = "strict"
	// ParseSalvaged means the reply was recovered from a JSON object embedded
	// in surrounding prose.
	ParseSalvaged ParseSource = "salvaged"
)

// ParseResult is a parsed chat reply tagged with which path produced it, so
// callers can tell a trusted parse from a best-effort recovery.
type ParseResult struct {
	Source ParseSource
	Reply  ChatReply
}

// ParseChatReply normalizes raw model output into the fixed reply contract.
// It strips markdown code fences, attempts a strict parse, and on failure
// salvages the first balanced top-level JSON object from the text. If the
// salvage also fails, the original strict-parse error is returned; the chat
// boundary turns that into a degraded response.
func ParseChatReply(raw string) (ParseResult, error) {
	cleaned := stripCodeFences(raw)

	var reply ChatReply
	strictErr := json.Unmarshal([]byte(cleaned), &reply)
	if strictErr == nil {
		return ParseResult{Source: ParseStrict, Reply: normalizeReply(reply)}, nil
	}

	span := extractJSONObject(cleaned)
	if span != "" {
		if err := json.Unmarshal([]byte(span), &reply); err == nil {
			return ParseResult{Source: ParseSalvaged, Reply: normalizeReply(reply)}, nil
		}
	}

	return ParseResult{}, strictErr
}

func normalizeReply(reply ChatReply) ChatReply {
	if reply.SuggestedEvents == nil {
		reply.SuggestedEvents = []SuggestedEvent{}
	}
	return reply
}

// stripCodeFences removes a wrapping markdown code fence, with or without a
// language tag, plus surrounding whitespace.
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}

	return strings.TrimSpace(text)
}

// extractJSONObject returns the first balanced outermost {...} span in the
// text, or "" when none exists. Brace counting ignores braces inside JSON
// strings.
func extractJSONObject(text string) string {
	start := strings.Index(text, "{")
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]

		if escaped {
			escaped = false
			continue
		}

		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1]
				}
			}
		}
	}

	return ""
}
