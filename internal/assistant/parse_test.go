package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChatReply(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantSource ParseSource
		wantMsg    string
		wantEvents int
		wantErr    bool
	}{
		{
			name:       "plain json",
			raw:        `{"message":"Here you go","suggestedEvents":[]}`,
			wantSource: ParseStrict,
			wantMsg:    "Here you go",
		},
		{
			name:       "fenced json with language tag",
			raw:        "```json\n{\"message\":\"Here you go\",\"suggestedEvents\":[]}\n```",
			wantSource: ParseStrict,
			wantMsg:    "Here you go",
		},
		{
			name:       "fenced json without language tag",
			raw:        "```\n{\"message\":\"ok\",\"suggestedEvents\":[]}\n```",
			wantSource: ParseStrict,
			wantMsg:    "ok",
		},
		{
			name:       "json embedded in prose is salvaged",
			raw:        `Sure! {"message":"ok","suggestedEvents":[]} Hope that helps.`,
			wantSource: ParseSalvaged,
			wantMsg:    "ok",
		},
		{
			name:       "nested objects inside the salvaged span",
			raw:        `Here: {"message":"ok","suggestedEvents":[{"name":"Jazz Night","venue":"Blue Room"}]} done`,
			wantSource: ParseSalvaged,
			wantMsg:    "ok",
			wantEvents: 1,
		},
		{
			name:       "braces inside strings do not break salvage",
			raw:        `note {"message":"use {curly} braces","suggestedEvents":[]} end`,
			wantSource: ParseSalvaged,
			wantMsg:    "use {curly} braces",
		},
		{
			name:    "no json at all",
			raw:     "I could not find anything.",
			wantErr: true,
		},
		{
			name:    "unbalanced json",
			raw:     `{"message":"truncated`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseChatReply(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSource, result.Source)
			assert.Equal(t, tt.wantMsg, result.Reply.Message)
			assert.Len(t, result.Reply.SuggestedEvents, tt.wantEvents)
			// suggestedEvents always comes back as a slice, never nil.
			assert.NotNil(t, result.Reply.SuggestedEvents)
		})
	}
}

func TestParseChatReplyMissingEventsDefaultsToEmpty(t *testing.T) {
	result, err := ParseChatReply(`{"message":"nothing nearby"}`)
	require.NoError(t, err)
	assert.Equal(t, "nothing nearby", result.Reply.Message)
	assert.NotNil(t, result.Reply.SuggestedEvents)
	assert.Empty(t, result.Reply.SuggestedEvents)
}

func TestSalvageMatchesStrictParse(t *testing.T) {
	// A strictly parseable payload recovered via the salvage path must yield
	// the identical value.
	payload := `{"message":"Here you go","suggestedEvents":[{"name":"Jazz Night","venue":"Blue Room","date":"2026-09-05"}]}`

	strict, err := ParseChatReply(payload)
	require.NoError(t, err)
	require.Equal(t, ParseStrict, strict.Source)

	salvaged, err := ParseChatReply("prefix " + payload + " suffix")
	require.NoError(t, err)
	require.Equal(t, ParseSalvaged, salvaged.Source)

	assert.Equal(t, strict.Reply, salvaged.Reply)
}
