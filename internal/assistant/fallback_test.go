package assistant

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingGenerator scripts per-attempt outcomes and records the order of
// calls it receives.
type recordingGenerator struct {
	calls   []Attempt
	results map[Attempt]error
	text    string
}

func (g *recordingGenerator) Generate(_ context.Context, model string, search bool, _ string) (string, error) {
	attempt := Attempt{Model: model, Search: search}
	g.calls = append(g.calls, attempt)
	if err, ok := g.results[attempt]; ok && err != nil {
		return "", err
	}
	return g.text, nil
}

func TestGenerateFirstSuccessWins(t *testing.T) {
	attempts := BuildAttempts("gemini-2.5-pro", true)
	gen := &recordingGenerator{
		text: `{"message":"hi","suggestedEvents":[]}`,
		results: map[Attempt]error{
			{Model: "gemini-2.5-pro", Search: true}:  errors.New("overloaded"),
			{Model: "gemini-2.5-pro", Search: false}: errors.New("overloaded"),
		},
	}

	text, err := Generate(context.Background(), gen, attempts, "prompt")
	require.NoError(t, err)
	assert.Equal(t, gen.text, text)

	// Stops at the first success: two failures, then gemini-1.5-pro with search.
	assert.Equal(t, []Attempt{
		{Model: "gemini-2.5-pro", Search: true},
		{Model: "gemini-2.5-pro", Search: false},
		{Model: "gemini-1.5-pro", Search: true},
	}, gen.calls)
}

func TestGenerateExhaustsAllAttemptsThenFails(t *testing.T) {
	attempts := BuildAttempts("gemini-2.5-pro", true)

	results := make(map[Attempt]error)
	for i, a := range attempts {
		results[a] = fmt.Errorf("failure %d", i)
	}
	gen := &recordingGenerator{results: results}

	_, err := Generate(context.Background(), gen, attempts, "prompt")
	require.Error(t, err)

	// Exactly the expanded attempt list, in order, then the last error.
	assert.Equal(t, attempts, gen.calls)
	assert.EqualError(t, err, fmt.Sprintf("failure %d", len(attempts)-1))
}

func TestGenerateNoAttempts(t *testing.T) {
	gen := &recordingGenerator{}
	_, err := Generate(context.Background(), gen, nil, "prompt")
	require.Error(t, err)
	assert.Empty(t, gen.calls)
}
