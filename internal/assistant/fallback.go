package assistant

import (
	"context"
	"fmt"
	"log"
)

// Generator is the single model call a fallback chain is folded over.
type Generator interface {
	Generate(ctx context.Context, model string, search bool, prompt string) (string, error)
}

// Generate runs the attempts strictly in order and returns the first success.
// Each failure is logged and iteration continues; when every attempt fails,
// the last observed error is returned. Attempts are never run concurrently:
// each fallback is a contingency for the previous failure, and speculative
// calls would burn quota on a best-effort feature.
func Generate(ctx context.Context, g Generator, attempts []Attempt, prompt string) (string, error) {
	if len(attempts) == 0 {
		return "", fmt.Errorf("no generation attempts configured")
	}

	var lastErr error
	for _, attempt := range attempts {
		text, err := g.Generate(ctx, attempt.Model, attempt.Search, prompt)
		if err == nil {
			return text, nil
		}
		log.Printf("model attempt failed (model=%s search=%t): %v", attempt.Model, attempt.Search, err)
		lastErr = err
	}

	return "", lastErr
}
