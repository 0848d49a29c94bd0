package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// ErrQuotaExhausted marks quota and rate-limit failures so the chat boundary
// can suggest switching models instead of dumping a raw provider error.
var ErrQuotaExhausted = errors.New("model quota exhausted")

// GeminiClient calls the Gemini generateContent REST API.
type GeminiClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewGeminiClient creates a client for the Gemini API.
func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{
		apiKey:  apiKey,
		baseURL: geminiBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiTool struct {
	GoogleSearch struct{} `json:"google_search"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
	Tools    []geminiTool    `json:"tools,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate submits the prompt to one model, optionally with the google_search
// tool, and returns the concatenated text of the first candidate.
func (c *GeminiClient) Generate(ctx context.Context, model string, search bool, prompt string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
	}
	if search {
		reqBody.Tools = []geminiTool{{}}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("gemini API returned %d: %s", resp.StatusCode, string(body))
		if isQuotaError(resp.StatusCode, string(body)) {
			return "", fmt.Errorf("%w: %v", ErrQuotaExhausted, err)
		}
		return "", err
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if geminiResp.Error != nil {
		err := fmt.Errorf("gemini API error %d: %s", geminiResp.Error.Code, geminiResp.Error.Message)
		if isQuotaError(geminiResp.Error.Code, geminiResp.Error.Message) {
			return "", fmt.Errorf("%w: %v", ErrQuotaExhausted, err)
		}
		return "", err
	}

	if len(geminiResp.Candidates) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var text strings.Builder
	for _, part := range geminiResp.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("gemini returned an empty candidate")
	}

	return text.String(), nil
}

// isQuotaError recognizes quota and rate-limit failures by status code and
// the markers providers put in their error text.
func isQuotaError(code int, message string) bool {
	if code == http.StatusTooManyRequests {
		return true
	}
	lower := strings.ToLower(message)
	return strings.Contains(lower, "quota") || strings.Contains(lower, "rate limit")
}
