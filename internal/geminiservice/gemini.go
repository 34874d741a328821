/*
Package geminiservice talks to the Google Gemini generateContent REST API.
It is the alternate text-generation provider behind llm.Generator.
*/
package geminiservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fitsuggest/internal/llm"
	"github.com/rs/zerolog"
)

// --- Gemini API Configuration ---
const (
	DefaultBaseURL   = "https://generativelanguage.googleapis.com/v1beta"
	requestTimeout   = 30 * time.Second
	plainTextMime    = "text/plain"
	maxErrorBodySize = 4 << 10
)

// Client calls Gemini once per Generate; failures are returned, never retried.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient builds a Gemini client. An empty baseURL selects the public API.
func NewClient(apiKey, baseURL string, timeout time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = requestTimeout
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

var _ llm.Generator = (*Client)(nil)

// Generate sends the prompt as a single user turn and returns the
// concatenated text parts of the first candidate.
func (c *Client) Generate(ctx context.Context, req llm.Request) (string, error) {
	log := zerolog.Ctx(ctx)

	payload := GeminiPayload{
		Contents: []GeminiContent{
			{Role: "user", Parts: []GeminiPart{{Text: req.Prompt}}},
		},
		GenerationConfig: &GenerationConfig{
			ResponseMimeType: plainTextMime,
			MaxOutputTokens:  req.MaxTokens,
			Temperature:      req.Temperature,
		},
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, req.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	// Header rather than query string so transport errors never carry the key.
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	log.Debug().Str("model", req.Model).Msg("Calling Gemini API")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return "", fmt.Errorf("gemini API returned non-200 status: %s, body: %s", resp.Status, string(body))
	}

	var geminiResp GeminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if geminiResp.PromptFeedback != nil && geminiResp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("gemini blocked prompt (%s): %w", geminiResp.PromptFeedback.BlockReason, llm.ErrEmptyCompletion)
	}

	if len(geminiResp.Candidates) == 0 {
		return "", fmt.Errorf("gemini: no candidates: %w", llm.ErrEmptyCompletion)
	}

	var sb strings.Builder
	for _, part := range geminiResp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("gemini: %w", llm.ErrEmptyCompletion)
	}

	log.Debug().Str("finish_reason", geminiResp.Candidates[0].FinishReason).Msg("Gemini API responded")
	return text, nil
}
