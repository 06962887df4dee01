// Package gemini provides the text-generation API client. Every request is
// routed through the shared rate-limited queue to stay under the free-tier
// quota.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hypewire/hypewire/internal/queue"
)

// DefaultModel is the generation model used for all text requests.
const DefaultModel = "gemini-2.0-flash"

// Client for the Gemini generateContent API
type Client struct {
	baseURL string
	model   string
	apiKey  string
	client  *http.Client
	queue   *queue.RequestQueue
	log     zerolog.Logger
}

// NewClient creates a new generation API client. The queue is shared with
// every caller that reaches the generation API.
func NewClient(apiKey string, q *queue.RequestQueue, log zerolog.Logger) *Client {
	return &Client{
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		model:   DefaultModel,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 60 * time.Second},
		queue:   q,
		log:     log.With().Str("client", "gemini").Logger(),
	}
}

// GenerateOptions tune a single generation request
type GenerateOptions struct {
	Temperature     float64
	MaxOutputTokens int
	JSONResponse    bool // ask the model for a raw application/json body
}

// Generate sends a prompt through the rate-limited queue and returns the
// model's text response.
func (c *Client) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	return queue.SubmitTyped(ctx, c.queue, func(ctx context.Context) (string, error) {
		return c.generate(ctx, prompt, opts)
	})
}

// QueueDepth reports the number of generation requests waiting to dispatch.
func (c *Client) QueueDepth() int {
	return c.queue.Depth()
}

func (c *Client) generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	generationConfig := map[string]interface{}{
		"temperature": opts.Temperature,
	}
	if opts.MaxOutputTokens > 0 {
		generationConfig["maxOutputTokens"] = opts.MaxOutputTokens
	}
	if opts.JSONResponse {
		generationConfig["responseMimeType"] = "application/json"
	}

	body := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]string{{"text": prompt}}},
		},
		"generationConfig": generationConfig,
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("generation API returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates in generation response")
	}

	text := result.Candidates[0].Content.Parts[0].Text
	c.log.Debug().
		Dur("duration_ms", time.Since(start)).
		Int("chars", len(text)).
		Msg("Generation request completed")

	return text, nil
}

// StripCodeFences removes a surrounding markdown code fence from model
// output. Models occasionally wrap JSON in ```json blocks even when asked
// for a raw body.
func StripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	// Without a closing fence, keep everything after the opening line.
	lines := strings.Split(text, "\n")
	endIdx := len(lines)
	for i := len(lines) - 1; i > 0; i-- {
		if strings.TrimSpace(lines[i]) == "```" {
			endIdx = i
			break
		}
	}
	return strings.TrimSpace(strings.Join(lines[1:endIdx], "\n"))
}
