// Package hume provides the emotion-analysis API client.
package hume

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// EmotionScore is one named emotion with its score on a 0-1 scale.
type EmotionScore struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Client for the Hume emotion-analysis endpoint
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a new emotion-analysis client
func NewClient(apiKey string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: "https://api.hume.ai/v0/language",
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
		log:     log.With().Str("client", "hume").Logger(),
	}
}

// AnalyzeEmotions submits text for emotion scoring. Callers are expected to
// degrade to a local heuristic on any error.
func (c *Client) AnalyzeEmotions(ctx context.Context, text string) ([]EmotionScore, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("emotion API key not configured")
	}

	data, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Hume-Api-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("emotion API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("emotion API returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Emotions []EmotionScore `json:"emotions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(result.Emotions) == 0 {
		return nil, fmt.Errorf("no emotions in response")
	}

	c.log.Debug().Int("emotions", len(result.Emotions)).Msg("Emotion analysis completed")
	return result.Emotions, nil
}

// SetBaseURL overrides the endpoint, used in tests.
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}
