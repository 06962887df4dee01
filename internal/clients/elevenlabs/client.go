// Package elevenlabs provides the text-to-speech client. Synthesis is the
// only operation in the system allowed to fail visibly, so it carries the
// full retry policy: bounded per-attempt timeouts, linear backoff on
// transient network failures, and a one-time model fallback from the
// low-latency model to the more tolerant one on client errors.
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// ModelFlash is the low-latency synthesis model tried first.
	ModelFlash = "eleven_flash_v2_5"
	// ModelTurbo is the fallback model, slower but more tolerant of long or
	// unusual input.
	ModelTurbo = "eleven_turbo_v2_5"

	// Per-attempt timeout; a timed-out attempt counts as a network failure.
	attemptTimeout = 30 * time.Second

	// maxRetries bounds additional attempts after a classified network
	// failure; the initial attempt is not counted.
	maxRetries = 3

	// baseRetryDelay is multiplied by the retry number for linear backoff.
	baseRetryDelay = 1 * time.Second
)

// SynthesisResult is the outcome of a successful synthesis call.
type SynthesisResult struct {
	Audio       []byte
	ContentType string
	Model       string // model actually used, may differ from requested
	Voice       string
	Elapsed     time.Duration
}

// apiError is a non-2xx response from the synthesis API.
type apiError struct {
	Status int
	Body   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("synthesis API returned %d: %s", e.Status, e.Body)
}

// Client for the ElevenLabs text-to-speech API
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     zerolog.Logger

	// Injected for tests.
	sleep func(time.Duration)
}

// NewClient creates a new text-to-speech client
func NewClient(apiKey string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: "https://api.elevenlabs.io",
		apiKey:  apiKey,
		client:  &http.Client{},
		log:     log.With().Str("client", "elevenlabs").Logger(),
		sleep:   time.Sleep,
	}
}

// Synthesize converts a script to audio. Residual structural formatting
// characters are stripped before transmission since upstream model output may
// carry leftover JSON artifacts.
func (c *Client) Synthesize(ctx context.Context, text, voiceID, modelID string) (*SynthesisResult, error) {
	text = CleanScript(text)
	if text == "" {
		return nil, fmt.Errorf("nothing to synthesize")
	}
	if modelID == "" {
		modelID = ModelFlash
	}

	start := time.Now()
	model := modelID
	fellBack := false
	retries := 0

	for {
		audio, contentType, err := c.attempt(ctx, text, voiceID, model)
		if err == nil {
			result := &SynthesisResult{
				Audio:       audio,
				ContentType: contentType,
				Model:       model,
				Voice:       voiceID,
				Elapsed:     time.Since(start),
			}
			c.log.Info().
				Str("model", model).
				Str("voice", voiceID).
				Int("bytes", len(audio)).
				Dur("duration_ms", result.Elapsed).
				Msg("Synthesis completed")
			return result, nil
		}

		var apiErr *apiError
		switch {
		case isNetworkError(err):
			if retries == maxRetries {
				return nil, fmt.Errorf("synthesis failed after %d retries: %w", maxRetries, err)
			}
			retries++
			delay := time.Duration(retries) * baseRetryDelay
			c.log.Warn().
				Err(err).
				Int("retry", retries).
				Dur("backoff", delay).
				Msg("Transient synthesis failure, retrying")
			c.sleep(delay)

		case errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 && model == ModelFlash && !fellBack:
			// The flash model rejects some inputs the turbo model accepts.
			// Fall back once, never further. Switching models does not
			// consume a retry.
			c.log.Warn().
				Int("status", apiErr.Status).
				Str("from", ModelFlash).
				Str("to", ModelTurbo).
				Msg("Flash model rejected request, falling back")
			model = ModelTurbo
			fellBack = true

		default:
			return nil, err
		}
	}
}

// attempt performs one bounded synthesis request.
func (c *Client) attempt(ctx context.Context, text, voiceID, model string) ([]byte, string, error) {
	ctx, cancel := context.WithTimeout(ctx, attemptTimeout)
	defer cancel()

	body := map[string]interface{}{
		"text":     text,
		"model_id": model,
		"voice_settings": map[string]float64{
			"stability":        0.5,
			"similarity_boost": 0.75,
		},
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s?output_format=mp3_44100_128", c.baseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, "", &apiError{Status: resp.StatusCode, Body: string(respBody)}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	if len(audio) == 0 {
		return nil, "", fmt.Errorf("empty audio response")
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	return audio, contentType, nil
}

// isNetworkError classifies transient transport failures worth retrying.
func isNetworkError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "aborted") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "network")
}

// CleanScript strips structural formatting characters that upstream model
// output sometimes leaks into narration scripts.
func CleanScript(text string) string {
	replacer := strings.NewReplacer(
		"{", "",
		"}", "",
		"[", "",
		"]", "",
		`\"`, "",
		"```", "",
	)
	return strings.TrimSpace(replacer.Replace(text))
}

// SetBaseURL overrides the endpoint, used in tests.
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}
