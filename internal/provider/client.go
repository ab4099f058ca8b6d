package provider

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

	"github.com/hustlesynth/synth-backend/internal/metrics"
)

// maxErrorBodySize caps how much of an error response body is read for
// logging.
const maxErrorBodySize = 4096

// Config holds the provider connection and generation parameters.
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// Client performs a single authenticated completion call per invocation.
// It does not retry; callers may layer retries around it.
type Client struct {
	cfg    Config
	client *http.Client
	logger zerolog.Logger
}

// NewClient builds a client with an explicit per-call timeout so a hung
// provider cannot hold resources indefinitely.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Complete sends the message window to the provider and returns the
// assistant text. Failures are classified into ErrUnavailable and
// ErrMalformed; caller cancellation surfaces as the context's error
// rather than a provider failure.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	payload, err := json.Marshal(completionRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := c.cfg.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	start := time.Now()
	resp, err := c.client.Do(req)
	metrics.UpstreamLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("upstream request failed")
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("body", string(body)).
			Msg("upstream returned non-success status")
		return "", fmt.Errorf("%w: HTTP %d: %s", ErrUnavailable, resp.StatusCode, body)
	}

	var parsed completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		c.logger.Error().Err(err).Msg("upstream response is not valid JSON")
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	// Exactly one choice with non-empty content is the only shape we
	// accept.
	if len(parsed.Choices) != 1 {
		c.logger.Error().Int("choices", len(parsed.Choices)).Msg("unexpected choice count in upstream response")
		return "", fmt.Errorf("%w: got %d choices", ErrMalformed, len(parsed.Choices))
	}
	content := parsed.Choices[0].Message.Content
	if content == "" {
		c.logger.Error().Msg("upstream response has empty message content")
		return "", fmt.Errorf("%w: empty content", ErrMalformed)
	}

	return content, nil
}
