// Package upstream talks to the chat-completions endpoint that generates
// replies. The endpoint is opaque: the client sends a prompt plus history
// and hands the raw streaming body back for verbatim relay.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/loopkit/loopchat/internal/config"
	"github.com/loopkit/loopchat/internal/domain"
)

// Client calls the upstream model endpoint
type Client struct {
	cfg        config.UpstreamConfig
	httpClient *http.Client
}

// NewClient creates a new upstream client
func NewClient(cfg config.UpstreamConfig) *Client {
	return &Client{
		cfg: cfg,
		// No overall timeout: the response body is a long-lived stream.
		// Cancellation comes from the request context.
		httpClient: &http.Client{
			Transport: &http.Transport{
				ResponseHeaderTimeout: 30 * time.Second,
			},
		},
	}
}

type chatCompletionRequest struct {
	Model    string               `json:"model"`
	Messages []domain.ChatMessage `json:"messages"`
	Stream   bool                 `json:"stream"`
}

// StreamChat sends the system instruction plus the message history to the
// model endpoint and returns the raw SSE body for unbuffered relay. The
// caller owns the returned body and must close it. Status mapping: 429 maps
// to ErrUpstreamRateLimited, 402 to ErrQuotaExhausted, any other non-2xx to
// ErrUpstream. No retries are attempted.
func (c *Client) StreamChat(ctx context.Context, system string, history []domain.ChatMessage) (io.ReadCloser, error) {
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("upstream api key not configured: %w", domain.ErrConfigMissing)
	}

	messages := make([]domain.ChatMessage, 0, len(history)+1)
	messages = append(messages, domain.ChatMessage{Role: domain.RoleSystem, Content: system})
	messages = append(messages, history...)

	body, err := json.Marshal(chatCompletionRequest{
		Model:    c.cfg.Model,
		Messages: messages,
		Stream:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode upstream request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w: %v", domain.ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusTooManyRequests:
			return nil, fmt.Errorf("upstream returned 429: %w", domain.ErrUpstreamRateLimited)
		case http.StatusPaymentRequired:
			return nil, fmt.Errorf("upstream returned 402: %w", domain.ErrQuotaExhausted)
		default:
			return nil, fmt.Errorf("upstream returned %d: %s: %w", resp.StatusCode, bytes.TrimSpace(detail), domain.ErrUpstream)
		}
	}

	return resp.Body, nil
}
