package upstream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/loopkit/loopchat/internal/config"
	"github.com/loopkit/loopchat/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	return NewClient(config.UpstreamConfig{BaseURL: url, APIKey: "test-key", Model: "test-model"})
}

func TestStreamChat_Success(t *testing.T) {
	var gotBody chatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte("data: {\"delta\":\"hi\"}\n\ndata: [DONE]\n\n"))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	stream, err := client.StreamChat(context.Background(), "be helpful", []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "hello"},
	})
	require.NoError(t, err)
	defer stream.Close()

	body, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, "data: {\"delta\":\"hi\"}\n\ndata: [DONE]\n\n", string(body))

	assert.True(t, gotBody.Stream)
	assert.Equal(t, "test-model", gotBody.Model)
	require.Len(t, gotBody.Messages, 2)
	assert.Equal(t, domain.RoleSystem, gotBody.Messages[0].Role)
	assert.Equal(t, "be helpful", gotBody.Messages[0].Content)
	assert.Equal(t, "hello", gotBody.Messages[1].Content)
}

func TestStreamChat_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"rate limited", http.StatusTooManyRequests, domain.ErrUpstreamRateLimited},
		{"quota exhausted", http.StatusPaymentRequired, domain.ErrQuotaExhausted},
		{"server error", http.StatusInternalServerError, domain.ErrUpstream},
		{"bad gateway", http.StatusBadGateway, domain.ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "upstream says no", tt.status)
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).StreamChat(context.Background(), "sys", nil)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestStreamChat_MissingAPIKey(t *testing.T) {
	client := NewClient(config.UpstreamConfig{BaseURL: "http://localhost:0", Model: "m"})
	_, err := client.StreamChat(context.Background(), "sys", nil)
	assert.ErrorIs(t, err, domain.ErrConfigMissing)
}

func TestStreamChat_ContextCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	stream, err := newTestClient(srv.URL).StreamChat(ctx, "sys", nil)
	require.NoError(t, err)
	defer stream.Close()

	cancel()
	_, err = io.ReadAll(stream)
	assert.Error(t, err)
}
