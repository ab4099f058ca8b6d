package provider

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) Config {
	return Config{
		BaseURL:     baseURL,
		APIKey:      "test-key",
		Model:       "gpt-4o-mini",
		MaxTokens:   256,
		Temperature: 0.7,
		Timeout:     5 * time.Second,
	}
}

func messages() []Message {
	return []Message{
		{Role: "system", Content: "You are a helpful assistant"},
		{Role: "user", Content: "hi"},
	}
}

func TestCompleteSuccess(t *testing.T) {
	var gotReq completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello!"}}]}`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), zerolog.Nop())
	text, err := c.Complete(context.Background(), messages())
	require.NoError(t, err)
	assert.Equal(t, "hello!", text)

	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	assert.Equal(t, 256, gotReq.MaxTokens)
	assert.InDelta(t, 0.7, gotReq.Temperature, 1e-9)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
}

func TestCompleteNonSuccessStatusIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), zerolog.Nop())
	_, err := c.Complete(context.Background(), messages())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestCompleteTransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(testConfig(srv.URL), zerolog.Nop())
	_, err := c.Complete(context.Background(), messages())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestCompleteMalformedShapes(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"not json", `<html>gateway error</html>`},
		{"no choices", `{"choices":[]}`},
		{"two choices", `{"choices":[{"message":{"content":"a"}},{"message":{"content":"b"}}]}`},
		{"empty content", `{"choices":[{"message":{"role":"assistant","content":""}}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := NewClient(testConfig(srv.URL), zerolog.Nop())
			_, err := c.Complete(context.Background(), messages())
			require.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestCompleteCallerCancellationIsNotClassified(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server starts its background connection
		// watcher; otherwise the client disconnect is never observed and
		// r.Context() is never cancelled, deadlocking srv.Close().
		io.Copy(io.Discard, r.Body)
		close(started)
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := c.Complete(ctx, messages())
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrUnavailable)
}
