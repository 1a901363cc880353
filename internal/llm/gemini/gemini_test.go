package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-spike-analyzer/internal/api"
)

func newTestClient(url, key string) *Client {
	return New(Params{APIKey: key, BaseURL: url, MaxTokens: 256, Temperature: 0.2}).
		WithRetry(&api.RetryConfig{MaxAttempts: 2, InitialWait: time.Millisecond, MaxWait: time.Millisecond})
}

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-2.5-pro:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))

		var body generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Contents, 1)
		assert.Equal(t, "explain the move", body.Contents[0].Parts[0].Text)
		assert.Equal(t, 256, body.GenerationConfig.MaxOutputTokens)

		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Shares rose "},{"text":"on strong results. "}]},"finishReason":"STOP"}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "secret")
	assert.True(t, c.Configured())
	assert.Equal(t, "Gemini", c.Name())

	text, err := c.Generate(context.Background(), "explain the move")
	require.NoError(t, err)
	assert.Equal(t, "Shares rose on strong results.", text)
}

func TestGenerateBlockedPrompt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[],"promptFeedback":{"blockReason":"SAFETY"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, "secret").Generate(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyResponse))
	assert.Contains(t, err.Error(), "SAFETY")
}

func TestGenerateHTTPError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, "bad").Generate(context.Background(), "x")
	var se *api.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusForbidden, se.StatusCode)
	assert.Equal(t, 1, calls, "client errors are not retried")
}

func TestGenerateWithoutKey(t *testing.T) {
	c := New(Params{})
	assert.False(t, c.Configured())
	_, err := c.Generate(context.Background(), "x")
	assert.Error(t, err)
}
