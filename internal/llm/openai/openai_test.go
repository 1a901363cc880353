package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, DefaultModel, body.Model)
		require.Len(t, body.Messages, 2)
		assert.Equal(t, "why did it move", body.Messages[1].Content)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-4o-mini",` +
			`"choices":[{"index":0,"message":{"role":"assistant","content":"  Results beat estimates.  "},"finish_reason":"stop"}],` +
			`"usage":{"prompt_tokens":1,"completion_tokens":1,"total_tokens":2}}`))
	}))
	defer srv.Close()

	g := New(Params{APIKey: "sk-test", BaseURL: srv.URL + "/v1/", MaxTokens: 128})
	assert.True(t, g.Configured())
	assert.Equal(t, "OpenAI", g.Name())

	text, err := g.Generate(context.Background(), "why did it move")
	require.NoError(t, err)
	assert.Equal(t, "Results beat estimates.", text)
}

func TestGenerateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`))
	}))
	defer srv.Close()

	_, err := New(Params{APIKey: "sk-bad", BaseURL: srv.URL + "/v1"}).Generate(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect API key")
}

func TestGenerateWithoutKey(t *testing.T) {
	g := New(Params{})
	assert.False(t, g.Configured())
	_, err := g.Generate(context.Background(), "x")
	assert.Error(t, err)
}
