package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAICompleter_SendsCompletionRequest(t *testing.T) {
	var body map[string]any
	var auth, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Hi back"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	c := NewOpenAICompleter(srv.URL, srv.Client())
	out, err := c.Complete(context.Background(), CompletionRequest{
		APIKey:      "sk-test",
		Model:       "gpt-3.5-turbo",
		Messages:    []Message{{Role: RoleSystem, Content: "sys"}, {Role: RoleUser, Content: "hi"}},
		MaxTokens:   1000,
		Temperature: 0.7,
	})
	require.NoError(t, err)
	assert.Equal(t, "Hi back", out)
	assert.Equal(t, "Bearer sk-test", auth)
	assert.Equal(t, "/chat/completions", path)
	assert.Equal(t, "gpt-3.5-turbo", body["model"])
	assert.EqualValues(t, 1000, body["max_tokens"])
	assert.InDelta(t, 0.7, body["temperature"], 0.0001)
	msgs, ok := body["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, msgs, 2)
}

func TestOpenAICompleter_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	out, err := NewOpenAICompleter(srv.URL, srv.Client()).Complete(context.Background(), CompletionRequest{APIKey: "k", Model: "m"})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestOpenAICompleter_StatusIsExtracted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`))
	}))
	defer srv.Close()

	_, err := NewOpenAICompleter(srv.URL, srv.Client()).Complete(context.Background(), CompletionRequest{APIKey: "bad", Model: "m"})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))
}

func TestStatusCode_PlainErrorIsZero(t *testing.T) {
	assert.Equal(t, 0, StatusCode(assert.AnError))
}

func TestOpenAICompleter_ZeroTemperatureStaysOnWire(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := NewOpenAICompleter(srv.URL, srv.Client()).Complete(context.Background(), CompletionRequest{APIKey: "k", Model: "m", Temperature: 0})
	require.NoError(t, err)
	temp, present := body["temperature"]
	require.True(t, present)
	assert.InDelta(t, 0, temp, 0.0001)
}
