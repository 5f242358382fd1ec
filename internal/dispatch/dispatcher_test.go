package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bhindi/internal/llm/client"
	"bhindi/internal/models"
)

type recordingCompleter struct {
	req   client.CompletionRequest
	reply string
	err   error
}

func (r *recordingCompleter) Complete(ctx context.Context, req client.CompletionRequest) (string, error) {
	r.req = req
	return r.reply, r.err
}

func noDelay() time.Duration { return 0 }

func newRemote(t *testing.T, c client.Completer) *Dispatcher {
	t.Helper()
	reg := client.NewRegistry()
	reg.Register(client.ProviderOpenAI, c)
	return New(Config{APIKey: "sk-test", Delay: noDelay}, reg, nil)
}

func TestSendMessage_LocalKeywordRouting(t *testing.T) {
	d := New(Config{Delay: noDelay}, client.NewRegistry(), nil)
	ctx := context.Background()

	cases := []struct {
		in   string
		want string
	}{
		{"Please remind me tomorrow", "I'd be happy to help you schedule that!"},
		{"SCHEDULE a call", "I'd be happy to help you schedule that!"},
		{"find me a recipe", "I can help you search for information!"},
		{"can I upload this?", "I can help you work with files."},
		{"What can you do?", "I'm Bhindi AI, your intelligent assistant! Here's what I can help you with:"},
		{"write a program", "I'd love to help you with coding!"},
		{"schedule a file search", "I'd be happy to help you schedule that!"},
	}
	for _, tc := range cases {
		got, err := d.SendMessage(ctx, tc.in, nil)
		require.NoError(t, err)
		assert.Contains(t, got, tc.want, tc.in)
	}
}

func TestSendMessage_LocalDefaultEchoes(t *testing.T) {
	d := New(Config{Delay: noDelay}, client.NewRegistry(), nil)

	got, err := d.SendMessage(context.Background(), "hello", nil)
	require.NoError(t, err)
	assert.Contains(t, got, `"hello"`)
	assert.True(t, strings.HasPrefix(got, "Hello! I'm Bhindi AI"))
}

func TestSendMessage_LocalHonorsCancellation(t *testing.T) {
	d := New(Config{Delay: func() time.Duration { return time.Hour }}, client.NewRegistry(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.SendMessage(ctx, "hello", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulatedLatencyBounds(t *testing.T) {
	for i := 0; i < 200; i++ {
		d := simulatedLatency()
		assert.GreaterOrEqual(t, d, time.Second)
		assert.Less(t, d, 3*time.Second)
	}
}

func TestSendMessage_RemoteRequestShape(t *testing.T) {
	rc := &recordingCompleter{reply: "remote answer"}
	d := newRemote(t, rc)

	var history []models.Message
	for i := 0; i < 12; i++ {
		role := models.RoleUser
		if i%2 == 1 {
			role = models.RoleAssistant
		}
		history = append(history, models.Message{Role: role, Content: fmt.Sprintf("h%d", i)})
	}

	got, err := d.SendMessage(context.Background(), "now", history)
	require.NoError(t, err)
	assert.Equal(t, "remote answer", got)

	req := rc.req
	assert.Equal(t, "sk-test", req.APIKey)
	assert.Equal(t, "gpt-3.5-turbo", req.Model)
	assert.Equal(t, 1000, req.MaxTokens)
	assert.InDelta(t, 0.7, req.Temperature, 0.0001)
	require.Len(t, req.Messages, 12)
	assert.Equal(t, client.RoleSystem, req.Messages[0].Role)
	assert.Contains(t, req.Messages[0].Content, "You are Bhindi AI")
	assert.Equal(t, "h2", req.Messages[1].Content)
	assert.Equal(t, "h11", req.Messages[10].Content)
	assert.Equal(t, client.Message{Role: client.RoleUser, Content: "now"}, req.Messages[11])
}

func TestSendMessage_ZeroTemperature(t *testing.T) {
	var bodies []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		bodies = append(bodies, body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer srv.Close()

	reg := client.NewRegistry()
	reg.Register(client.ProviderOpenAI, client.NewOpenAICompleter(srv.URL, srv.Client()))
	zero := float32(0)
	configured := New(Config{APIKey: "sk", Temperature: &zero, Delay: noDelay}, reg, nil)
	sampled := New(Config{APIKey: "sk", Delay: noDelay}, reg, nil)
	sampled.SetSampling(1000, 0)

	for _, d := range []*Dispatcher{configured, sampled} {
		_, err := d.SendMessage(context.Background(), "hi", nil)
		require.NoError(t, err)
	}
	require.Len(t, bodies, 2)
	for _, body := range bodies {
		temp, present := body["temperature"]
		require.True(t, present)
		assert.InDelta(t, 0, temp, 0.0001)
	}
}

func TestNew_DefaultTemperature(t *testing.T) {
	rc := &recordingCompleter{reply: "x"}
	d := newRemote(t, rc)
	_, err := d.SendMessage(context.Background(), "hi", nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.7, rc.req.Temperature, 0.0001)
}

func TestSendMessage_RemoteEmptyReplyFallback(t *testing.T) {
	d := newRemote(t, &recordingCompleter{})

	got, err := d.SendMessage(context.Background(), "hi", nil)
	require.NoError(t, err)
	assert.Equal(t, EmptyReply, got)
}

func TestSendMessage_RemoteFailureIsGeneric(t *testing.T) {
	d := newRemote(t, &recordingCompleter{err: errors.New("dial tcp: connection refused")})

	_, err := d.SendMessage(context.Background(), "hi", nil)
	require.Error(t, err)
	assert.Equal(t, FailureMessage, err.Error())
	assert.ErrorIs(t, err, ErrDispatch)
}

func TestSendMessage_Remote401ThroughHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided: sk-bad","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	reg := client.NewRegistry()
	reg.Register(client.ProviderOpenAI, client.NewOpenAICompleter(srv.URL, srv.Client()))
	d := New(Config{APIKey: "sk-bad", Delay: noDelay}, reg, nil)

	_, err := d.SendMessage(context.Background(), "hi", nil)
	require.Error(t, err)
	assert.Equal(t, "Failed to get AI response. Please check your API key and try again.", err.Error())
	assert.NotContains(t, err.Error(), "Incorrect API key")

	var de *DispatchError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, http.StatusUnauthorized, de.StatusCode)
}

func TestSendMessage_UnknownProviderFails(t *testing.T) {
	d := New(Config{APIKey: "k", Provider: "nope", Delay: noDelay}, client.NewRegistry(), nil)

	_, err := d.SendMessage(context.Background(), "hi", nil)
	assert.ErrorIs(t, err, ErrDispatch)
}

func TestSetCredential_SwitchesPath(t *testing.T) {
	rc := &recordingCompleter{reply: "remote"}
	reg := client.NewRegistry()
	reg.Register(client.ProviderOpenAI, rc)
	d := New(Config{Delay: noDelay}, reg, nil)
	assert.False(t, d.HasCredential())

	d.SetCredential("  sk-new  ")
	assert.True(t, d.HasCredential())
	got, err := d.SendMessage(context.Background(), "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, "remote", got)
	assert.Equal(t, "sk-new", rc.req.APIKey)

	d.SetCredential("")
	got, err = d.SendMessage(context.Background(), "hello", nil)
	require.NoError(t, err)
	assert.Contains(t, got, `"hello"`)
}

func TestSearchWeb(t *testing.T) {
	d := New(Config{}, client.NewRegistry(), nil)

	got, err := d.SearchWeb(context.Background(), "go generics")
	require.NoError(t, err)
	assert.Contains(t, got, `I would search for "go generics"`)
}

func TestAnalyzeFile_Variants(t *testing.T) {
	d := New(Config{}, client.NewRegistry(), nil)
	ctx := context.Background()

	cases := map[string]string{
		"image/png":          "I would analyze this image (f, 10 bytes)",
		"application/pdf":    "I would process this document (f, 10 bytes)",
		"application/msword": "I would analyze this file (f, 10 bytes)",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": "I would process this document",
		"audio/mpeg": "I would process this audio file",
		"text/plain": "I would analyze this file (f, 10 bytes) based on its type",
	}
	for typ, want := range cases {
		got, err := d.AnalyzeFile(ctx, FileInfo{Name: "f", Type: typ, Size: 10})
		require.NoError(t, err)
		assert.Contains(t, got, want, typ)
	}
}
