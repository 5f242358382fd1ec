package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"bhindi/internal/llm/client"
	"bhindi/internal/models"
)

const (
	historyWindow      = 10
	defaultMaxTokens   = 1000
	defaultTemperature = 0.7
	DefaultModel       = "gpt-3.5-turbo"
)

type Config struct {
	Provider    string
	Model       string
	APIKey      string
	MaxTokens int
	// Temperature is used as given, including 0; nil selects 0.7.
	Temperature *float32
	// Delay overrides the simulated latency of local replies.
	Delay func() time.Duration
}

// Dispatcher answers a user message either through a remote completion
// provider (when a credential is configured) or with a canned local reply.
type Dispatcher struct {
	mu       sync.RWMutex
	apiKey   string
	provider string
	model    string

	maxTokens   int
	temperature float32

	registry *client.Registry
	logger   *slog.Logger
	delay    func() time.Duration
}

func New(cfg Config, registry *client.Registry, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Provider == "" {
		cfg.Provider = client.ProviderOpenAI
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	temperature := float32(defaultTemperature)
	if cfg.Temperature != nil && *cfg.Temperature >= 0 {
		temperature = *cfg.Temperature
	}
	if cfg.Delay == nil {
		cfg.Delay = simulatedLatency
	}
	return &Dispatcher{
		apiKey:      strings.TrimSpace(cfg.APIKey),
		provider:    cfg.Provider,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: temperature,
		registry:    registry,
		logger:      logger,
		delay:       cfg.Delay,
	}
}

// simulatedLatency is uniform in [1s, 3s).
func simulatedLatency() time.Duration {
	return time.Second + time.Duration(rand.Int64N(int64(2*time.Second)))
}

// SetCredential replaces the credential; an empty key switches to local mode.
func (d *Dispatcher) SetCredential(key string) {
	d.mu.Lock()
	d.apiKey = strings.TrimSpace(key)
	d.mu.Unlock()
}

func (d *Dispatcher) HasCredential() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.apiKey != ""
}

// SetModel switches provider and model for subsequent remote calls.
func (d *Dispatcher) SetModel(provider, model string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if provider != "" {
		d.provider = provider
	}
	if model != "" {
		d.model = model
	}
}

func (d *Dispatcher) Model() (provider, model string) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.provider, d.model
}

// SetSampling adjusts max tokens and temperature for remote calls.
func (d *Dispatcher) SetSampling(maxTokens int, temperature float32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if maxTokens > 0 {
		d.maxTokens = maxTokens
	}
	if temperature >= 0 {
		d.temperature = temperature
	}
}

func (d *Dispatcher) SendMessage(ctx context.Context, text string, history []models.Message) (string, error) {
	d.mu.RLock()
	req := client.CompletionRequest{
		APIKey:      d.apiKey,
		Model:       d.model,
		MaxTokens:   d.maxTokens,
		Temperature: d.temperature,
	}
	provider := d.provider
	d.mu.RUnlock()

	if req.APIKey == "" {
		return d.local(ctx, text)
	}
	req.Messages = buildPrompt(text, history)
	return d.remote(ctx, provider, req)
}

func buildPrompt(text string, history []models.Message) []client.Message {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	msgs := make([]client.Message, 0, len(history)+2)
	msgs = append(msgs, client.Message{Role: client.RoleSystem, Content: systemPrompt})
	for _, m := range history {
		msgs = append(msgs, client.Message{Role: string(m.Role), Content: m.Content})
	}
	return append(msgs, client.Message{Role: client.RoleUser, Content: text})
}

func (d *Dispatcher) remote(ctx context.Context, provider string, req client.CompletionRequest) (string, error) {
	completer, err := d.registry.Get(provider)
	if err != nil {
		return "", d.fail(provider, &DispatchError{cause: err})
	}
	reply, err := completer.Complete(ctx, req)
	if err != nil {
		return "", d.fail(provider, &DispatchError{StatusCode: client.StatusCode(err), cause: err})
	}
	if reply == "" {
		return EmptyReply, nil
	}
	return reply, nil
}

func (d *Dispatcher) fail(provider string, err *DispatchError) error {
	d.logger.Error("chat completion failed", "provider", provider, "status", err.StatusCode, "err", err.Detail())
	return err
}

func (d *Dispatcher) local(ctx context.Context, text string) (string, error) {
	t := time.NewTimer(d.delay())
	defer t.Stop()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-t.C:
	}
	return CannedReply(text), nil
}

// SearchWeb describes what a real search would return.
func (d *Dispatcher) SearchWeb(ctx context.Context, query string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf(`I would search for "%s" using web search APIs and provide you with relevant results, summaries, and sources. This feature requires API integration with search services like Google, Bing, or specialized search APIs.`, query), nil
}

type FileInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// AnalyzeFile describes how a file of the given type would be processed.
func (d *Dispatcher) AnalyzeFile(ctx context.Context, f FileInfo) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch {
	case strings.HasPrefix(f.Type, "image/"):
		return fmt.Sprintf(`I would analyze this image (%s, %d bytes) and provide:
- Description of what's in the image
- Text extraction (OCR) if applicable
- Image metadata and properties
- Suggestions for editing or optimization`, f.Name, f.Size), nil
	case strings.Contains(f.Type, "pdf") || strings.Contains(f.Type, "document"):
		return fmt.Sprintf(`I would process this document (%s, %d bytes) and provide:
- Text extraction and content summary
- Key points and insights
- Document structure analysis
- Searchable content indexing`, f.Name, f.Size), nil
	case strings.HasPrefix(f.Type, "audio/"):
		return fmt.Sprintf(`I would process this audio file (%s, %d bytes) and provide:
- Speech-to-text transcription
- Audio content analysis
- Speaker identification
- Key moments and timestamps`, f.Name, f.Size), nil
	default:
		return fmt.Sprintf("I would analyze this file (%s, %d bytes) based on its type and content, providing relevant insights and processing options.", f.Name, f.Size), nil
	}
}
