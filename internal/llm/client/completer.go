package client

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Message is one turn of a completion prompt.
type Message struct {
	Role    string
	Content string
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type CompletionRequest struct {
	APIKey      string
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float32
}

// Completer produces a single, non-streamed completion. An empty string with
// a nil error means the provider answered without content.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// StatusError is an upstream failure with an HTTP status code.
type StatusError struct {
	StatusCode int
	Err        error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d: %v", e.StatusCode, e.Err)
}

func (e *StatusError) Unwrap() error { return e.Err }

// StatusCode extracts the HTTP status from err, or 0 when there is none.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

var ErrUnknownProvider = errors.New("unknown completion provider")

// Registry maps provider names to completers.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Completer
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Completer)}
}

func (r *Registry) Register(name string, c Completer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = c
}

func (r *Registry) Get(name string) (Completer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return c, nil
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Endpoints configures where the built-in providers send requests.
type Endpoints struct {
	OpenAIBaseURL     string
	OpenRouterBaseURL string
	AnthropicBaseURL  string
}

const (
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderAnthropic  = "anthropic"
	ProviderGemini     = "gemini"
)

// DefaultRegistry registers every built-in provider.
func DefaultRegistry(ep Endpoints) *Registry {
	r := NewRegistry()
	r.Register(ProviderOpenAI, NewOpenAICompleter(ep.OpenAIBaseURL, nil))
	r.Register(ProviderOpenRouter, NewEinoCompleter(ProviderOpenRouter, ep.OpenRouterBaseURL))
	r.Register(ProviderAnthropic, NewEinoCompleter(ProviderAnthropic, ep.AnthropicBaseURL))
	r.Register(ProviderGemini, NewEinoCompleter(ProviderGemini, ""))
	return r
}
