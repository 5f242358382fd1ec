package client

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"
)

const DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// EinoCompleter routes a completion through an eino chat model. A model is
// built per call because the credential can change at runtime.
type EinoCompleter struct {
	provider string
	baseURL  string
	build    func(ctx context.Context, req CompletionRequest) (model.BaseChatModel, error)
}

func NewEinoCompleter(provider, baseURL string) *EinoCompleter {
	c := &EinoCompleter{provider: provider, baseURL: baseURL}
	c.build = c.newChatModel
	return c
}

func (c *EinoCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	cm, err := c.build(ctx, req)
	if err != nil {
		return "", fmt.Errorf("init %s model: %w", c.provider, err)
	}
	out, err := cm.Generate(ctx, toSchema(req.Messages))
	if err != nil {
		return "", fmt.Errorf("%s generate: %w", c.provider, err)
	}
	if out == nil {
		return "", nil
	}
	return out.Content, nil
}

func (c *EinoCompleter) newChatModel(ctx context.Context, req CompletionRequest) (model.BaseChatModel, error) {
	maxTokens := req.MaxTokens
	temperature := req.Temperature

	switch c.provider {
	case ProviderOpenRouter:
		baseURL := c.baseURL
		if baseURL == "" {
			baseURL = DefaultOpenRouterBaseURL
		}
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:      req.APIKey,
			BaseURL:     baseURL,
			Model:       req.Model,
			MaxTokens:   &maxTokens,
			Temperature: &temperature,
		})
	case ProviderAnthropic:
		cfg := &claude.Config{
			APIKey:      req.APIKey,
			Model:       req.Model,
			MaxTokens:   maxTokens,
			Temperature: &temperature,
		}
		if c.baseURL != "" {
			baseURL := c.baseURL
			cfg.BaseURL = &baseURL
		}
		return claude.NewChatModel(ctx, cfg)
	case ProviderGemini:
		genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  req.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, err
		}
		return gemini.NewChatModel(ctx, &gemini.Config{
			Client:      genaiClient,
			Model:       req.Model,
			MaxTokens:   &maxTokens,
			Temperature: &temperature,
		})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, c.provider)
	}
}

func toSchema(msgs []Message) []*schema.Message {
	out := make([]*schema.Message, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case RoleSystem:
			out = append(out, schema.SystemMessage(m.Content))
		case RoleAssistant:
			out = append(out, schema.AssistantMessage(m.Content, nil))
		default:
			out = append(out, schema.UserMessage(m.Content))
		}
	}
	return out
}
