package client

import (
	"context"
	"errors"
	"math"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

const DefaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAICompleter talks to any OpenAI-compatible chat completions endpoint.
type OpenAICompleter struct {
	baseURL    string
	httpClient *http.Client
}

func NewOpenAICompleter(baseURL string, httpClient *http.Client) *OpenAICompleter {
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OpenAICompleter{baseURL: baseURL, httpClient: httpClient}
}

func (c *OpenAICompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	cfg := openai.DefaultConfig(req.APIKey)
	cfg.BaseURL = c.baseURL
	cfg.HTTPClient = c.httpClient
	cli := openai.NewClientWithConfig(cfg)

	msgs := make([]openai.ChatCompletionMessage, len(req.Messages))
	for i, m := range req.Messages {
		msgs[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	// Temperature is omitempty upstream; a literal 0 would fall back to the
	// API default of 1.
	temperature := req.Temperature
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	resp, err := cli.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    msgs,
		MaxTokens:   req.MaxTokens,
		Temperature: temperature,
		Stream:      false,
	})
	if err != nil {
		return "", withStatus(err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func withStatus(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &StatusError{StatusCode: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &StatusError{StatusCode: reqErr.HTTPStatusCode, Err: err}
	}
	return err
}
