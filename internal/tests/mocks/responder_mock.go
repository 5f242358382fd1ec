package mocks

import (
	"context"
	"sync"

	"bhindi/internal/dispatch"
	"bhindi/internal/models"
)

type ResponderMock struct {
	SendMessageFunc func(ctx context.Context, text string, history []models.Message) (string, error)
	SearchWebFunc   func(ctx context.Context, query string) (string, error)
	AnalyzeFileFunc func(ctx context.Context, f dispatch.FileInfo) (string, error)

	mu    sync.Mutex
	Calls []ResponderCall
}

type ResponderCall struct {
	Text    string
	History []models.Message
}

func (m *ResponderMock) SendMessage(ctx context.Context, text string, history []models.Message) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, ResponderCall{Text: text, History: history})
	m.mu.Unlock()
	if m.SendMessageFunc != nil {
		return m.SendMessageFunc(ctx, text, history)
	}
	return dispatch.CannedReply(text), nil
}

func (m *ResponderMock) SearchWeb(ctx context.Context, query string) (string, error) {
	if m.SearchWebFunc != nil {
		return m.SearchWebFunc(ctx, query)
	}
	return "results for " + query, nil
}

func (m *ResponderMock) AnalyzeFile(ctx context.Context, f dispatch.FileInfo) (string, error) {
	if m.AnalyzeFileFunc != nil {
		return m.AnalyzeFileFunc(ctx, f)
	}
	return "analysis of " + f.Name, nil
}
