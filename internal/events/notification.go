package events

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventInfo    EventType = "info"
	EventWarn    EventType = "warn"
	EventSuccess EventType = "success"
	EventError   EventType = "error"
)

const (
	// Notify carries toast-style notifications for the UI.
	Notify = "event:notify"
	// ChatUpdated fires after an exchange changes the chat state.
	ChatUpdated = "event:chat:updated"
)

type Notification struct {
	ID        string            `json:"id"`
	Type      EventType         `json:"type"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	SessionID string            `json:"sessionId,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

type contextKey string

const sessionContextKey contextKey = "bhindi/events/session"

// WithSession scopes notifications emitted with ctx to a chat session.
func WithSession(ctx context.Context, sessionID string) context.Context {
	if strings.TrimSpace(sessionID) == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionContextKey, sessionID)
}

func SessionFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(sessionContextKey).(string); ok {
		return v
	}
	return ""
}

func newNotification(eventType EventType, message string) Notification {
	return Notification{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now(),
	}
}

func NewInfo(message string) Notification    { return newNotification(EventInfo, message) }
func NewWarn(message string) Notification    { return newNotification(EventWarn, message) }
func NewError(message string) Notification   { return newNotification(EventError, message) }
func NewSuccess(message string) Notification { return newNotification(EventSuccess, message) }
