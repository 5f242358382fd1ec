package models

import "time"

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// MessageType is a rendering hint; it is never checked against Content.
type MessageType string

const (
	MessageText  MessageType = "text"
	MessageFile  MessageType = "file"
	MessageImage MessageType = "image"
	MessageCode  MessageType = "code"
)

type MessageMetadata struct {
	FileName string `json:"fileName,omitempty"`
	FileSize int64  `json:"fileSize,omitempty"`
	FileType string `json:"fileType,omitempty"`
	Language string `json:"language,omitempty"`
}

type Message struct {
	ID        string           `json:"id"`
	Content   string           `json:"content"`
	Role      MessageRole      `json:"role"`
	Timestamp time.Time        `json:"timestamp"`
	Type      MessageType      `json:"type,omitempty"`
	Metadata  *MessageMetadata `json:"metadata,omitempty"`
}

// MessageInput is a message before the store assigns its id and timestamp.
type MessageInput struct {
	Content  string           `json:"content"`
	Role     MessageRole      `json:"role"`
	Type     MessageType      `json:"type,omitempty"`
	Metadata *MessageMetadata `json:"metadata,omitempty"`
}

type ChatSession struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy so callers never alias store-owned slices.
func (s ChatSession) Clone() ChatSession {
	out := s
	out.Messages = make([]Message, len(s.Messages))
	for i, m := range s.Messages {
		if m.Metadata != nil {
			md := *m.Metadata
			m.Metadata = &md
		}
		out.Messages[i] = m
	}
	return out
}

// ChatSnapshot is the persisted subset of the chat state.
type ChatSnapshot struct {
	Sessions         []ChatSession `json:"sessions"`
	CurrentSessionID *string       `json:"currentSessionId"`
}

// ChatState is what the UI reads; IsLoading and Error are never persisted.
type ChatState struct {
	Sessions         []ChatSession `json:"sessions"`
	CurrentSessionID *string       `json:"currentSessionId"`
	IsLoading        bool          `json:"isLoading"`
	Error            string        `json:"error,omitempty"`
}
