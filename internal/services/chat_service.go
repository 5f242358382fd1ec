package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"bhindi/internal/chat"
	"bhindi/internal/dispatch"
	"bhindi/internal/events"
	"bhindi/internal/models"
)

// ErrorReply is appended to the conversation when a reply could not be produced.
const ErrorReply = "Sorry, I encountered an error. Please try again."

var (
	ErrEmptyMessage       = errors.New("message is empty")
	ErrExchangeInProgress = errors.New("a reply is already pending")
)

// Responder produces assistant replies.
type Responder interface {
	SendMessage(ctx context.Context, text string, history []models.Message) (string, error)
	SearchWeb(ctx context.Context, query string) (string, error)
	AnalyzeFile(ctx context.Context, f dispatch.FileInfo) (string, error)
}

// ExchangeResult describes one user turn and the reply it produced.
type ExchangeResult struct {
	SessionID   string          `json:"sessionId"`
	UserMessage models.Message  `json:"userMessage"`
	Reply       *models.Message `json:"reply,omitempty"`
	Error       string          `json:"error,omitempty"`
}

type ChatService interface {
	Startup(ctx context.Context) error
	SendMessage(text string) (*ExchangeResult, error)
	SendMessageContext(ctx context.Context, text string) (*ExchangeResult, error)
	UploadFiles(uploads []models.FileUpload) ([]models.Message, error)
	AnalyzeFile(f dispatch.FileInfo) (string, error)
	SearchWeb(query string) (string, error)

	State() models.ChatState
	GetCurrentSession() *models.ChatSession
	InitializeChat()
	CreateSession(title string) string
	DeleteSession(id string)
	SetCurrentSession(id string) error
	UpdateMessage(messageID, content string) bool
	DeleteMessage(messageID string) bool
	ClearCurrentSession() bool
}

type chatService struct {
	ctx       context.Context
	store     *chat.Store
	responder Responder
	logger    *slog.Logger
}

func NewChatService(store *chat.Store, responder Responder, logger *slog.Logger) ChatService {
	if logger == nil {
		logger = slog.Default()
	}
	return &chatService{store: store, responder: responder, logger: logger}
}

// Startup hydrates the store and makes sure a session is current.
func (s *chatService) Startup(ctx context.Context) error {
	s.ctx = ctx
	if err := s.store.Load(contextOrBackground(ctx)); err != nil {
		return err
	}
	s.store.InitializeChat()
	return nil
}

func (s *chatService) SendMessage(text string) (*ExchangeResult, error) {
	return s.SendMessageContext(contextOrBackground(s.ctx), text)
}

// SendMessageContext runs one exchange. The reply is always appended to the
// session the user message went to, even if the user switched sessions while
// waiting. Dispatch failures are recorded in the result, not returned; a
// cancelled ctx is returned as-is and leaves no reply or error behind.
func (s *chatService) SendMessageContext(ctx context.Context, text string) (*ExchangeResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if !s.store.TryStartLoading() {
		return nil, ErrExchangeInProgress
	}
	defer s.store.SetLoading(false)
	s.store.SetError("")

	sess := s.currentOrNew()
	sessionID := sess.ID
	history := sess.Messages

	userMsg, ok := s.store.AddMessageToSession(sessionID, models.MessageInput{
		Content: text,
		Role:    models.RoleUser,
		Type:    models.MessageText,
	})
	if !ok {
		return nil, fmt.Errorf("%w: %s", chat.ErrSessionNotFound, sessionID)
	}

	ctx = events.WithSession(ctx, sessionID)
	res := &ExchangeResult{SessionID: sessionID, UserMessage: userMsg}

	reply, err := s.responder.SendMessage(ctx, text, history)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		s.logger.Info("chat exchange abandoned", "session_id", sessionID, "err", err)
		return nil, err
	}
	if err != nil {
		s.logger.Error("chat exchange failed", "session_id", sessionID, "err", err)
		res.Error = err.Error()
		s.store.SetError(res.Error)
		events.Emit(ctx, events.Notify, events.NewError(res.Error))
		reply = ErrorReply
	}

	if msg, ok := s.store.AddMessageToSession(sessionID, models.MessageInput{
		Content: reply,
		Role:    models.RoleAssistant,
		Type:    models.MessageText,
	}); ok {
		res.Reply = &msg
	} else {
		s.logger.Warn("session removed before reply arrived", "session_id", sessionID)
	}

	events.Emit(ctx, events.ChatUpdated, events.NewInfo(sessionID))
	return res, nil
}

func (s *chatService) currentOrNew() models.ChatSession {
	if sess := s.store.GetCurrentSession(); sess != nil {
		return *sess
	}
	s.store.InitializeChat()
	if sess := s.store.GetCurrentSession(); sess != nil {
		return *sess
	}
	id := s.store.CreateSession("")
	return models.ChatSession{ID: id}
}

// UploadFiles posts one file message per upload into the current session.
func (s *chatService) UploadFiles(uploads []models.FileUpload) ([]models.Message, error) {
	if len(uploads) == 0 {
		return nil, errors.New("no files selected")
	}
	for _, up := range uploads {
		if err := validateUpload(up, MaxChatUploadSize); err != nil {
			return nil, err
		}
	}

	sessionID := s.currentOrNew().ID
	out := make([]models.Message, 0, len(uploads))
	for _, up := range uploads {
		msg, ok := s.store.AddMessageToSession(sessionID, models.MessageInput{
			Content: "Uploaded file: " + up.Name,
			Role:    models.RoleUser,
			Type:    models.MessageFile,
			Metadata: &models.MessageMetadata{
				FileName: up.Name,
				FileSize: up.Size,
				FileType: up.Type,
			},
		})
		if ok {
			out = append(out, msg)
		}
	}

	ctx := events.WithSession(contextOrBackground(s.ctx), sessionID)
	events.Emit(ctx, events.Notify, events.NewSuccess(fmt.Sprintf("%d file(s) uploaded successfully", len(out))))
	return out, nil
}

func (s *chatService) AnalyzeFile(f dispatch.FileInfo) (string, error) {
	return s.responder.AnalyzeFile(contextOrBackground(s.ctx), f)
}

func (s *chatService) SearchWeb(query string) (string, error) {
	return s.responder.SearchWeb(contextOrBackground(s.ctx), query)
}

func (s *chatService) State() models.ChatState                { return s.store.State() }
func (s *chatService) GetCurrentSession() *models.ChatSession { return s.store.GetCurrentSession() }
func (s *chatService) InitializeChat()                        { s.store.InitializeChat() }
func (s *chatService) CreateSession(title string) string      { return s.store.CreateSession(title) }
func (s *chatService) DeleteSession(id string)                { s.store.DeleteSession(id) }
func (s *chatService) SetCurrentSession(id string) error      { return s.store.SetCurrentSession(id) }
func (s *chatService) UpdateMessage(messageID, content string) bool {
	return s.store.UpdateMessage(messageID, content)
}
func (s *chatService) DeleteMessage(messageID string) bool { return s.store.DeleteMessage(messageID) }
func (s *chatService) ClearCurrentSession() bool           { return s.store.ClearCurrentSession() }
