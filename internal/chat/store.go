package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"

	"bhindi/internal/models"
)

const (
	DefaultTitle = "New Chat"
	titleLimit   = 50
)

var ErrSessionNotFound = errors.New("chat: session not found")

// Store owns every chat session and the current-session pointer. All
// mutations are serialized and persisted before they return.
type Store struct {
	mu        sync.RWMutex
	sessions  []models.ChatSession
	currentID *string
	loading   bool
	errMsg    string

	persister Persister
	logger    *slog.Logger
	now       func() time.Time
	newID     func(prefix string) string
}

func NewStore(persister Persister, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		persister: persister,
		logger:    logger,
		now:       time.Now,
		newID:     newID,
	}
}

func newID(prefix string) string {
	return prefix + "_" + ulid.Make().String()
}

// Load hydrates the store from its persister. Transient flags are reset.
func (s *Store) Load(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	snap, err := s.persister.LoadSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("load chat state: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = nil
	s.currentID = nil
	s.loading = false
	s.errMsg = ""
	if snap != nil {
		s.sessions = snap.Sessions
		s.currentID = snap.CurrentSessionID
	}
	return nil
}

// InitializeChat guarantees a current session without ever duplicating one.
func (s *Store) InitializeChat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case len(s.sessions) == 0:
		s.createLocked(DefaultTitle)
	case s.currentID == nil || s.indexLocked(*s.currentID) < 0:
		id := s.sessions[0].ID
		s.currentID = &id
	default:
		return
	}
	s.persistLocked()
}

func (s *Store) CreateSession(title string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.createLocked(title)
	s.persistLocked()
	return id
}

func (s *Store) createLocked(title string) string {
	if title == "" {
		title = DefaultTitle
	}
	now := s.now()
	sess := models.ChatSession{
		ID:        s.newID("session"),
		Title:     title,
		Messages:  []models.Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.sessions = append([]models.ChatSession{sess}, s.sessions...)
	id := sess.ID
	s.currentID = &id
	return id
}

func (s *Store) DeleteSession(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return
	}
	s.sessions = append(s.sessions[:idx:idx], s.sessions[idx+1:]...)
	if s.currentID != nil && *s.currentID == id {
		s.currentID = nil
		if len(s.sessions) > 0 {
			next := s.sessions[0].ID
			s.currentID = &next
		}
	}
	s.persistLocked()
}

// SetCurrentSession repoints the current session. Unknown ids are rejected
// and leave the pointer unchanged.
func (s *Store) SetCurrentSession(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexLocked(id) < 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	s.currentID = &id
	s.persistLocked()
	return nil
}

// AddMessage appends to the current session. Without a current session the
// message is dropped and ok is false.
func (s *Store) AddMessage(in models.MessageInput) (models.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentID == nil {
		return models.Message{}, false
	}
	return s.appendLocked(*s.currentID, in)
}

// AddMessageToSession appends to an explicit session regardless of which
// session is current.
func (s *Store) AddMessageToSession(sessionID string, in models.MessageInput) (models.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendLocked(sessionID, in)
}

func (s *Store) appendLocked(sessionID string, in models.MessageInput) (models.Message, bool) {
	idx := s.indexLocked(sessionID)
	if idx < 0 {
		return models.Message{}, false
	}
	now := s.now()
	msg := models.Message{
		ID:        s.newID("msg"),
		Content:   in.Content,
		Role:      in.Role,
		Timestamp: now,
		Type:      in.Type,
	}
	if in.Metadata != nil {
		md := *in.Metadata
		msg.Metadata = &md
	}
	sess := &s.sessions[idx]
	if len(sess.Messages) == 0 && in.Role == models.RoleUser {
		sess.Title = DeriveTitle(in.Content)
	}
	sess.Messages = append(sess.Messages, msg)
	sess.UpdatedAt = now
	s.persistLocked()
	return msg, true
}

// DeriveTitle keeps the first 50 characters and marks truncation with "...".
func DeriveTitle(content string) string {
	if utf8.RuneCountInString(content) <= titleLimit {
		return content
	}
	return string([]rune(content)[:titleLimit]) + "..."
}

func (s *Store) UpdateMessage(messageID, content string) bool {
	return s.mutateCurrent(func(sess *models.ChatSession) bool {
		for i := range sess.Messages {
			if sess.Messages[i].ID == messageID {
				sess.Messages[i].Content = content
				return true
			}
		}
		return false
	})
}

func (s *Store) DeleteMessage(messageID string) bool {
	return s.mutateCurrent(func(sess *models.ChatSession) bool {
		for i := range sess.Messages {
			if sess.Messages[i].ID == messageID {
				sess.Messages = append(sess.Messages[:i:i], sess.Messages[i+1:]...)
				return true
			}
		}
		return false
	})
}

// ClearCurrentSession empties the current session but keeps it.
func (s *Store) ClearCurrentSession() bool {
	return s.mutateCurrent(func(sess *models.ChatSession) bool {
		sess.Messages = []models.Message{}
		return true
	})
}

func (s *Store) mutateCurrent(fn func(*models.ChatSession) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentID == nil {
		return false
	}
	idx := s.indexLocked(*s.currentID)
	if idx < 0 {
		return false
	}
	if !fn(&s.sessions[idx]) {
		return false
	}
	s.sessions[idx].UpdatedAt = s.now()
	s.persistLocked()
	return true
}

// GetCurrentSession returns a copy of the current session, or nil.
func (s *Store) GetCurrentSession() *models.ChatSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentID == nil {
		return nil
	}
	idx := s.indexLocked(*s.currentID)
	if idx < 0 {
		return nil
	}
	sess := s.sessions[idx].Clone()
	return &sess
}

func (s *Store) GetSession(id string) (*models.ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	sess := s.sessions[idx].Clone()
	return &sess, nil
}

func (s *Store) CurrentSessionID() *string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyID(s.currentID)
}

func (s *Store) Sessions() []models.ChatSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cloneSessionsLocked()
}

func (s *Store) State() models.ChatState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.ChatState{
		Sessions:         s.cloneSessionsLocked(),
		CurrentSessionID: copyID(s.currentID),
		IsLoading:        s.loading,
		Error:            s.errMsg,
	}
}

func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

// TryStartLoading sets the loading flag unless it is already set.
func (s *Store) TryStartLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return false
	}
	s.loading = true
	return true
}

func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// SetError records a user-visible error; the empty string clears it.
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
}

// Reset drops every session and flag and persists the empty state.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = nil
	s.currentID = nil
	s.loading = false
	s.errMsg = ""
	s.persistLocked()
}

func (s *Store) indexLocked(id string) int {
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) cloneSessionsLocked() []models.ChatSession {
	out := make([]models.ChatSession, len(s.sessions))
	for i := range s.sessions {
		out[i] = s.sessions[i].Clone()
	}
	return out
}

func (s *Store) persistLocked() {
	if s.persister == nil {
		return
	}
	snap := models.ChatSnapshot{
		Sessions:         s.cloneSessionsLocked(),
		CurrentSessionID: copyID(s.currentID),
	}
	if err := s.persister.SaveSnapshot(context.Background(), snap); err != nil {
		s.logger.Error("persist chat state", "err", err)
	}
}

func copyID(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
