package chat

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bhindi/internal/models"
	"bhindi/internal/storage"
	"bhindi/internal/tests/mocks"
)

func newTestStore(t *testing.T) (*Store, *mocks.SlotRepositoryMock) {
	t.Helper()
	repo := mocks.NewSlotRepositoryMock()
	s := NewStore(NewSlotPersister(repo), nil)
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	seq := 0
	s.newID = func(prefix string) string {
		seq++
		return fmt.Sprintf("%s_%d", prefix, seq)
	}
	return s, repo
}

func userMsg(content string) models.MessageInput {
	return models.MessageInput{Content: content, Role: models.RoleUser, Type: models.MessageText}
}

func TestDeriveTitle(t *testing.T) {
	assert.Equal(t, "Schedule a meeting", DeriveTitle("Schedule a meeting"))

	exact := strings.Repeat("a", 50)
	assert.Equal(t, exact, DeriveTitle(exact))

	long := strings.Repeat("b", 51)
	assert.Equal(t, strings.Repeat("b", 50)+"...", DeriveTitle(long))

	wide := strings.Repeat("é", 60)
	assert.Equal(t, strings.Repeat("é", 50)+"...", DeriveTitle(wide))
}

func TestAddMessage_TitleFromFirstUserMessage(t *testing.T) {
	s, _ := newTestStore(t)
	s.CreateSession("")

	_, ok := s.AddMessage(userMsg(strings.Repeat("x", 80)))
	require.True(t, ok)
	_, ok = s.AddMessage(userMsg("second message"))
	require.True(t, ok)

	sess := s.GetCurrentSession()
	require.NotNil(t, sess)
	assert.Equal(t, strings.Repeat("x", 50)+"...", sess.Title)
}

func TestAddMessage_AssistantFirstKeepsTitle(t *testing.T) {
	s, _ := newTestStore(t)
	s.CreateSession("")

	s.AddMessage(models.MessageInput{Content: "hi there", Role: models.RoleAssistant})
	s.AddMessage(userMsg("question"))

	assert.Equal(t, DefaultTitle, s.GetCurrentSession().Title)
}

func TestAddMessage_OrderAndUniqueIDs(t *testing.T) {
	s, _ := newTestStore(t)
	s.CreateSession("")

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		msg, ok := s.AddMessage(userMsg(fmt.Sprintf("m%d", i)))
		require.True(t, ok)
		assert.False(t, seen[msg.ID])
		seen[msg.ID] = true
	}

	sess := s.GetCurrentSession()
	require.Len(t, sess.Messages, 5)
	for i, m := range sess.Messages {
		assert.Equal(t, fmt.Sprintf("m%d", i), m.Content)
	}
}

func TestAddMessage_NoCurrentSessionIsDropped(t *testing.T) {
	s, repo := newTestStore(t)

	_, ok := s.AddMessage(userMsg("lost"))
	assert.False(t, ok)
	assert.Empty(t, s.Sessions())
	assert.Equal(t, 0, repo.Puts)
}

func TestAddMessage_BumpsUpdatedAt(t *testing.T) {
	s, _ := newTestStore(t)
	s.CreateSession("")
	before := s.GetCurrentSession().UpdatedAt

	s.AddMessage(userMsg("hello"))

	assert.True(t, s.GetCurrentSession().UpdatedAt.After(before))
}

func TestAddMessageToSession_TargetsNonCurrent(t *testing.T) {
	s, _ := newTestStore(t)
	first := s.CreateSession("first")
	second := s.CreateSession("second")

	_, ok := s.AddMessageToSession(first, models.MessageInput{Content: "reply", Role: models.RoleAssistant})
	require.True(t, ok)

	assert.Equal(t, second, *s.CurrentSessionID())
	assert.Empty(t, s.GetCurrentSession().Messages)
	sess, err := s.GetSession(first)
	require.NoError(t, err)
	require.Len(t, sess.Messages, 1)
	assert.Equal(t, "reply", sess.Messages[0].Content)

	_, ok = s.AddMessageToSession("missing", userMsg("x"))
	assert.False(t, ok)
}

func TestCreateSession_PrependsAndBecomesCurrent(t *testing.T) {
	s, _ := newTestStore(t)
	a := s.CreateSession("A")
	b := s.CreateSession("")

	sessions := s.Sessions()
	require.Len(t, sessions, 2)
	assert.Equal(t, b, sessions[0].ID)
	assert.Equal(t, a, sessions[1].ID)
	assert.Equal(t, DefaultTitle, sessions[0].Title)
	assert.Equal(t, b, s.GetCurrentSession().ID)
	assert.True(t, strings.HasPrefix(b, "session_"))
}

func TestDeleteSession_CurrentMovesToFirstRemaining(t *testing.T) {
	s, _ := newTestStore(t)
	a := s.CreateSession("A")
	b := s.CreateSession("B")
	c := s.CreateSession("C")

	s.DeleteSession(c)
	assert.Equal(t, b, s.GetCurrentSession().ID)

	s.DeleteSession(a)
	assert.Equal(t, b, s.GetCurrentSession().ID)

	s.DeleteSession(b)
	assert.Nil(t, s.GetCurrentSession())
	assert.Nil(t, s.CurrentSessionID())
}

func TestDeleteSession_NonCurrentKeepsPointer(t *testing.T) {
	s, _ := newTestStore(t)
	a := s.CreateSession("A")
	b := s.CreateSession("B")

	s.DeleteSession(a)
	assert.Equal(t, b, s.GetCurrentSession().ID)
	assert.Len(t, s.Sessions(), 1)
}

func TestInitializeChat_Idempotent(t *testing.T) {
	s, _ := newTestStore(t)

	s.InitializeChat()
	s.InitializeChat()

	sessions := s.Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, DefaultTitle, sessions[0].Title)
	assert.Equal(t, sessions[0].ID, s.GetCurrentSession().ID)
}

func TestInitializeChat_PicksFirstWhenNoCurrent(t *testing.T) {
	repo := mocks.NewSlotRepositoryMock()
	older := models.ChatSession{ID: "session_old", Title: "old"}
	newer := models.ChatSession{ID: "session_new", Title: "new"}
	require.NoError(t, storage.SaveJSON(context.Background(), repo, storage.ChatKey,
		models.ChatSnapshot{Sessions: []models.ChatSession{newer, older}}))

	s := NewStore(NewSlotPersister(repo), nil)
	require.NoError(t, s.Load(context.Background()))
	s.InitializeChat()

	assert.Len(t, s.Sessions(), 2)
	assert.Equal(t, "session_new", s.GetCurrentSession().ID)
}

func TestInitializeChat_DanglingPointerRecovers(t *testing.T) {
	repo := mocks.NewSlotRepositoryMock()
	ghost := "session_ghost"
	require.NoError(t, storage.SaveJSON(context.Background(), repo, storage.ChatKey,
		models.ChatSnapshot{
			Sessions:         []models.ChatSession{{ID: "session_real", Title: "real"}},
			CurrentSessionID: &ghost,
		}))

	s := NewStore(NewSlotPersister(repo), nil)
	require.NoError(t, s.Load(context.Background()))
	assert.Nil(t, s.GetCurrentSession())

	s.InitializeChat()
	assert.Equal(t, "session_real", s.GetCurrentSession().ID)
}

func TestSetCurrentSession_UnknownRejected(t *testing.T) {
	s, _ := newTestStore(t)
	a := s.CreateSession("A")
	b := s.CreateSession("B")

	require.NoError(t, s.SetCurrentSession(a))
	assert.Equal(t, a, s.GetCurrentSession().ID)

	err := s.SetCurrentSession("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, a, s.GetCurrentSession().ID)
	assert.NotEqual(t, a, b)
}

func TestUpdateAndDeleteMessage(t *testing.T) {
	s, _ := newTestStore(t)
	s.CreateSession("")
	m1, _ := s.AddMessage(userMsg("one"))
	m2, _ := s.AddMessage(userMsg("two"))
	stamp := s.GetCurrentSession().UpdatedAt

	assert.True(t, s.UpdateMessage(m1.ID, "uno"))
	assert.True(t, s.GetCurrentSession().UpdatedAt.After(stamp))
	assert.False(t, s.UpdateMessage("msg_missing", "x"))

	assert.True(t, s.DeleteMessage(m2.ID))
	assert.False(t, s.DeleteMessage(m2.ID))

	sess := s.GetCurrentSession()
	require.Len(t, sess.Messages, 1)
	assert.Equal(t, "uno", sess.Messages[0].Content)
}

func TestClearCurrentSession_KeepsSession(t *testing.T) {
	s, _ := newTestStore(t)
	id := s.CreateSession("")
	s.AddMessage(userMsg("first question"))

	assert.True(t, s.ClearCurrentSession())

	sess := s.GetCurrentSession()
	require.NotNil(t, sess)
	assert.Equal(t, id, sess.ID)
	assert.Empty(t, sess.Messages)
	assert.Equal(t, "first question", sess.Title)
}

func TestGetCurrentSession_ReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t)
	s.CreateSession("")
	s.AddMessage(userMsg("original"))

	sess := s.GetCurrentSession()
	sess.Messages[0].Content = "mutated"

	assert.Equal(t, "original", s.GetCurrentSession().Messages[0].Content)
}

func TestPersistence_RoundTripExcludesTransientFlags(t *testing.T) {
	s, repo := newTestStore(t)
	s.CreateSession("")
	s.AddMessage(userMsg("persist me"))
	s.SetLoading(true)
	s.SetError("boom")

	assert.NotContains(t, repo.Slots[storage.ChatKey], "isLoading")

	reloaded := NewStore(NewSlotPersister(repo), nil)
	require.NoError(t, reloaded.Load(context.Background()))

	state := reloaded.State()
	assert.False(t, state.IsLoading)
	assert.Empty(t, state.Error)
	require.Len(t, state.Sessions, 1)
	assert.Equal(t, "persist me", state.Sessions[0].Title)
	assert.Equal(t, state.Sessions[0].ID, *state.CurrentSessionID)
}

func TestPersistFailureIsLoggedNotRaised(t *testing.T) {
	s, repo := newTestStore(t)
	repo.PutFunc = func(ctx context.Context, key, value string) error { return assert.AnError }

	id := s.CreateSession("")
	assert.NotEmpty(t, id)
	assert.Equal(t, id, s.GetCurrentSession().ID)
}

func TestTryStartLoading(t *testing.T) {
	s, _ := newTestStore(t)

	assert.True(t, s.TryStartLoading())
	assert.False(t, s.TryStartLoading())
	s.SetLoading(false)
	assert.True(t, s.TryStartLoading())
}

func TestReset(t *testing.T) {
	s, repo := newTestStore(t)
	s.CreateSession("")
	s.SetError("x")

	s.Reset()

	assert.Empty(t, s.Sessions())
	assert.Nil(t, s.GetCurrentSession())
	assert.Empty(t, s.State().Error)
	assert.Contains(t, repo.Slots[storage.ChatKey], `"currentSessionId":null`)
}
