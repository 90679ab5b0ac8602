package services

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"messenger-lab/domain"
	"messenger-lab/domain/event"
	"messenger-lab/errors"
	"messenger-lab/moderation"
	"messenger-lab/observability"
	"messenger-lab/repositories"
	"messenger-lab/runtime"
	"messenger-lab/storage"
)

// Shortest valid PNG prefix the sniffer recognizes.
var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

func Test_ChatService_SendMessage_RequiresSessionAndPayload(t *testing.T) {
	req := require.New(t)
	store := storage.NewMemoryStore()
	bus := runtime.NewBus(slog.Default(), 8, observability.NewMonitor())
	tab := newTestSession(bus, store, "tab-a")

	_, err := tab.Chat.SendMessage("r1", domain.RoomChannel, "hello", nil)
	req.ErrorIs(err, errors.ErrNotLoggedIn)

	_, err = tab.Auth.Register("alice", "Alice", "secret123")
	req.NoError(err)

	_, err = tab.Chat.SendMessage("r1", domain.RoomChannel, "", nil)
	req.ErrorIs(err, errors.ErrEmptyMessage)
}

func Test_ChatService_SendMessage_PersistsThenBroadcasts(t *testing.T) {
	req := require.New(t)
	store := storage.NewMemoryStore()
	bus := runtime.NewBus(slog.Default(), 8, observability.NewMonitor())
	tabA := newTestSession(bus, store, "tab-a")
	tabB := newTestSession(bus, store, "tab-b")

	session, err := tabA.Auth.Register("alice", "Alice", "secret123")
	req.NoError(err)
	drain(tabB.Tab)

	sent, err := tabA.Chat.SendMessage("r1", domain.RoomChannel, "hello", nil)
	req.NoError(err)
	req.Equal([]string{session.User.ID}, sent.ReadBy)

	// Persisted before publish: an independent reader over the same store
	// sees the message regardless of the broadcast.
	messages := repositories.NewMessageRepository(store, nil).ListByRoom("r1")
	req.Len(messages, 1)
	req.Equal(sent.ID, messages[0].ID)

	// Sender's own timeline updated optimistically.
	req.Len(tabA.Chat.RoomMessages("r1"), 1)

	// The broadcast carries the full message, so receivers need no re-read.
	events := drain(tabB.Tab)
	req.Len(events, 1)
	req.Equal(event.NewMessageKind, events[0].Kind)
	payload, ok := events[0].Payload.(event.NewMessage)
	req.True(ok)
	req.Equal("hello", payload.Message.Text)
}

func Test_ChatService_SendMessage_MasksConfiguredWords(t *testing.T) {
	req := require.New(t)
	store := storage.NewMemoryStore()
	bus := runtime.NewBus(slog.Default(), 8, observability.NewMonitor())
	moderator, err := moderation.NewModerator([]string{"heck"}, '*')
	req.NoError(err)

	tab := NewTabSession(slog.Default(), "tab-a", TabOptions{
		Store:         store,
		Bus:           bus,
		Moderator:     moderator,
		TokenSecret:   []byte("test-secret"),
		TokenDuration: time.Hour,
	})
	_, err = tab.Auth.Register("alice", "Alice", "secret123")
	req.NoError(err)

	sent, err := tab.Chat.SendMessage("r1", domain.RoomChannel, "what the HECK", nil)
	req.NoError(err)
	req.Equal("what the ****", sent.Text)
}

func Test_ChatService_SendMessage_ClassifiesAttachment(t *testing.T) {
	req := require.New(t)
	store := storage.NewMemoryStore()
	bus := runtime.NewBus(slog.Default(), 8, observability.NewMonitor())
	tab := newTestSession(bus, store, "tab-a")
	_, err := tab.Auth.Register("alice", "Alice", "secret123")
	req.NoError(err)

	// An image-only message is a valid payload.
	sent, err := tab.Chat.SendMessage("r1", domain.RoomChannel, "", pngBytes)
	req.NoError(err)
	req.NotEmpty(sent.ImageURL)
	req.Empty(sent.VoiceURL)

	_, err = tab.Chat.SendMessage("r1", domain.RoomChannel, "", []byte("plain text is not media"))
	req.ErrorIs(err, errors.ErrUnknownAttachment)
}

func Test_ChatService_OpenDM_GetOrCreate(t *testing.T) {
	req := require.New(t)
	store := storage.NewMemoryStore()
	bus := runtime.NewBus(slog.Default(), 8, observability.NewMonitor())
	tabA := newTestSession(bus, store, "tab-a")
	tabB := newTestSession(bus, store, "tab-b")

	_, err := tabA.Auth.Register("alice", "Alice", "secret123")
	req.NoError(err)
	drain(tabB.Tab)

	thread, err := tabA.Chat.OpenDM("u2")
	req.NoError(err)
	req.Equal(thread.ID, tabA.Chat.ActiveRoom())

	events := drain(tabB.Tab)
	req.Len(events, 1)
	req.Equal(event.NewDMKind, events[0].Kind)

	// Reopening resolves the same thread and stays quiet.
	again, err := tabA.Chat.OpenDM("u2")
	req.NoError(err)
	req.Equal(thread.ID, again.ID)
	req.Empty(drain(tabB.Tab))
}

func Test_ChatService_OpenDM_SeedsTimelineFromHistory(t *testing.T) {
	req := require.New(t)
	store := storage.NewMemoryStore()
	bus := runtime.NewBus(slog.Default(), 8, observability.NewMonitor())
	tab := newTestSession(bus, store, "tab-a")

	_, err := tab.Auth.Register("alice", "Alice", "secret123")
	req.NoError(err)

	thread, err := tab.Chat.OpenDM("u2")
	req.NoError(err)
	_, err = tab.Chat.SendMessage(thread.ID, domain.RoomDM, "hello", nil)
	req.NoError(err)

	// A later tab with the same identity resolves the same thread and
	// seeds its timeline from the persisted history.
	other := newTestSession(bus, store, "tab-b")
	_, ok := other.Auth.Restore()
	req.True(ok)
	reopened, err := other.Chat.OpenDM("u2")
	req.NoError(err)
	req.Equal(thread.ID, reopened.ID)

	history := other.Chat.RoomMessages(thread.ID)
	req.Len(history, 1)
	req.Equal("hello", history[0].Text)
}

func Test_ChatService_CreateAndJoinServer(t *testing.T) {
	req := require.New(t)
	store := storage.NewMemoryStore()
	bus := runtime.NewBus(slog.Default(), 8, observability.NewMonitor())
	tabA := newTestSession(bus, store, "tab-a")
	tabB := newTestSession(bus, store, "tab-b")

	_, err := tabA.Auth.Register("alice", "Alice", "secret123")
	req.NoError(err)
	_, err = tabA.Chat.CreateServer("g")
	req.ErrorIs(err, errors.ErrInvalidServerName)

	drain(tabB.Tab)
	server, err := tabA.Chat.CreateServer("gophers")
	req.NoError(err)
	req.Equal(domain.DefaultChannelName, server.Channels[0].Name)
	req.Len(tabA.Directory.Servers(), 1)

	events := drain(tabB.Tab)
	req.Len(events, 1)
	req.Equal(event.NewServerKind, events[0].Kind)

	sessionB, err := tabB.Auth.Register("bob", "Bob", "secret123")
	req.NoError(err)
	_, err = tabB.Chat.JoinServer("missing-id")
	req.ErrorIs(err, errors.ErrNotFound)

	joined, err := tabB.Chat.JoinServer(server.ID)
	req.NoError(err)
	req.True(joined.HasMember(sessionB.User.ID))
}

func Test_ChatService_TypingPublishSemantics(t *testing.T) {
	req := require.New(t)
	store := storage.NewMemoryStore()
	bus := runtime.NewBus(slog.Default(), 8, observability.NewMonitor())
	tabA := newTestSession(bus, store, "tab-a")
	tabB := newTestSession(bus, store, "tab-b")

	session, err := tabA.Auth.Register("alice", "Alice", "secret123")
	req.NoError(err)
	drain(tabB.Tab)

	// Only the transition into typing publishes.
	tabA.Chat.StartTyping("r1")
	tabA.Chat.StartTyping("r1")
	events := drain(tabB.Tab)
	req.Len(events, 1)
	req.Equal(event.UserTypingKind, events[0].Kind)
	payload, ok := events[0].Payload.(event.UserTyping)
	req.True(ok)
	req.Equal([]string{session.User.ID}, payload.Users)

	// The sender never sees itself in the display view.
	req.Empty(tabA.Chat.TypingOthers("r1"))

	// Stop always publishes, even when already stopped.
	tabA.Chat.StopTyping("r1")
	tabA.Chat.StopTyping("r1")
	events = drain(tabB.Tab)
	req.Len(events, 2)
	stop, ok := events[0].Payload.(event.UserTyping)
	req.True(ok)
	req.Empty(stop.Users)
}
