package services

import (
	"log/slog"
	"time"

	"messenger-lab/contract"
	"messenger-lab/moderation"
	"messenger-lab/presence"
	"messenger-lab/projection"
	"messenger-lab/repositories"
	"messenger-lab/runtime"
	"messenger-lab/runtime/workers"
	"messenger-lab/search"
	"messenger-lab/storage"
)

// TabSession assembles everything one simulated tab owns: a bus handle,
// its ephemeral presence aggregator and view projections, and the two
// services acting on them. Repositories are built per tab over the
// shared store, mirroring independent tabs over one origin.
type TabSession struct {
	Tab       *runtime.Tab
	Auth      IAuthService
	Chat      IChatService
	Presence  *presence.Aggregator
	Timeline  *projection.Timeline
	Directory *projection.Directory

	bus        *runtime.Bus
	dispatcher *workers.TabDispatcher
}

// TabOptions carries the shared collaborators and session settings.
// Index and Moderator may be nil (search and masking disabled).
type TabOptions struct {
	Store         storage.Store
	Bus           *runtime.Bus
	Index         *search.Index
	Moderator     *moderation.Moderator
	MessageCap    *int
	TokenSecret   []byte
	TokenDuration time.Duration
}

func NewTabSession(log *slog.Logger, name string, opts TabOptions) *TabSession {
	tab := opts.Bus.Subscribe(name)

	users := repositories.NewUserRepository(opts.Store)
	servers := repositories.NewServerRepository(opts.Store)
	dms := repositories.NewDMRepository(opts.Store)
	messages := repositories.NewMessageRepository(opts.Store, opts.MessageCap)
	session := repositories.NewSessionRepository(opts.Store)

	agg := presence.NewAggregator()
	timeline := projection.NewTimeline()
	directory := projection.NewDirectory(users, servers, dms)

	authSvc := NewAuthService(log, users, session, agg, directory, opts.Index,
		opts.Bus, tab, opts.TokenSecret, opts.TokenDuration)
	chatSvc := NewChatService(log, authSvc, messages, dms, servers,
		agg, timeline, directory, opts.Moderator, opts.Index, opts.Bus, tab)

	return &TabSession{
		Tab:        tab,
		Auth:       authSvc,
		Chat:       chatSvc,
		Presence:   agg,
		Timeline:   timeline,
		Directory:  directory,
		bus:        opts.Bus,
		dispatcher: workers.NewTabDispatcher(log, tab, agg, timeline, directory),
	}
}

// Worker returns the dispatch loop to hand to the supervisor.
func (s *TabSession) Worker() contract.Worker {
	return s.dispatcher
}

// Logout clears the active room selection and signs the tab out.
func (s *TabSession) Logout() {
	s.Chat.ClearActiveRoom()
	s.Auth.Logout()
}

// Close detaches the tab from the bus; pending envelopes are dropped.
func (s *TabSession) Close() {
	s.bus.Unsubscribe(s.Tab)
}
