package services

import (
	"log/slog"
	"sync"

	"messenger-lab/auth"
	"messenger-lab/domain"
	"messenger-lab/domain/event"
	"messenger-lab/errors"
	"messenger-lab/media"
	"messenger-lab/moderation"
	"messenger-lab/presence"
	"messenger-lab/projection"
	"messenger-lab/repositories"
	"messenger-lab/runtime"
	"messenger-lab/search"
)

type IChatService interface {
	SendMessage(roomID string, roomType domain.RoomType, text string, attachment []byte) (domain.Message, error)
	OpenDM(otherUserID string) (domain.DirectMessage, error)
	CreateServer(name string) (domain.Server, error)
	JoinServer(serverID string) (domain.Server, error)
	StartTyping(roomID string)
	StopTyping(roomID string)
	SelectRoom(roomID string)
	ActiveRoom() string
	ClearActiveRoom()
	RoomMessages(roomID string) []domain.Message
	TypingOthers(roomID string) []string
}

// ChatService executes one tab's chat actions: write to the repository
// first (the store is the authority), apply the local view change, then
// publish on the bus. The publish never comes back to this tab.
type ChatService struct {
	log       *slog.Logger
	authSvc   IAuthService
	messages  repositories.IMessageRepository
	dms       repositories.IDMRepository
	servers   repositories.IServerRepository
	presence  *presence.Aggregator
	timeline  *projection.Timeline
	directory *projection.Directory
	moderator *moderation.Moderator
	index     *search.Index
	bus       *runtime.Bus
	tab       *runtime.Tab

	mu         sync.RWMutex
	activeRoom string
}

func NewChatService(
	log *slog.Logger,
	authSvc IAuthService,
	messages repositories.IMessageRepository,
	dms repositories.IDMRepository,
	servers repositories.IServerRepository,
	agg *presence.Aggregator,
	timeline *projection.Timeline,
	directory *projection.Directory,
	moderator *moderation.Moderator,
	index *search.Index,
	bus *runtime.Bus,
	tab *runtime.Tab,
) *ChatService {
	return &ChatService{
		log:       log,
		authSvc:   authSvc,
		messages:  messages,
		dms:       dms,
		servers:   servers,
		presence:  agg,
		timeline:  timeline,
		directory: directory,
		moderator: moderator,
		index:     index,
		bus:       bus,
		tab:       tab,
	}
}

// SendMessage masks the text, classifies the attachment, persists the
// message (with cap eviction), appends it optimistically to the local
// timeline and broadcasts the full message so other tabs skip a re-read.
func (s *ChatService) SendMessage(roomID string, roomType domain.RoomType, text string, attachment []byte) (domain.Message, error) {
	sender, ok := s.authSvc.Current()
	if !ok {
		return domain.Message{}, errors.ErrNotLoggedIn
	}

	if s.moderator != nil {
		text = s.moderator.Mask(text)
	}

	message := domain.Message{
		ID:        domain.NewID(),
		SenderID:  sender.ID,
		RoomID:    roomID,
		RoomType:  roomType,
		Text:      text,
		CreatedAt: domain.NowMillis(),
		ReadBy:    []string{sender.ID},
	}

	if len(attachment) > 0 {
		att, err := media.Classify(attachment)
		if err != nil {
			return domain.Message{}, err
		}
		switch att.Kind {
		case media.KindImage:
			message.ImageURL = att.URL
		case media.KindVoice:
			message.VoiceURL = att.URL
		}
	}
	if !message.HasPayload() {
		return domain.Message{}, errors.ErrEmptyMessage
	}

	s.messages.Append(message)
	s.timeline.Append(message)
	s.indexMessage(message)
	s.bus.Publish(s.tab, event.Envelope{Kind: event.NewMessageKind, Payload: event.NewMessage{Message: message}})
	return message, nil
}

// OpenDM resolves the thread with the other user, lazily creating it on
// first contact, seeds the timeline from the persisted history and makes
// the thread the active room. NEW_DM is only broadcast for a new thread.
func (s *ChatService) OpenDM(otherUserID string) (domain.DirectMessage, error) {
	self, ok := s.authSvc.Current()
	if !ok {
		return domain.DirectMessage{}, errors.ErrNotLoggedIn
	}

	thread, created := s.dms.GetOrCreate(self.ID, otherUserID)
	s.timeline.Load(thread.ID, s.messages.ListByRoom(thread.ID))
	s.SelectRoom(thread.ID)

	if created {
		s.directory.ReloadDMs()
		s.bus.Publish(s.tab, event.Envelope{Kind: event.NewDMKind, Payload: event.NewDM{DM: thread}})
	}
	return thread, nil
}

// CreateServer persists a new server with its "general" channel and
// broadcasts NEW_SERVER as a re-read signal.
func (s *ChatService) CreateServer(name string) (domain.Server, error) {
	owner, ok := s.authSvc.Current()
	if !ok {
		return domain.Server{}, errors.ErrNotLoggedIn
	}
	if err := auth.ValidateServerName(name); err != nil {
		return domain.Server{}, err
	}

	server := domain.NewServer(name, owner.ID)
	s.servers.Upsert(server)
	s.directory.ReloadServers()
	s.bus.Publish(s.tab, event.Envelope{Kind: event.NewServerKind, Payload: event.NewServer{Server: server}})
	return server, nil
}

// JoinServer appends the current user to the member set. A missing
// server id returns ErrNotFound; membership is append-only, there is no
// leave.
func (s *ChatService) JoinServer(serverID string) (domain.Server, error) {
	self, ok := s.authSvc.Current()
	if !ok {
		return domain.Server{}, errors.ErrNotLoggedIn
	}

	server, found := s.servers.Join(serverID, self.ID)
	if !found {
		return domain.Server{}, errors.ErrNotFound
	}
	s.directory.ReloadServers()
	s.bus.Publish(s.tab, event.Envelope{Kind: event.NewServerKind, Payload: event.NewServer{Server: server}})
	return server, nil
}

// StartTyping publishes the room's full typing set, but only on the
// transition into typing; repeated keystrokes stay quiet.
func (s *ChatService) StartTyping(roomID string) {
	self, ok := s.authSvc.Current()
	if !ok {
		return
	}
	users, changed := s.presence.StartTyping(roomID, self.ID)
	if !changed {
		return
	}
	s.bus.Publish(s.tab, event.Envelope{Kind: event.UserTypingKind, Payload: event.UserTyping{RoomID: roomID, Users: users}})
}

// StopTyping always publishes the full set, even when unchanged, to keep
// receivers convergent after missed envelopes.
func (s *ChatService) StopTyping(roomID string) {
	self, ok := s.authSvc.Current()
	if !ok {
		return
	}
	users := s.presence.StopTyping(roomID, self.ID)
	s.bus.Publish(s.tab, event.Envelope{Kind: event.UserTypingKind, Payload: event.UserTyping{RoomID: roomID, Users: users}})
}

func (s *ChatService) SelectRoom(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeRoom = roomID
}

func (s *ChatService) ActiveRoom() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeRoom
}

func (s *ChatService) ClearActiveRoom() {
	s.SelectRoom("")
}

// RoomMessages is the tab's current view of a room.
func (s *ChatService) RoomMessages(roomID string) []domain.Message {
	return s.timeline.Messages(roomID)
}

// TypingOthers is the display view of the room's typing set: the viewer
// never appears in it.
func (s *ChatService) TypingOthers(roomID string) []string {
	self, ok := s.authSvc.Current()
	if !ok {
		return s.presence.TypingOthers(roomID, "")
	}
	return s.presence.TypingOthers(roomID, self.ID)
}

func (s *ChatService) indexMessage(message domain.Message) {
	if s.index == nil {
		return
	}
	if err := s.index.IndexMessage(message); err != nil {
		s.log.Error("Failed to index message", "message", message.ID, "error", err)
	}
}
