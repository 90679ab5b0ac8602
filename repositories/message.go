//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"github.com/samber/lo"

	"messenger-lab/domain"
	"messenger-lab/storage"
)

type IMessageRepository interface {
	List() []domain.Message
	ListByRoom(roomID string) []domain.Message
	Append(message domain.Message)
}

// MessageRepository owns the append-only messages collection. The
// collection is capped: inserting past the cap silently evicts the
// oldest entries, keeping the most recent cap messages in order.
type MessageRepository struct {
	store storage.Store
	cap   int
}

// NewMessageRepository uses domain.MessageCap unless overridden
// (tests use a small cap).
func NewMessageRepository(store storage.Store, cap *int) *MessageRepository {
	c := domain.MessageCap
	if cap != nil {
		c = *cap
	}
	return &MessageRepository{store: store, cap: c}
}

func (r *MessageRepository) List() []domain.Message {
	return storage.ReadCollection[domain.Message](r.store, storage.MessagesKey)
}

func (r *MessageRepository) ListByRoom(roomID string) []domain.Message {
	return lo.Filter(r.List(), func(m domain.Message, _ int) bool {
		return m.RoomID == roomID
	})
}

// Append inserts a message, never upserts, and applies FIFO eviction.
func (r *MessageRepository) Append(message domain.Message) {
	messages := append(r.List(), message)
	if len(messages) > r.cap {
		messages = messages[len(messages)-r.cap:]
	}
	storage.WriteCollection(r.store, storage.MessagesKey, messages)
}
