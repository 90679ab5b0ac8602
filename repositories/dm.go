//go:generate go run go.uber.org/mock/mockgen -source=dm.go -destination=../mocks/mock_dm_repository.go -package=mocks
package repositories

import (
	"github.com/samber/lo"

	"messenger-lab/domain"
	"messenger-lab/storage"
)

type IDMRepository interface {
	List() []domain.DirectMessage
	ListForUser(userID string) []domain.DirectMessage
	FindByID(id string) (domain.DirectMessage, bool)
	GetOrCreate(userAID, userBID string) (domain.DirectMessage, bool)
}

// DMRepository owns the direct-message thread collection. At most one
// thread exists per unordered pair of users.
type DMRepository struct {
	store storage.Store
}

func NewDMRepository(store storage.Store) *DMRepository {
	return &DMRepository{store: store}
}

func (r *DMRepository) List() []domain.DirectMessage {
	return storage.ReadCollection[domain.DirectMessage](r.store, storage.DMsKey)
}

func (r *DMRepository) ListForUser(userID string) []domain.DirectMessage {
	return lo.Filter(r.List(), func(d domain.DirectMessage, _ int) bool {
		return d.UserAID == userID || d.UserBID == userID
	})
}

func (r *DMRepository) FindByID(id string) (domain.DirectMessage, bool) {
	return lo.Find(r.List(), func(d domain.DirectMessage) bool {
		return d.ID == id
	})
}

// GetOrCreate returns the thread for the unordered pair, checking both
// orderings, and lazily creates it on first contact. The second return
// is true when a new thread was created.
//
// The lookup and the insert are two steps over a last-write-wins store:
// two tabs racing on the same pair's first contact can each create a
// thread. That duplication is a documented limitation of the local
// simulation, not handled here.
func (r *DMRepository) GetOrCreate(userAID, userBID string) (domain.DirectMessage, bool) {
	threads := r.List()
	if existing, found := lo.Find(threads, func(d domain.DirectMessage) bool {
		return d.Involves(userAID, userBID)
	}); found {
		return existing, false
	}

	thread := domain.NewDirectMessage(userAID, userBID)
	storage.WriteCollection(r.store, storage.DMsKey, append(threads, thread))
	return thread, true
}
