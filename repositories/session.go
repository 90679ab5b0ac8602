//go:generate go run go.uber.org/mock/mockgen -source=session.go -destination=../mocks/mock_session_repository.go -package=mocks
package repositories

import (
	"messenger-lab/domain"
	"messenger-lab/storage"
)

type ISessionRepository interface {
	Get() (domain.User, bool)
	Set(user domain.User)
	Clear()
}

// SessionRepository persists the last logged-in user under a single
// optional key. The store is shared by all tabs, so this records the
// most recent login on the origin; each tab's in-memory identity lives
// in the auth service, independent of this record.
type SessionRepository struct {
	store storage.Store
}

func NewSessionRepository(store storage.Store) *SessionRepository {
	return &SessionRepository{store: store}
}

func (r *SessionRepository) Get() (domain.User, bool) {
	return storage.ReadValue[domain.User](r.store, storage.CurrentUserKey)
}

func (r *SessionRepository) Set(user domain.User) {
	storage.WriteValue(r.store, storage.CurrentUserKey, user)
}

func (r *SessionRepository) Clear() {
	r.store.Delete(storage.CurrentUserKey)
}
