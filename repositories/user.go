//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"strings"

	"github.com/samber/lo"

	"messenger-lab/domain"
	"messenger-lab/storage"
)

type IUserRepository interface {
	List() []domain.User
	Upsert(user domain.User)
	FindByID(id string) (domain.User, bool)
	FindByUsername(username string) (domain.User, bool)
	Search(query string) []domain.User
}

// UserRepository reads and writes the users collection. Usernames are
// unique case-insensitively; uniqueness is checked by the caller via
// FindByUsername before inserting.
type UserRepository struct {
	store storage.Store
}

func NewUserRepository(store storage.Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) List() []domain.User {
	return storage.ReadCollection[domain.User](r.store, storage.UsersKey)
}

// Upsert updates the record in place when the id matches an existing
// user, otherwise appends.
func (r *UserRepository) Upsert(user domain.User) {
	users := r.List()
	_, idx, found := lo.FindIndexOf(users, func(u domain.User) bool {
		return u.ID == user.ID
	})
	if found {
		users[idx] = user
	} else {
		users = append(users, user)
	}
	storage.WriteCollection(r.store, storage.UsersKey, users)
}

func (r *UserRepository) FindByID(id string) (domain.User, bool) {
	return lo.Find(r.List(), func(u domain.User) bool {
		return u.ID == id
	})
}

// FindByUsername is a case-insensitive exact match.
func (r *UserRepository) FindByUsername(username string) (domain.User, bool) {
	return lo.Find(r.List(), func(u domain.User) bool {
		return strings.EqualFold(u.Username, username)
	})
}

// Search filters users by case-insensitive substring over username and
// display name.
func (r *UserRepository) Search(query string) []domain.User {
	q := strings.ToLower(query)
	return lo.Filter(r.List(), func(u domain.User, _ int) bool {
		return strings.Contains(strings.ToLower(u.Username), q) ||
			strings.Contains(strings.ToLower(u.DisplayName), q)
	})
}
