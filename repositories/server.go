//go:generate go run go.uber.org/mock/mockgen -source=server.go -destination=../mocks/mock_server_repository.go -package=mocks
package repositories

import (
	"github.com/samber/lo"

	"messenger-lab/domain"
	"messenger-lab/storage"
)

type IServerRepository interface {
	List() []domain.Server
	ListForUser(userID string) []domain.Server
	Upsert(server domain.Server)
	FindByID(id string) (domain.Server, bool)
	FindChannel(channelID string) (domain.Channel, bool)
	Join(serverID, userID string) (domain.Server, bool)
}

// ServerRepository owns the servers collection, channels included.
type ServerRepository struct {
	store storage.Store
}

func NewServerRepository(store storage.Store) *ServerRepository {
	return &ServerRepository{store: store}
}

func (r *ServerRepository) List() []domain.Server {
	return storage.ReadCollection[domain.Server](r.store, storage.ServersKey)
}

func (r *ServerRepository) ListForUser(userID string) []domain.Server {
	return lo.Filter(r.List(), func(s domain.Server, _ int) bool {
		return s.HasMember(userID)
	})
}

func (r *ServerRepository) Upsert(server domain.Server) {
	servers := r.List()
	_, idx, found := lo.FindIndexOf(servers, func(s domain.Server) bool {
		return s.ID == server.ID
	})
	if found {
		servers[idx] = server
	} else {
		servers = append(servers, server)
	}
	storage.WriteCollection(r.store, storage.ServersKey, servers)
}

func (r *ServerRepository) FindByID(id string) (domain.Server, bool) {
	return lo.Find(r.List(), func(s domain.Server) bool {
		return s.ID == id
	})
}

// FindChannel resolves a channel id across all servers.
func (r *ServerRepository) FindChannel(channelID string) (domain.Channel, bool) {
	for _, server := range r.List() {
		for _, channel := range server.Channels {
			if channel.ID == channelID {
				return channel, true
			}
		}
	}
	return domain.Channel{}, false
}

// Join adds userID to the server's member set and persists. A missing
// server is a no-op returning false, per the local NotFound semantics.
func (r *ServerRepository) Join(serverID, userID string) (domain.Server, bool) {
	server, found := r.FindByID(serverID)
	if !found {
		return domain.Server{}, false
	}
	server.Join(userID)
	r.Upsert(server)
	return server, true
}
