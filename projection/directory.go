package projection

import (
	"context"
	"sync"

	"messenger-lab/domain"
	"messenger-lab/domain/event"
	"messenger-lab/repositories"
)

// Directory is one tab's cached view of the larger collections: users,
// servers and DM threads. NEW_SERVER, NEW_DM and USER_UPDATED envelopes
// carry the changed entity, but the store is the authority and the
// payload may be stale against concurrent local writes, so the directory
// treats them purely as re-read signals and reloads the collection.
type Directory struct {
	mu      sync.RWMutex
	users   repositories.IUserRepository
	servers repositories.IServerRepository
	dms     repositories.IDMRepository

	userView   []domain.User
	serverView []domain.Server
	dmView     []domain.DirectMessage
}

func NewDirectory(
	users repositories.IUserRepository,
	servers repositories.IServerRepository,
	dms repositories.IDMRepository,
) *Directory {
	d := &Directory{users: users, servers: servers, dms: dms}
	d.ReloadAll()
	return d
}

func (d *Directory) Users() []domain.User {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.userView
}

func (d *Directory) Servers() []domain.Server {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.serverView
}

func (d *Directory) DMs() []domain.DirectMessage {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.dmView
}

// ReloadAll refreshes every view from the store, as done on tab start
// and by tests simulating a full page reload.
func (d *Directory) ReloadAll() {
	d.ReloadUsers()
	d.ReloadServers()
	d.ReloadDMs()
}

func (d *Directory) ReloadUsers() {
	users := d.users.List()
	d.mu.Lock()
	d.userView = users
	d.mu.Unlock()
}

func (d *Directory) ReloadServers() {
	servers := d.servers.List()
	d.mu.Lock()
	d.serverView = servers
	d.mu.Unlock()
}

func (d *Directory) ReloadDMs() {
	dms := d.dms.List()
	d.mu.Lock()
	d.dmView = dms
	d.mu.Unlock()
}

func (d *Directory) Consume(_ context.Context, e event.Envelope) error {
	switch e.Kind {
	case event.NewServerKind:
		d.ReloadServers()
	case event.NewDMKind:
		d.ReloadDMs()
	case event.UserUpdatedKind:
		d.ReloadUsers()
	}
	return nil
}
