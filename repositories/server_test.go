package repositories

import (
	"testing"

	"github.com/stretchr/testify/require"

	"messenger-lab/domain"
	"messenger-lab/storage"
)

func Test_ServerRepository_CreateWithGeneralChannel(t *testing.T) {
	req := require.New(t)
	repo := NewServerRepository(storage.NewMemoryStore())

	server := domain.NewServer("gophers", "u1")
	repo.Upsert(server)

	fetched, found := repo.FindByID(server.ID)
	req.True(found)
	req.Equal("u1", fetched.OwnerID)
	req.True(fetched.HasMember("u1"))
	req.Len(fetched.Channels, 1)
	req.Equal(domain.DefaultChannelName, fetched.Channels[0].Name)
	req.Equal(server.ID, fetched.Channels[0].ServerID)

	channel, found := repo.FindChannel(fetched.Channels[0].ID)
	req.True(found)
	req.Equal(domain.DefaultChannelName, channel.Name)
}

func Test_ServerRepository_Join_AppendOnly(t *testing.T) {
	req := require.New(t)
	repo := NewServerRepository(storage.NewMemoryStore())

	server := domain.NewServer("gophers", "u1")
	repo.Upsert(server)

	joined, found := repo.Join(server.ID, "u2")
	req.True(found)
	req.ElementsMatch([]string{"u1", "u2"}, joined.Members)

	// Joining twice is a no-op
	joined, _ = repo.Join(server.ID, "u2")
	req.Len(joined.Members, 2)

	// A missing server is a no-op, not an error
	_, found = repo.Join("nope", "u2")
	req.False(found)

	req.Len(repo.ListForUser("u2"), 1)
	req.Empty(repo.ListForUser("u3"))
}
