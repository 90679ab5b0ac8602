package repositories

import (
	"testing"

	"github.com/stretchr/testify/require"

	"messenger-lab/domain"
	"messenger-lab/storage"
)

func Test_UserRepository_UpsertAndFind(t *testing.T) {
	req := require.New(t)
	repo := NewUserRepository(storage.NewMemoryStore())

	alice := domain.User{ID: domain.NewID(), Username: "alice", DisplayName: "Alice", CreatedAt: domain.NowMillis()}
	repo.Upsert(alice)

	fetched, found := repo.FindByID(alice.ID)
	req.True(found)
	req.Equal("alice", fetched.Username)

	// Upsert with the same id updates in place, it never duplicates.
	alice.DisplayName = "Alice In Chains"
	repo.Upsert(alice)
	req.Len(repo.List(), 1)
	fetched, _ = repo.FindByID(alice.ID)
	req.Equal("Alice In Chains", fetched.DisplayName)
}

func Test_UserRepository_FindByUsername_CaseInsensitive(t *testing.T) {
	req := require.New(t)
	repo := NewUserRepository(storage.NewMemoryStore())

	repo.Upsert(domain.User{ID: "u1", Username: "alice"})

	_, found := repo.FindByUsername("ALICE")
	req.True(found)
	_, found = repo.FindByUsername("aLiCe")
	req.True(found)
	_, found = repo.FindByUsername("alicia")
	req.False(found)
}

func Test_UserRepository_Search_Substring(t *testing.T) {
	req := require.New(t)
	repo := NewUserRepository(storage.NewMemoryStore())

	repo.Upsert(domain.User{ID: "u1", Username: "alice", DisplayName: "Alice"})
	repo.Upsert(domain.User{ID: "u2", Username: "bob_77", DisplayName: "Bobby"})
	repo.Upsert(domain.User{ID: "u3", Username: "carol", DisplayName: "The Real Alice"})

	results := repo.Search("ALI")
	req.Len(results, 2)

	results = repo.Search("bob")
	req.Len(results, 1)
	req.Equal("u2", results[0].ID)
}
