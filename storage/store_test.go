package storage

import (
	"log/slog"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func Test_BadgerStore_ReadWrite(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	store := NewBadgerStore(db, slog.Default())

	store.Write(UsersKey, []byte(`[{"id":"u1"}]`))
	req.Equal([]byte(`[{"id":"u1"}]`), store.Read(UsersKey))

	// Missing key reads as absent, not as an error.
	req.Nil(store.Read(ServersKey))

	store.Delete(UsersKey)
	req.Nil(store.Read(UsersKey))
}

func Test_Collections_CorruptValueReadsEmpty(t *testing.T) {
	req := require.New(t)
	store := NewMemoryStore()

	type record struct {
		ID string `json:"id"`
	}

	store.Write(UsersKey, []byte(`{not json`))
	req.Empty(ReadCollection[record](store, UsersKey))

	WriteCollection(store, UsersKey, []record{{ID: "a"}, {ID: "b"}})
	items := ReadCollection[record](store, UsersKey)
	req.Len(items, 2)
	req.Equal("a", items[0].ID)
}

func Test_Collections_SingleValue(t *testing.T) {
	req := require.New(t)
	store := NewMemoryStore()

	type session struct {
		ID string `json:"id"`
	}

	_, found := ReadValue[session](store, CurrentUserKey)
	req.False(found)

	WriteValue(store, CurrentUserKey, session{ID: "u1"})
	value, found := ReadValue[session](store, CurrentUserKey)
	req.True(found)
	req.Equal("u1", value.ID)

	store.Delete(CurrentUserKey)
	_, found = ReadValue[session](store, CurrentUserKey)
	req.False(found)
}

func Test_Open_FallsBackToMemory(t *testing.T) {
	req := require.New(t)

	// An unwritable path degrades to the in-memory store instead of failing.
	store := Open("/dev/null/not-a-dir", slog.Default())
	defer store.Close()

	store.Write(UsersKey, []byte(`[]`))
	req.Equal([]byte(`[]`), store.Read(UsersKey))
	_, ok := store.(*MemoryStore)
	req.True(ok)
}
