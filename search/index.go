// Package search is the local stand-in for the hosted variant's query
// API: case-insensitive substring search over users and message text,
// backed by a Bluge index.
package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/abadojack/whatlanggo"
	"github.com/blugelabs/bluge"

	"messenger-lab/domain"
)

type Index struct {
	writer *bluge.Writer
	log    *slog.Logger
}

// Open creates or opens the index at path.
func Open(path string, log *slog.Logger) (*Index, error) {
	writer, err := bluge.OpenWriter(bluge.DefaultConfig(path))
	if err != nil {
		return nil, err
	}
	return &Index{writer: writer, log: log}, nil
}

// OpenInMemory backs tests and the degraded storage mode.
func OpenInMemory(log *slog.Logger) (*Index, error) {
	writer, err := bluge.OpenWriter(bluge.InMemoryOnlyConfig())
	if err != nil {
		return nil, err
	}
	return &Index{writer: writer, log: log}, nil
}

func (i *Index) Close() error {
	return i.writer.Close()
}

// IndexUser makes a user findable by username or display name.
// Fields are stored lowercased; queries lowercase their terms, which
// gives the case-insensitive substring contract.
func (i *Index) IndexUser(user domain.User) error {
	doc := bluge.NewDocument("user:" + user.ID)
	doc.AddField(bluge.NewKeywordField("kind", "user"))
	doc.AddField(bluge.NewKeywordField("username", strings.ToLower(user.Username)))
	doc.AddField(bluge.NewKeywordField("displayName", strings.ToLower(user.DisplayName)))
	doc.AddField(bluge.NewStoredOnlyField("entityId", []byte(user.ID)))
	return i.writer.Update(doc.ID(), doc)
}

// IndexMessage makes a text message searchable within its room. The
// detected language is indexed as a keyword so views can filter on it.
func (i *Index) IndexMessage(message domain.Message) error {
	if message.Text == "" {
		return nil
	}
	doc := bluge.NewDocument("msg:" + message.ID)
	doc.AddField(bluge.NewKeywordField("kind", "message"))
	doc.AddField(bluge.NewKeywordField("room", message.RoomID))
	doc.AddField(bluge.NewTextField("text", strings.ToLower(message.Text)))
	doc.AddField(bluge.NewKeywordField("lang", whatlanggo.Detect(message.Text).Lang.Iso6393()))
	doc.AddField(bluge.NewStoredOnlyField("entityId", []byte(message.ID)))
	return i.writer.Update(doc.ID(), doc)
}

// SearchUsers returns the ids of users whose username or display name
// contains the query, case-insensitively.
func (i *Index) SearchUsers(ctx context.Context, query string, limit int) ([]string, error) {
	term := "*" + strings.ToLower(query) + "*"
	q := bluge.NewBooleanQuery().
		AddMust(bluge.NewTermQuery("user").SetField("kind")).
		AddShould(bluge.NewWildcardQuery(term).SetField("username")).
		AddShould(bluge.NewWildcardQuery(term).SetField("displayName")).
		SetMinShould(1)
	return i.search(ctx, q, limit)
}

// SearchMessages returns the ids of messages in roomID whose text
// contains the query term.
func (i *Index) SearchMessages(ctx context.Context, query, roomID string, limit int) ([]string, error) {
	q := bluge.NewBooleanQuery().
		AddMust(bluge.NewTermQuery("message").SetField("kind")).
		AddMust(bluge.NewTermQuery(roomID).SetField("room")).
		AddMust(bluge.NewWildcardQuery("*" + strings.ToLower(query) + "*").SetField("text"))
	return i.search(ctx, q, limit)
}

func (i *Index) search(ctx context.Context, q bluge.Query, limit int) ([]string, error) {
	reader, err := i.writer.Reader()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	iter, err := reader.Search(ctx, bluge.NewTopNSearch(limit, q))
	if err != nil {
		return nil, err
	}

	var ids []string
	match, err := iter.Next()
	for err == nil && match != nil {
		visitErr := match.VisitStoredFields(func(field string, value []byte) bool {
			if field == "entityId" {
				ids = append(ids, string(value))
			}
			return true
		})
		if visitErr != nil {
			return nil, visitErr
		}
		match, err = iter.Next()
	}
	if err != nil {
		return nil, err
	}
	return ids, nil
}
