package projection

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"messenger-lab/domain"
	"messenger-lab/domain/event"
)

func Test_Timeline_AppendKeepsArrivalOrder(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()

	req.True(timeline.Append(domain.Message{ID: "m1", RoomID: "r1", Text: "first"}))
	req.True(timeline.Append(domain.Message{ID: "m2", RoomID: "r1", Text: "second"}))

	messages := timeline.Messages("r1")
	req.Len(messages, 2)
	req.Equal("first", messages[0].Text)
	req.Equal("second", messages[1].Text)
}

func Test_Timeline_EventPathIsIdempotent(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()
	ctx := context.Background()

	m1 := domain.Message{ID: "m1", RoomID: "r1", Text: "hello"}

	// The same message id arriving twice through the event path
	req.NoError(timeline.Consume(ctx, event.Envelope{Kind: event.NewMessageKind, Payload: event.NewMessage{Message: m1}}))
	req.NoError(timeline.Consume(ctx, event.Envelope{Kind: event.NewMessageKind, Payload: event.NewMessage{Message: m1}}))

	req.Len(timeline.Messages("r1"), 1)
}

func Test_Timeline_OptimisticAppendThenEventDoesNotDuplicate(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()
	ctx := context.Background()

	m1 := domain.Message{ID: "m1", RoomID: "r1", Text: "hello"}

	// Local optimistic insert first, then the broadcast comes back around
	req.True(timeline.Append(m1))
	req.NoError(timeline.Consume(ctx, event.Envelope{Kind: event.NewMessageKind, Payload: event.NewMessage{Message: m1}}))

	req.Len(timeline.Messages("r1"), 1)
}

func Test_Timeline_LoadSeedsOnlyMatchingRoom(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()

	timeline.Load("r1", []domain.Message{
		{ID: "m1", RoomID: "r1", Text: "keep"},
		{ID: "m2", RoomID: "r2", Text: "skip"},
	})

	req.Len(timeline.Messages("r1"), 1)
	req.Empty(timeline.Messages("r2"))
}

func Test_Timeline_IgnoresOtherKinds(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()

	req.NoError(timeline.Consume(context.Background(), event.Envelope{Kind: event.UserOnlineKind, Payload: event.UserOnline{UserID: "u1"}}))
	req.Empty(timeline.Messages("r1"))
}
