// Package event defines the typed envelopes carried by the sync bus.
// Payloads form a tagged union: one struct per kind, so new kinds can be
// added without widening an untyped field.
package event

import "messenger-lab/domain"

// Kind discriminates envelope payloads. Consumers must ignore kinds they
// do not know (forward tolerance, no versioning field).
type Kind string

const (
	NewMessageKind  Kind = "NEW_MESSAGE"
	UserTypingKind  Kind = "USER_TYPING"
	UserOnlineKind  Kind = "USER_ONLINE"
	UserOfflineKind Kind = "USER_OFFLINE"
	NewServerKind   Kind = "NEW_SERVER"
	NewDMKind       Kind = "NEW_DM"
	UserUpdatedKind Kind = "USER_UPDATED"
)

// Envelope is the wire shape published on the bus.
type Envelope struct {
	Kind    Kind
	Payload any
}

// NewMessage carries the full message so receivers can append it without
// a store re-read. Receivers must de-duplicate by message id.
type NewMessage struct {
	Message domain.Message
}

// UserTyping carries the complete typing set for a room, never a delta.
// Receivers overwrite their local record wholesale.
type UserTyping struct {
	RoomID string
	Users  []string
}

type UserOnline struct {
	UserID string
}

type UserOffline struct {
	UserID string
}

// NewServer, NewDM and UserUpdated carry the changed entity, but the
// store stays the authority: receivers treat them as re-read signals.
type NewServer struct {
	Server domain.Server
}

type NewDM struct {
	DM domain.DirectMessage
}

type UserUpdated struct {
	User domain.User
}
