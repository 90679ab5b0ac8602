package domain

import "github.com/samber/lo"

// DefaultChannelName is created with every server.
const DefaultChannelName = "general"

// Server is a named space owned by one user, holding an ordered list of
// channels and an append-only member set. The owner is always a member.
type Server struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"ownerId"`
	Members   []string  `json:"members"`
	Channels  []Channel `json:"channels"`
	CreatedAt int64     `json:"createdAt"`
}

// Channel belongs to exactly one server. Channels only come to life as
// part of server creation; they have no independent lifecycle.
type Channel struct {
	ID       string `json:"id"`
	ServerID string `json:"serverId"`
	Name     string `json:"name"`
}

// NewServer builds a server owned by ownerID with its "general" channel.
func NewServer(name, ownerID string) Server {
	id := NewID()
	return Server{
		ID:      id,
		Name:    name,
		OwnerID: ownerID,
		Members: []string{ownerID},
		Channels: []Channel{
			{ID: NewID(), ServerID: id, Name: DefaultChannelName},
		},
		CreatedAt: NowMillis(),
	}
}

// Join adds a member. Membership is append-only, joining twice is a no-op.
func (s *Server) Join(userID string) {
	if lo.Contains(s.Members, userID) {
		return
	}
	s.Members = append(s.Members, userID)
}

// HasMember reports whether userID belongs to the server.
func (s Server) HasMember(userID string) bool {
	return lo.Contains(s.Members, userID)
}
