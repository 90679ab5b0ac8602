package domain

// DirectMessage is a conversation thread between exactly two users.
// The pair is unordered: lookups must check both orderings, and at most
// one thread exists per pair (modulo the concurrent first-contact race
// documented on the repository).
type DirectMessage struct {
	ID        string `json:"id"`
	UserAID   string `json:"userAId"`
	UserBID   string `json:"userBId"`
	CreatedAt int64  `json:"createdAt"`
}

// NewDirectMessage creates a fresh thread for the given pair.
func NewDirectMessage(userAID, userBID string) DirectMessage {
	return DirectMessage{
		ID:        NewID(),
		UserAID:   userAID,
		UserBID:   userBID,
		CreatedAt: NowMillis(),
	}
}

// Involves matches the unordered pair against both orderings.
func (d DirectMessage) Involves(userAID, userBID string) bool {
	return (d.UserAID == userAID && d.UserBID == userBID) ||
		(d.UserAID == userBID && d.UserBID == userAID)
}

// Other returns the peer of userID in the thread.
func (d DirectMessage) Other(userID string) string {
	if d.UserAID == userID {
		return d.UserBID
	}
	return d.UserAID
}
