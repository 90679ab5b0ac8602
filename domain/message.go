package domain

// MessageCap is the fixed maximum retained message count. Every insert
// past the cap evicts the oldest message (FIFO, not time-based).
const MessageCap = 1000

// RoomType discriminates the addressable target of a message.
type RoomType string

const (
	RoomDM      RoomType = "dm"
	RoomChannel RoomType = "channel"
)

// Message is an append-only chat entry addressed to a room, which is
// either a DirectMessage thread or a Channel. At least one of the
// payload fields is populated.
type Message struct {
	ID        string   `json:"id"`
	SenderID  string   `json:"senderId"`
	RoomID    string   `json:"roomId"`
	RoomType  RoomType `json:"roomType"`
	Text      string   `json:"text,omitempty"`
	ImageURL  string   `json:"imageUrl,omitempty"`
	VoiceURL  string   `json:"voiceUrl,omitempty"`
	CreatedAt int64    `json:"createdAt"`
	ReadBy    []string `json:"readBy"`
}

// HasPayload reports whether the message carries anything to display.
func (m Message) HasPayload() bool {
	return m.Text != "" || m.ImageURL != "" || m.VoiceURL != ""
}

// MarkRead records that userID has seen the message. The sender is
// already included at creation.
func (m *Message) MarkRead(userID string) {
	for _, id := range m.ReadBy {
		if id == userID {
			return
		}
	}
	m.ReadBy = append(m.ReadBy, userID)
}
