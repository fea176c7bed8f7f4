package chat

import "time"

// Message is a single posted message. Messages are immutable once posted and
// belong to exactly one room by RoomID. The reference is not enforced: a
// message may outlive its room, so a dangling RoomID must be tolerated.
type Message struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"roomId"`
	User      string    `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
