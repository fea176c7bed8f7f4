package chat

import "time"

// Room is a named channel owned by its creator. Rooms are immutable after
// creation; there is no update or delete path.
type Room struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
}
