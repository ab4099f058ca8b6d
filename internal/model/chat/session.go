package chat

import "time"

// Session captures one conversation's accumulated state. The message
// slice is append-only; ids are opaque and issued by the server, never
// chosen by clients.
type Session struct {
	ID           string    `json:"id"`
	Messages     []Message `json:"messages"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActiveAt time.Time `json:"lastActiveAt"`
}
