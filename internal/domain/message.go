package domain

import (
	"context"
	"strings"
	"time"
)

// AnonymousSender is substituted when a client omits the sender field.
const AnonymousSender = "Anonymous"

type Message struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	RoomID    string    `json:"roomId" bson:"room_id"`
	Sender    string    `json:"sender" bson:"sender"`
	Content   string    `json:"content" bson:"content"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

type MessageRepository interface {
	// Create inserts the message and assigns its ID.
	Create(ctx context.Context, message *Message) error
	// FindByRoomID returns one page of the room's messages, newest first.
	FindByRoomID(ctx context.Context, roomID string, pageNo, pageSize int) ([]Message, error)
	CountByRoomID(ctx context.Context, roomID string) (int64, error)
}

// NewMessage normalizes client input into a persistable message. The room id
// comes from the routing parameter, never from the client body. The timestamp
// is server-assigned here; a client-supplied value is discarded upstream.
func NewMessage(roomID, sender, content string) (*Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentRequired
	}

	sender = strings.TrimSpace(sender)
	if sender == "" {
		sender = AnonymousSender
	}

	return &Message{
		RoomID:    roomID,
		Sender:    sender,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}, nil
}
