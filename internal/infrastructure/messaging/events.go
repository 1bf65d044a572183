package messaging

import (
	"fmt"
	"strings"

	"github.com/hilthontt/chatrelay/internal/domain"
)

const SendQueue = "chat.send"

// MessageEventData is the payload published to a room's broadcast destination.
type MessageEventData struct {
	Message domain.Message `json:"message"`
}

// InboundMessage is the body accepted on a send destination. Any room id or
// timestamp the client includes is ignored: the routing key names the room and
// the pipeline assigns the timestamp.
type InboundMessage struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
}

// SendKey is the routing key clients publish new messages to.
func SendKey(roomID string) string {
	return fmt.Sprintf("room.%s.send", roomID)
}

// BroadcastKey is the routing key a room's accepted messages fan out on.
func BroadcastKey(roomID string) string {
	return fmt.Sprintf("room.%s.message", roomID)
}

// RoomIDFromKey extracts the room id from a room.<id>.<verb> routing key.
func RoomIDFromKey(routingKey string) (string, bool) {
	parts := strings.Split(routingKey, ".")
	if len(parts) != 3 || parts[0] != "room" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
