package ws

import (
	"time"

	"github.com/hilthontt/chatrelay/internal/domain"
)

type WSMessage struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
	Data   any    `json:"data"`
}

// Payload structs
type MessagePayload struct {
	ID        string `json:"id"`
	RoomID    string `json:"roomId"`
	Sender    string `json:"sender"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type ErrorPayload struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func NewMessageReceived(message domain.Message) *WSMessage {
	return &WSMessage{
		Type:   MessageReceived,
		RoomID: message.RoomID,
		Data: MessagePayload{
			ID:        message.ID,
			RoomID:    message.RoomID,
			Sender:    message.Sender,
			Content:   message.Content,
			Timestamp: message.Timestamp.Format(time.RFC3339),
		},
	}
}

func NewInvalidMessage(roomID, reason string) *WSMessage {
	return &WSMessage{
		Type:   InvalidMessage,
		RoomID: roomID,
		Data: ErrorPayload{
			Code:    "INVALID_MESSAGE",
			Message: reason,
		},
	}
}

func NewError(roomID, message string) *WSMessage {
	return &WSMessage{
		Type:   ErrorEvent,
		RoomID: roomID,
		Data: ErrorPayload{
			Message: message,
		},
	}
}
