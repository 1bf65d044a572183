package events

import (
	"context"
	"encoding/json"

	"github.com/hilthontt/chatrelay/internal/domain"
	"github.com/hilthontt/chatrelay/internal/infrastructure/messaging"
)

// MessagePublisher pushes accepted messages onto their room's broadcast
// destination. It satisfies the pipeline's Broadcaster.
type MessagePublisher struct {
	rabbitmq *messaging.RabbitMQ
}

func NewMessagePublisher(rabbitmq *messaging.RabbitMQ) *MessagePublisher {
	return &MessagePublisher{
		rabbitmq: rabbitmq,
	}
}

func (p *MessagePublisher) BroadcastMessage(ctx context.Context, message domain.Message) error {
	payload := messaging.MessageEventData{
		Message: message,
	}

	eventJSON, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.rabbitmq.PublishMessage(ctx, messaging.BroadcastKey(message.RoomID), eventJSON)
}
