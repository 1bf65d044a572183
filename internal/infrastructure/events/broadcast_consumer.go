package events

import (
	"context"
	"encoding/json"
	"log"

	"github.com/hilthontt/chatrelay/internal/infrastructure/messaging"
	"github.com/hilthontt/chatrelay/internal/infrastructure/ws"
	"github.com/rabbitmq/amqp091-go"
)

// broadcastConsumer bridges broker broadcast events into this instance's
// websocket hub, so messages accepted on any instance reach local subscribers.
type broadcastConsumer struct {
	rabbitmq *messaging.RabbitMQ
	core     *ws.Core
}

func NewBroadcastConsumer(rabbitmq *messaging.RabbitMQ, core *ws.Core) *broadcastConsumer {
	return &broadcastConsumer{
		rabbitmq: rabbitmq,
		core:     core,
	}
}

func (c *broadcastConsumer) Listen() error {
	queueName, err := c.rabbitmq.DeclareBroadcastQueue()
	if err != nil {
		return err
	}

	return c.rabbitmq.ConsumeMessages(queueName, func(ctx context.Context, msg amqp091.Delivery) error {
		var payload messaging.MessageEventData
		if err := json.Unmarshal(msg.Body, &payload); err != nil {
			log.Printf("Failed to unmarshal broadcast event: %v", err)
			return err
		}

		c.core.Broadcast() <- ws.NewMessageReceived(payload.Message)
		return nil
	})
}
