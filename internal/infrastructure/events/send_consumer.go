package events

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/hilthontt/chatrelay/internal/domain"
	"github.com/hilthontt/chatrelay/internal/infrastructure/messaging"
	"github.com/hilthontt/chatrelay/internal/service"
	"github.com/rabbitmq/amqp091-go"
)

// sendConsumer drains the shared send queue: each delivery addressed to a
// room.<id>.send destination runs through the pipeline exactly once, on
// whichever instance picked it up.
type sendConsumer struct {
	rabbitmq *messaging.RabbitMQ
	pipeline *service.MessagePipeline
}

func NewSendConsumer(rabbitmq *messaging.RabbitMQ, pipeline *service.MessagePipeline) *sendConsumer {
	return &sendConsumer{
		rabbitmq: rabbitmq,
		pipeline: pipeline,
	}
}

func (c *sendConsumer) Listen() error {
	return c.rabbitmq.ConsumeMessages(messaging.SendQueue, func(ctx context.Context, msg amqp091.Delivery) error {
		roomID, ok := messaging.RoomIDFromKey(msg.RoutingKey)
		if !ok {
			log.Printf("Dropping send with unroutable key %q", msg.RoutingKey)
			return nil
		}

		var in messaging.InboundMessage
		if err := json.Unmarshal(msg.Body, &in); err != nil {
			log.Printf("Failed to unmarshal send for room %s: %v", roomID, err)
			return nil
		}

		_, err := c.pipeline.Send(ctx, roomID, service.Inbound{Sender: in.Sender, Content: in.Content})
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrRoomNotFound), errors.Is(err, domain.ErrContentRequired):
			// Client-input failure: nothing to retry, nothing to broadcast.
			log.Printf("Rejected send for room %s: %v", roomID, err)
		default:
			// Storage failure. The caller must resend; do not requeue.
			log.Printf("Failed to process send for room %s: %v", roomID, err)
		}

		return nil
	})
}
