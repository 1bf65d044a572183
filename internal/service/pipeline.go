package service

import (
	"context"
	"fmt"
	"log"

	"github.com/hilthontt/chatrelay/internal/domain"
	"github.com/hilthontt/chatrelay/internal/infrastructure/metrics"
	"github.com/hilthontt/chatrelay/internal/infrastructure/profanity"
)

// Broadcaster publishes an accepted message to its room's broadcast
// destination. Implementations must not block on subscriber delivery.
type Broadcaster interface {
	BroadcastMessage(ctx context.Context, message domain.Message) error
}

// Inbound is the client-supplied body of a send request. The target room
// arrives out of band (URL path, websocket session, or routing key) and always
// wins over anything the client put in the body.
type Inbound struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
}

type MessagePipeline struct {
	rooms       domain.RoomRepository
	messages    domain.MessageRepository
	broadcaster Broadcaster
	filter      *profanity.Filter
}

func NewMessagePipeline(
	rooms domain.RoomRepository,
	messages domain.MessageRepository,
	broadcaster Broadcaster,
) *MessagePipeline {
	return &MessagePipeline{
		rooms:       rooms,
		messages:    messages,
		broadcaster: broadcaster,
	}
}

// WithProfanityFilter masks accepted message content before persisting.
func (p *MessagePipeline) WithProfanityFilter(filter *profanity.Filter) *MessagePipeline {
	p.filter = filter
	return p
}

// Send runs one message through the pipeline: room existence, content
// validation, normalization, server timestamp, persist, broadcast. A rejected
// message leaves no side effects. Broadcast is fire-and-forget: a publish
// failure is logged and the persisted message is still returned.
func (p *MessagePipeline) Send(ctx context.Context, roomID string, in Inbound) (*domain.Message, error) {
	exists, err := p.rooms.ExistsByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("checking room %s: %w", roomID, err)
	}
	if !exists {
		metrics.MessagesRejected.WithLabelValues("room_not_found").Inc()
		return nil, domain.ErrRoomNotFound
	}

	message, err := domain.NewMessage(roomID, in.Sender, in.Content)
	if err != nil {
		metrics.MessagesRejected.WithLabelValues("invalid_content").Inc()
		return nil, err
	}

	if p.filter != nil {
		message.Content = p.filter.Mask(message.Content)
	}

	if err := p.messages.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("persisting message in room %s: %w", roomID, err)
	}
	metrics.MessagesAccepted.Inc()

	if err := p.broadcaster.BroadcastMessage(ctx, *message); err != nil {
		log.Printf("Failed to broadcast message %s to room %s: %v", message.ID, roomID, err)
	} else {
		metrics.MessagesBroadcast.Inc()
	}

	return message, nil
}
