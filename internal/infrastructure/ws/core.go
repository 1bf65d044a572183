package ws

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/hilthontt/chatrelay/internal/domain"
	"github.com/hilthontt/chatrelay/internal/infrastructure/metrics"
	"github.com/hilthontt/chatrelay/internal/service"
)

const submitTimeout = 10 * time.Second

type Core struct {
	roomMgr    *RoomManager
	register   chan *Client
	unregister chan *Client
	broadcast  chan *WSMessage
	pipeline   *service.MessagePipeline
}

func NewCore(roomMgr *RoomManager) *Core {
	return &Core{
		roomMgr:    roomMgr,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *WSMessage, 256),
	}
}

// SetPipeline wires the message pipeline in after construction. The hub and
// the pipeline reference each other when broadcasting locally, so one of the
// two has to be attached late.
func (c *Core) SetPipeline(pipeline *service.MessagePipeline) {
	c.pipeline = pipeline
}

func (c *Core) Run() {
	for {
		select {
		case cl := <-c.register:
			c.roomMgr.AddClient(cl)
			metrics.WSConnections.Inc()

		case cl := <-c.unregister:
			c.roomMgr.RemoveClient(cl)
			metrics.WSConnections.Dec()

		case msg := <-c.broadcast:
			c.roomMgr.BroadcastToRoom(msg)
		}
	}
}

// Submit runs one inbound frame through the pipeline on the client's read
// goroutine. Validation failures go back on the offending connection only;
// accepted messages come back to every subscriber via the broadcast path.
func (c *Core) Submit(cl *Client, in service.Inbound) {
	ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
	defer cancel()

	_, err := c.pipeline.Send(ctx, cl.RoomID, in)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrContentRequired):
		cl.send(NewInvalidMessage(cl.RoomID, err.Error()))
	case errors.Is(err, domain.ErrRoomNotFound):
		cl.send(NewInvalidMessage(cl.RoomID, "room does not exist"))
	default:
		log.Printf("pipeline error (client %s, room %s): %v", cl.ID, cl.RoomID, err)
		cl.send(NewError(cl.RoomID, "failed to process message"))
	}
}

func (c *Core) Register() chan<- *Client {
	return c.register
}

func (c *Core) Unregister() chan<- *Client {
	return c.unregister
}

func (c *Core) Broadcast() chan<- *WSMessage {
	return c.broadcast
}

// HubBroadcaster is the local transport: accepted messages go straight onto
// the hub's broadcast channel. Used when no broker is configured.
type HubBroadcaster struct {
	core *Core
}

func NewHubBroadcaster(core *Core) *HubBroadcaster {
	return &HubBroadcaster{core: core}
}

func (b *HubBroadcaster) BroadcastMessage(ctx context.Context, message domain.Message) error {
	select {
	case b.core.broadcast <- NewMessageReceived(message):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
