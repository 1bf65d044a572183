package ws

import (
	"encoding/json"
	"log"

	"github.com/gorilla/websocket"
	"github.com/hilthontt/chatrelay/internal/service"
)

type Client struct {
	conn    *connWrapper
	Message chan *WSMessage
	ID      string `json:"id"`
	RoomID  string `json:"roomId"`
	Sender  string `json:"sender"`
}

func NewClient(conn *websocket.Conn, id, roomID, sender string) *Client {
	return &Client{
		conn:    newConnWrapper(conn),
		Message: make(chan *WSMessage, 64), // buffered to avoid dead-locks on slow clients
		ID:      id,
		RoomID:  roomID,
		Sender:  sender,
	}
}

// ReadMessage pumps inbound frames into the pipeline until the connection
// drops. Frames carry {sender?, content}; the session's room id is
// authoritative, and a frame without a sender falls back to the name the
// client joined with.
func (c *Client) ReadMessage(core *Core) {
	defer func() {
		core.Unregister() <- c
		_ = c.conn.Close()
	}()

	for {
		_, raw, err := c.conn.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("ws read error (client %s): %v", c.ID, err)
			}
			break
		}

		var in service.Inbound
		if err := json.Unmarshal(raw, &in); err != nil {
			c.send(NewInvalidMessage(c.RoomID, "malformed message frame"))
			continue
		}

		if in.Sender == "" {
			in.Sender = c.Sender
		}

		core.Submit(c, in)
	}
}

func (c *Client) WriteMessage() {
	defer func() {
		_ = c.conn.Close()
	}()

	for msg := range c.Message {
		if err := c.conn.WriteJSON(msg); err != nil {
			log.Printf("ws write error (client %s): %v", c.ID, err)
			break
		}
	}
}

func (c *Client) send(msg *WSMessage) {
	select {
	case c.Message <- msg:
	default:
		log.Printf("client %s buffer full, dropping frame", c.ID)
	}
}
