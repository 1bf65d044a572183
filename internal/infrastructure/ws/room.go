package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// WSRoom holds the live subscribers of one room. History never lives here:
// the store owns it and late joiners fetch it over the history endpoint.
type WSRoom struct {
	ID      string             `json:"id"`
	Clients map[string]*Client `json:"clients"`
}

type RoomManager struct {
	rooms    map[string]*WSRoom // keyed by room id
	upgrader websocket.Upgrader
	mu       sync.RWMutex
}

func NewRoomManager() *RoomManager {
	return &RoomManager{
		rooms: make(map[string]*WSRoom),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (rm *RoomManager) Upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	return rm.upgrader.Upgrade(w, r, nil)
}

func (rm *RoomManager) AddClient(cl *Client) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	room, ok := rm.rooms[cl.RoomID]
	if !ok {
		room = &WSRoom{
			ID:      cl.RoomID,
			Clients: make(map[string]*Client),
		}
		rm.rooms[cl.RoomID] = room
	}

	if _, exists := room.Clients[cl.ID]; !exists {
		room.Clients[cl.ID] = cl
	}
}

func (rm *RoomManager) RemoveClient(cl *Client) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if room, ok := rm.rooms[cl.RoomID]; ok {
		if _, ok := room.Clients[cl.ID]; ok {
			delete(room.Clients, cl.ID)
			close(cl.Message)

			if len(room.Clients) == 0 {
				delete(rm.rooms, cl.RoomID)
			}
		}
	}
}

// BroadcastToRoom fans a message out to the room's current subscribers. A room
// with no subscribers is not an error: nobody is listening right now.
func (rm *RoomManager) BroadcastToRoom(msg *WSMessage) {
	rm.mu.RLock()
	room, ok := rm.rooms[msg.RoomID]
	rm.mu.RUnlock()
	if !ok {
		return
	}

	for _, cl := range room.Clients {
		select {
		case cl.Message <- msg:
		default:
			// Client is too slow, drop the message
			log.Printf("client %s buffer full, dropping message", cl.ID)
		}
	}
}
