package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const RoomIDLength = 6

type Room struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

type RoomRepository interface {
	// Create inserts the room, returning ErrRoomAlreadyExists when the id is taken.
	Create(ctx context.Context, room *Room) error
	// GetByID returns ErrRoomNotFound for unknown ids.
	GetByID(ctx context.Context, id string) (*Room, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
}

func NewRoom(name string) *Room {
	return &Room{
		ID:        NewRoomID(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

// NewRoomID returns a short candidate identifier. Uniqueness is the caller's
// problem: candidates must be checked against the store and regenerated on
// collision, with the store's unique-key constraint as the final arbiter.
func NewRoomID() string {
	return uuid.NewString()[:RoomIDLength]
}
