package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hilthontt/chatrelay/internal/domain"
	"github.com/hilthontt/chatrelay/internal/infrastructure/metrics"
)

// maxIDAttempts bounds the generate-and-check loop. The id space (16^6) is
// large relative to any realistic room count, so hitting this limit means the
// store is misbehaving, not that we ran out of ids.
const maxIDAttempts = 25

type RoomService struct {
	rooms domain.RoomRepository
}

func NewRoomService(rooms domain.RoomRepository) *RoomService {
	return &RoomService{
		rooms: rooms,
	}
}

// CreateRoom persists a room under a freshly generated short id. Candidates
// are checked against the store and regenerated on collision; the existence
// check is advisory and the store's unique-key constraint settles concurrent
// inserts of the same candidate.
func (s *RoomService) CreateRoom(ctx context.Context, name string) (*domain.Room, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		room := domain.NewRoom(name)

		exists, err := s.rooms.ExistsByID(ctx, room.ID)
		if err != nil {
			return nil, fmt.Errorf("checking room id %s: %w", room.ID, err)
		}
		if exists {
			metrics.RoomIDCollisions.Inc()
			continue
		}

		if err := s.rooms.Create(ctx, room); err != nil {
			if errors.Is(err, domain.ErrRoomAlreadyExists) {
				// Lost the race for this candidate; try another.
				metrics.RoomIDCollisions.Inc()
				continue
			}
			return nil, fmt.Errorf("creating room %s: %w", room.ID, err)
		}

		metrics.RoomsCreated.Inc()
		return room, nil
	}

	return nil, domain.ErrRoomIDExhausted
}

// GetRoomByID is a read-through to the store; unknown ids surface as
// domain.ErrRoomNotFound.
func (s *RoomService) GetRoomByID(ctx context.Context, id string) (*domain.Room, error) {
	return s.rooms.GetByID(ctx, id)
}
