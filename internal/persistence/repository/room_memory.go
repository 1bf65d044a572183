package repository

import (
	"context"
	"sync"

	"github.com/hilthontt/chatrelay/internal/domain"
)

// In-memory store backend. Shares the repository contracts with the Mongo
// implementation; used by tests and the store.driver=memory mode.
type memoryRoomRepository struct {
	rooms map[string]domain.Room // ID -> Room
	mu    *sync.RWMutex
}

func NewMemoryRoomRepository() domain.RoomRepository {
	return &memoryRoomRepository{
		rooms: make(map[string]domain.Room),
		mu:    &sync.RWMutex{},
	}
}

func (r *memoryRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	if room == nil || room.ID == "" {
		return domain.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rooms[room.ID]; exists {
		return domain.ErrRoomAlreadyExists
	}

	r.rooms[room.ID] = *room
	return nil
}

func (r *memoryRoomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	room, exists := r.rooms[id]
	if !exists {
		return nil, domain.ErrRoomNotFound
	}

	return &room, nil
}

func (r *memoryRoomRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, domain.ErrInvalidInput
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.rooms[id]
	return exists, nil
}
