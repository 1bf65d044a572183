package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/hilthontt/chatrelay/internal/domain"
)

type memoryMessageRepository struct {
	messages map[string][]domain.Message // roomID -> []Message
	mu       *sync.RWMutex
}

func NewMemoryMessageRepository() domain.MessageRepository {
	return &memoryMessageRepository{
		messages: make(map[string][]domain.Message),
		mu:       &sync.RWMutex{},
	}
}

func (r *memoryMessageRepository) Create(ctx context.Context, message *domain.Message) error {
	if message == nil || message.RoomID == "" {
		return domain.ErrInvalidInput
	}

	if message.ID == "" {
		message.ID = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages[message.RoomID] = append(r.messages[message.RoomID], *message)
	return nil
}

func (r *memoryMessageRepository) FindByRoomID(ctx context.Context, roomID string, pageNo, pageSize int) ([]domain.Message, error) {
	if roomID == "" {
		return nil, domain.ErrInvalidInput
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	roomMsgs := r.messages[roomID]

	// Copy before sorting to prevent external mutation
	sorted := make([]domain.Message, len(roomMsgs))
	copy(sorted, roomMsgs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})

	// A negative product means pageNo*pageSize overflowed; either way the
	// requested page is past the end.
	start := pageNo * pageSize
	if start < 0 || start >= len(sorted) {
		return []domain.Message{}, nil
	}

	end := start + pageSize
	if end > len(sorted) {
		end = len(sorted)
	}

	return sorted[start:end], nil
}

func (r *memoryMessageRepository) CountByRoomID(ctx context.Context, roomID string) (int64, error) {
	if roomID == "" {
		return 0, domain.ErrInvalidInput
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.messages[roomID])), nil
}
