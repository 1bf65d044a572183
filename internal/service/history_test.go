package service

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/hilthontt/chatrelay/internal/domain"
	"github.com/hilthontt/chatrelay/internal/persistence/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMessages(t *testing.T, messages domain.MessageRepository, roomID string, n int) []domain.Message {
	t.Helper()

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	seeded := make([]domain.Message, 0, n)

	for i := 0; i < n; i++ {
		msg := &domain.Message{
			RoomID:    roomID,
			Sender:    "bob",
			Content:   fmt.Sprintf("message %d", i),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, messages.Create(context.Background(), msg))
		seeded = append(seeded, *msg)
	}

	return seeded
}

func TestHistoryService_NewestFirst(t *testing.T) {
	messages := repository.NewMemoryMessageRepository()
	seeded := seedMessages(t, messages, "room-1", 3)
	svc := NewHistoryService(messages)

	// Three messages at t1<t2<t3: page 0 of size 2 is [t3, t2], page 1 is [t1].
	page, err := svc.GetMessagesOfRoom(context.Background(), "room-1", 0, 2)
	require.NoError(t, err)
	require.Len(t, page.Content, 2)
	assert.Equal(t, seeded[2].Content, page.Content[0].Content)
	assert.Equal(t, seeded[1].Content, page.Content[1].Content)
	assert.EqualValues(t, 3, page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.False(t, page.Last)

	page, err = svc.GetMessagesOfRoom(context.Background(), "room-1", 1, 2)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, seeded[0].Content, page.Content[0].Content)
	assert.True(t, page.Last)
}

func TestHistoryService_ClampsPageInputs(t *testing.T) {
	messages := repository.NewMemoryMessageRepository()
	seedMessages(t, messages, "room-1", 150)
	svc := NewHistoryService(messages)

	tests := []struct {
		name       string
		pageNo     int
		pageSize   int
		wantPageNo int
		wantSize   int
		wantItems  int
	}{
		{"oversized page", 0, 1000, 0, 100, 100},
		{"zero size", 0, 0, 0, 1, 1},
		{"negative size", 0, -3, 0, 1, 1},
		{"negative page", -5, 50, 0, 50, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.GetMessagesOfRoom(context.Background(), "room-1", tt.pageNo, tt.pageSize)
			require.NoError(t, err)

			assert.Equal(t, tt.wantPageNo, page.PageNo)
			assert.Equal(t, tt.wantSize, page.PageSize)
			assert.Len(t, page.Content, tt.wantItems)
		})
	}
}

func TestHistoryService_Idempotent(t *testing.T) {
	messages := repository.NewMemoryMessageRepository()
	seedMessages(t, messages, "room-1", 10)
	svc := NewHistoryService(messages)

	first, err := svc.GetMessagesOfRoom(context.Background(), "room-1", 0, 4)
	require.NoError(t, err)

	second, err := svc.GetMessagesOfRoom(context.Background(), "room-1", 0, 4)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestHistoryService_UnknownRoomIsEmptyPage(t *testing.T) {
	svc := NewHistoryService(repository.NewMemoryMessageRepository())

	page, err := svc.GetMessagesOfRoom(context.Background(), "nope00", 0, 50)
	require.NoError(t, err)

	assert.Empty(t, page.Content)
	assert.EqualValues(t, 0, page.TotalElements)
	assert.Equal(t, 0, page.TotalPages)
	assert.True(t, page.Last)
}

func TestHistoryService_HugePageNo(t *testing.T) {
	messages := repository.NewMemoryMessageRepository()
	seedMessages(t, messages, "room-1", 5)
	svc := NewHistoryService(messages)

	page, err := svc.GetMessagesOfRoom(context.Background(), "room-1", math.MaxInt, 100)
	require.NoError(t, err)

	assert.Empty(t, page.Content)
	assert.EqualValues(t, 5, page.TotalElements)
	assert.True(t, page.Last)
}

func TestHistoryService_PagePastEnd(t *testing.T) {
	messages := repository.NewMemoryMessageRepository()
	seedMessages(t, messages, "room-1", 5)
	svc := NewHistoryService(messages)

	page, err := svc.GetMessagesOfRoom(context.Background(), "room-1", 7, 5)
	require.NoError(t, err)

	assert.Empty(t, page.Content)
	assert.EqualValues(t, 5, page.TotalElements)
	assert.True(t, page.Last)
}
