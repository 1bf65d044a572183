package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hilthontt/chatrelay/internal/domain"
	"github.com/hilthontt/chatrelay/internal/infrastructure/profanity"
	"github.com/hilthontt/chatrelay/internal/persistence/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureBroadcaster struct {
	mu       sync.Mutex
	messages []domain.Message
	err      error
}

func (b *captureBroadcaster) BroadcastMessage(ctx context.Context, message domain.Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.err != nil {
		return b.err
	}
	b.messages = append(b.messages, message)
	return nil
}

func (b *captureBroadcaster) sent() []domain.Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]domain.Message, len(b.messages))
	copy(out, b.messages)
	return out
}

type failingMessageRepository struct {
	domain.MessageRepository
}

func (r *failingMessageRepository) Create(ctx context.Context, message *domain.Message) error {
	return errors.New("store unavailable")
}

func newPipelineFixture(t *testing.T) (*MessagePipeline, *domain.Room, domain.MessageRepository, *captureBroadcaster) {
	t.Helper()

	rooms := repository.NewMemoryRoomRepository()
	messages := repository.NewMemoryMessageRepository()
	broadcaster := &captureBroadcaster{}

	room := domain.NewRoom("general")
	require.NoError(t, rooms.Create(context.Background(), room))

	return NewMessagePipeline(rooms, messages, broadcaster), room, messages, broadcaster
}

func TestMessagePipeline_Send(t *testing.T) {
	pipeline, room, messages, broadcaster := newPipelineFixture(t)

	before := time.Now().UTC()
	msg, err := pipeline.Send(context.Background(), room.ID, Inbound{Content: " hello "})
	require.NoError(t, err)

	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, room.ID, msg.RoomID)
	assert.Equal(t, "hello", msg.Content)
	assert.Equal(t, domain.AnonymousSender, msg.Sender)
	assert.False(t, msg.Timestamp.Before(before))

	stored, err := messages.FindByRoomID(context.Background(), room.ID, 0, 50)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, *msg, stored[0])

	sent := broadcaster.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, *msg, sent[0], "broadcast must carry the persisted message, assigned id included")
}

func TestMessagePipeline_Send_TrimsSender(t *testing.T) {
	pipeline, room, _, _ := newPipelineFixture(t)

	msg, err := pipeline.Send(context.Background(), room.ID, Inbound{Sender: "  Bob  ", Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "Bob", msg.Sender)
}

func TestMessagePipeline_Send_RejectsBlankContent(t *testing.T) {
	pipeline, room, messages, broadcaster := newPipelineFixture(t)

	for _, content := range []string{"", "   ", "\t\n"} {
		_, err := pipeline.Send(context.Background(), room.ID, Inbound{Sender: "bob", Content: content})
		assert.ErrorIs(t, err, domain.ErrContentRequired)
	}

	stored, err := messages.FindByRoomID(context.Background(), room.ID, 0, 50)
	require.NoError(t, err)
	assert.Empty(t, stored, "rejected messages must not be persisted")
	assert.Empty(t, broadcaster.sent(), "rejected messages must not be broadcast")
}

func TestMessagePipeline_Send_RejectsUnknownRoom(t *testing.T) {
	pipeline, _, messages, broadcaster := newPipelineFixture(t)

	_, err := pipeline.Send(context.Background(), "nope00", Inbound{Content: "hello"})
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)

	count, err := messages.CountByRoomID(context.Background(), "nope00")
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, broadcaster.sent())
}

func TestMessagePipeline_Send_StorageFailureAbortsBeforeBroadcast(t *testing.T) {
	rooms := repository.NewMemoryRoomRepository()
	broadcaster := &captureBroadcaster{}

	room := domain.NewRoom("general")
	require.NoError(t, rooms.Create(context.Background(), room))

	pipeline := NewMessagePipeline(rooms, &failingMessageRepository{}, broadcaster)

	_, err := pipeline.Send(context.Background(), room.ID, Inbound{Content: "hello"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrContentRequired)
	assert.Empty(t, broadcaster.sent())
}

func TestMessagePipeline_Send_BroadcastFailureDoesNotLoseMessage(t *testing.T) {
	rooms := repository.NewMemoryRoomRepository()
	messages := repository.NewMemoryMessageRepository()
	broadcaster := &captureBroadcaster{err: errors.New("broker down")}

	room := domain.NewRoom("general")
	require.NoError(t, rooms.Create(context.Background(), room))

	pipeline := NewMessagePipeline(rooms, messages, broadcaster)

	msg, err := pipeline.Send(context.Background(), room.ID, Inbound{Content: "hello"})
	require.NoError(t, err, "a publish failure must not fail an already persisted send")
	assert.NotEmpty(t, msg.ID)

	count, err := messages.CountByRoomID(context.Background(), room.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestMessagePipeline_Send_MasksProfanity(t *testing.T) {
	pipeline, room, _, _ := newPipelineFixture(t)
	pipeline = pipeline.WithProfanityFilter(profanity.NewFilter())

	msg, err := pipeline.Send(context.Background(), room.ID, Inbound{Content: "well shit happens"})
	require.NoError(t, err)
	assert.Equal(t, "well **** happens", msg.Content)
}
