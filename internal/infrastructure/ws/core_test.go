package ws

import (
	"context"
	"testing"
	"time"

	"github.com/hilthontt/chatrelay/internal/domain"
	"github.com/hilthontt/chatrelay/internal/persistence/repository"
	"github.com/hilthontt/chatrelay/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHubFixture(t *testing.T) (*Core, *domain.Room) {
	t.Helper()

	rooms := repository.NewMemoryRoomRepository()
	messages := repository.NewMemoryMessageRepository()

	room := domain.NewRoom("general")
	require.NoError(t, rooms.Create(context.Background(), room))

	core := NewCore(NewRoomManager())
	core.SetPipeline(service.NewMessagePipeline(rooms, messages, NewHubBroadcaster(core)))
	go core.Run()

	return core, room
}

func recvFrame(t *testing.T, cl *Client) *WSMessage {
	t.Helper()

	select {
	case msg := <-cl.Message:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a frame")
		return nil
	}
}

func assertNoFrame(t *testing.T, cl *Client) {
	t.Helper()

	select {
	case msg := <-cl.Message:
		t.Fatalf("unexpected frame of type %q", msg.Type)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCore_FanOutToRoomSubscribers(t *testing.T) {
	core, room := newHubFixture(t)

	first := NewClient(nil, "c1", room.ID, "alice")
	second := NewClient(nil, "c2", room.ID, "bob")
	other := NewClient(nil, "c3", "other0", "eve")

	core.Register() <- first
	core.Register() <- second
	core.Register() <- other

	core.Submit(first, service.Inbound{Sender: "alice", Content: " hi there "})

	for _, cl := range []*Client{first, second} {
		frame := recvFrame(t, cl)
		assert.Equal(t, MessageReceived, frame.Type)
		assert.Equal(t, room.ID, frame.RoomID)

		payload, ok := frame.Data.(MessagePayload)
		require.True(t, ok)
		assert.Equal(t, "hi there", payload.Content)
		assert.Equal(t, "alice", payload.Sender)
		assert.NotEmpty(t, payload.ID)
	}

	assertNoFrame(t, other)
}

func TestCore_InvalidContentStaysOnOffendingClient(t *testing.T) {
	core, room := newHubFixture(t)

	offender := NewClient(nil, "c1", room.ID, "alice")
	bystander := NewClient(nil, "c2", room.ID, "bob")
	core.Register() <- offender
	core.Register() <- bystander

	core.Submit(offender, service.Inbound{Sender: "alice", Content: "   "})

	frame := recvFrame(t, offender)
	assert.Equal(t, InvalidMessage, frame.Type)

	payload, ok := frame.Data.(ErrorPayload)
	require.True(t, ok)
	assert.Equal(t, "INVALID_MESSAGE", payload.Code)

	assertNoFrame(t, bystander)
}

func TestCore_SubmitToUnknownRoom(t *testing.T) {
	core, _ := newHubFixture(t)

	cl := NewClient(nil, "c1", "nope00", "alice")
	core.Register() <- cl

	core.Submit(cl, service.Inbound{Content: "hello"})

	frame := recvFrame(t, cl)
	assert.Equal(t, InvalidMessage, frame.Type)
}

func TestRoomManager_DropsWhenClientBufferFull(t *testing.T) {
	rm := NewRoomManager()
	cl := NewClient(nil, "c1", "abc123", "alice")
	rm.AddClient(cl)

	frame := NewMessageReceived(domain.Message{
		ID:        "m1",
		RoomID:    "abc123",
		Sender:    "alice",
		Content:   "hi",
		Timestamp: time.Now().UTC(),
	})
	for i := 0; i < cap(cl.Message); i++ {
		cl.Message <- frame
	}

	done := make(chan struct{})
	go func() {
		rm.BroadcastToRoom(frame)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked on a full client buffer")
	}

	assert.Len(t, cl.Message, cap(cl.Message))
}

func TestRoomManager_RemoveClient(t *testing.T) {
	rm := NewRoomManager()
	cl := NewClient(nil, "c1", "abc123", "alice")
	rm.AddClient(cl)
	rm.RemoveClient(cl)

	_, open := <-cl.Message
	assert.False(t, open, "removing a client must close its send channel")

	// The emptied room is gone; broadcasting to it is a no-op.
	rm.BroadcastToRoom(NewMessageReceived(domain.Message{RoomID: "abc123"}))
}
