package messaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoutingKeys(t *testing.T) {
	assert.Equal(t, "room.3f2a1b.send", SendKey("3f2a1b"))
	assert.Equal(t, "room.3f2a1b.message", BroadcastKey("3f2a1b"))
}

func TestRoomIDFromKey(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		roomID string
		ok     bool
	}{
		{name: "send key", key: "room.3f2a1b.send", roomID: "3f2a1b", ok: true},
		{name: "broadcast key", key: "room.3f2a1b.message", roomID: "3f2a1b", ok: true},
		{name: "wrong prefix", key: "user.3f2a1b.send", ok: false},
		{name: "missing room id", key: "room..send", ok: false},
		{name: "too few segments", key: "room.send", ok: false},
		{name: "too many segments", key: "room.3f2a1b.send.extra", ok: false},
		{name: "empty key", key: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roomID, ok := RoomIDFromKey(tt.key)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.roomID, roomID)
		})
	}
}
