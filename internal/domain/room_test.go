package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoomID(t *testing.T) {
	id := NewRoomID()

	require.Len(t, id, RoomIDLength)
	for _, c := range id {
		assert.Contains(t, "0123456789abcdef", string(c))
	}
}

func TestNewRoomID_Varies(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		seen[NewRoomID()] = struct{}{}
	}

	// 100 draws from a 16^6 space colliding down to a handful would mean the
	// generator is broken, not unlucky.
	assert.Greater(t, len(seen), 90)
}

func TestNewRoom(t *testing.T) {
	room := NewRoom("general")

	assert.Len(t, room.ID, RoomIDLength)
	assert.Equal(t, "general", room.Name)
	assert.False(t, room.CreatedAt.IsZero())
}
