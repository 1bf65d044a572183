package rooms

import "time"

// createRoomRequest represents the request to create a new chat room
type createRoomRequest struct {
	Name string `json:"name" example:"general"` // Display name of the room
}

// roomResponse represents a chat room
type roomResponse struct {
	ID        string    `json:"id" example:"3f2a1b"`                      // Short unique room identifier
	Name      string    `json:"name" example:"general"`                   // Display name of the room
	CreatedAt time.Time `json:"createdAt" example:"2024-01-01T12:00:00Z"` // Room creation timestamp
}
