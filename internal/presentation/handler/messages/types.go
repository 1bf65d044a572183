package messages

// createMessageRequest represents the request to post a new message. Any room
// id in the body is ignored; the URL names the target room.
type createMessageRequest struct {
	Sender  string `json:"sender" example:"bob"`                                              // Optional display name, defaults to "Anonymous"
	Content string `json:"content" example:"Hello, everyone!" minLength:"1" maxLength:"5000"` // Message content
}

// createMessageResponse represents the persisted message
type createMessageResponse struct {
	ID        string `json:"id" example:"65f2c0a19d4c2e7b3a1f0d42"` // Store-assigned message identifier
	RoomID    string `json:"roomId" example:"3f2a1b"`               // Room the message belongs to
	Sender    string `json:"sender" example:"bob"`                  // Normalized sender
	Content   string `json:"content" example:"Hello, everyone!"`    // Normalized content
	Timestamp string `json:"timestamp"`                             // Server-assigned timestamp, RFC3339
}
