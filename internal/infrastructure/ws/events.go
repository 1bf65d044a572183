package ws

const (
	MessageReceived = "message.received"

	ErrorEvent     = "error"
	InvalidMessage = "error.invalid"
)
