package domain

import "errors"

var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomAlreadyExists = errors.New("room already exists")
	ErrRoomIDExhausted   = errors.New("room id generation attempts exhausted")
	ErrContentRequired   = errors.New("message content is required")
	ErrInvalidInput      = errors.New("invalid input")
)
