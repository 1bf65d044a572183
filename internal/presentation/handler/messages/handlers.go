package messages

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hilthontt/chatrelay/internal/domain"
	"github.com/hilthontt/chatrelay/internal/infrastructure/json"
	"github.com/hilthontt/chatrelay/internal/service"
)

type Handler struct {
	pipeline *service.MessagePipeline
}

func NewHandler(pipeline *service.MessagePipeline) *Handler {
	return &Handler{
		pipeline: pipeline,
	}
}

// CreateNewMessageHandler godoc
// @Summary      Send a message to a room
// @Description  Validates, normalizes and persists the message, then broadcasts it to the room's subscribers
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        roomId path string true "Room ID"
// @Param        request body createMessageRequest true "Message body"
// @Success      201 {object} createMessageResponse "Message accepted"
// @Failure      400 {object} map[string]interface{} "Bad request - malformed body or blank content"
// @Failure      404 {object} map[string]interface{} "Room not found"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Router       /rooms/{roomId}/messages [post]
func (h *Handler) CreateNewMessageHandler(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomId")
	if roomID == "" {
		json.WriteValidationError(w, errors.New("room ID is missing"))
		return
	}

	var req createMessageRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	message, err := h.pipeline.Send(r.Context(), roomID, service.Inbound{
		Sender:  req.Sender,
		Content: req.Content,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			json.WriteNotFoundError(w, "Room not found")
		case errors.Is(err, domain.ErrContentRequired):
			json.WriteValidationError(w, err)
		default:
			log.Printf("Failed to process message for room %s: %v", roomID, err)
			json.WriteInternalError(w, err)
		}
		return
	}

	json.Write(w, http.StatusCreated, createMessageResponse{
		ID:        message.ID,
		RoomID:    message.RoomID,
		Sender:    message.Sender,
		Content:   message.Content,
		Timestamp: message.Timestamp.Format(time.RFC3339),
	})
}
