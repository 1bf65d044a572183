package rooms

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hilthontt/chatrelay/internal/domain"
	"github.com/hilthontt/chatrelay/internal/infrastructure/json"
	"github.com/hilthontt/chatrelay/internal/infrastructure/ws"
	"github.com/hilthontt/chatrelay/internal/service"
)

type Handler struct {
	roomService    *service.RoomService
	historyService *service.HistoryService
	roomManager    *ws.RoomManager
	core           *ws.Core
}

func NewHandler(
	roomService *service.RoomService,
	historyService *service.HistoryService,
	roomManager *ws.RoomManager,
	core *ws.Core,
) *Handler {
	return &Handler{
		roomService:    roomService,
		historyService: historyService,
		roomManager:    roomManager,
		core:           core,
	}
}

// CreateRoomHandler godoc
// @Summary      Create a new chat room
// @Description  Creates a room under a freshly generated short id and returns it
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        request body createRoomRequest true "Room creation parameters"
// @Success      201 {object} roomResponse "Room created successfully"
// @Failure      400 {object} map[string]interface{} "Bad request - malformed body"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Router       /rooms [post]
func (h *Handler) CreateRoomHandler(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	room, err := h.roomService.CreateRoom(r.Context(), req.Name)
	if err != nil {
		log.Printf("Failed to create room: %v", err)
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusCreated, roomResponse{
		ID:        room.ID,
		Name:      room.Name,
		CreatedAt: room.CreatedAt,
	})
}

// GetRoomHandler godoc
// @Summary      Get room details
// @Description  Retrieves a room by its short id
// @Tags         rooms
// @Produce      json
// @Param        roomId path string true "Room ID"
// @Success      200 {object} roomResponse "Room details"
// @Failure      400 {object} map[string]interface{} "Bad request - missing room ID"
// @Failure      404 {object} map[string]interface{} "Room not found"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Router       /rooms/{roomId} [get]
func (h *Handler) GetRoomHandler(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomId")
	if roomID == "" {
		json.WriteValidationError(w, errors.New("room ID is missing"))
		return
	}

	room, err := h.roomService.GetRoomByID(r.Context(), roomID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			json.WriteNotFoundError(w, "Room not found")
		default:
			log.Printf("Failed to find room: %v", err)
			json.WriteInternalError(w, err)
		}
		return
	}

	json.Write(w, http.StatusOK, roomResponse{
		ID:        room.ID,
		Name:      room.Name,
		CreatedAt: room.CreatedAt,
	})
}

// GetRoomMessagesHandler godoc
// @Summary      Get room message history
// @Description  Returns one page of the room's messages, newest first. Page inputs are clamped: pageNo >= 0, pageSize in [1,100].
// @Tags         rooms
// @Produce      json
// @Param        roomId path string true "Room ID"
// @Param        pageNo query int false "Page number" default(0)
// @Param        pageSize query int false "Page size" default(50)
// @Success      200 {object} service.Page "Page of messages"
// @Failure      400 {object} map[string]interface{} "Bad request - missing room ID"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Router       /rooms/{roomId}/messages [get]
func (h *Handler) GetRoomMessagesHandler(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomId")
	if roomID == "" {
		json.WriteValidationError(w, errors.New("room ID is missing"))
		return
	}

	pageNo := queryInt(r, "pageNo", 0)
	pageSize := queryInt(r, "pageSize", service.DefaultPageSize)

	page, err := h.historyService.GetMessagesOfRoom(r.Context(), roomID, pageNo, pageSize)
	if err != nil {
		log.Printf("Failed to load history of room %s: %v", roomID, err)
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, page)
}

// JoinRoomHandler godoc
// @Summary      Join a chat room via WebSocket
// @Description  Upgrades the connection and subscribes the client to the room's broadcast destination. Inbound frames carry {sender?, content}.
// @Tags         rooms
// @Produce      json
// @Param        roomId path string true "Room ID"
// @Param        sender query string false "Display name for frames sent without one"
// @Success      101 {object} map[string]interface{} "Switching Protocols - WebSocket connection established"
// @Failure      400 {object} map[string]interface{} "Bad request - missing room ID"
// @Failure      404 {object} map[string]interface{} "Room not found"
// @Router       /rooms/{roomId}/ws [get]
func (h *Handler) JoinRoomHandler(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomId")
	if roomID == "" {
		json.WriteValidationError(w, errors.New("room ID is missing"))
		return
	}

	if _, err := h.roomService.GetRoomByID(r.Context(), roomID); err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			json.WriteNotFoundError(w, "Room not found")
		default:
			log.Printf("Failed to find room: %v", err)
			json.WriteInternalError(w, err)
		}
		return
	}

	sender := r.URL.Query().Get("sender")

	conn, err := h.roomManager.Upgrade(w, r)
	if err != nil {
		log.Printf("WebSocket upgrade failed for room %s: %v", roomID, err)
		return
	}

	client := ws.NewClient(conn, uuid.NewString(), roomID, sender)
	h.core.Register() <- client

	go client.WriteMessage()
	go client.ReadMessage(h.core)

	log.Printf("Client %s connected to room %s", client.ID, roomID)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return val
}
