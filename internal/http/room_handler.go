package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/campus-registry/internal/persistence"
)

// RoomCatalog captures the room operations the handler needs.
type RoomCatalog interface {
	GetOrCreateRoom(ctx context.Context, name string, capacity int) (persistence.Room, bool, error)
	ListRooms(ctx context.Context) ([]persistence.Room, error)
}

// RoomHandler serves the room endpoints.
type RoomHandler struct {
	catalog   RoomCatalog
	responder responder
}

// NewRoomHandler creates a handler over the room operations.
func NewRoomHandler(catalog RoomCatalog, logger *slog.Logger) *RoomHandler {
	return &RoomHandler{catalog: catalog, responder: newResponder(logger)}
}

type roomResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toRoomResponse(room persistence.Room) roomResponse {
	return roomResponse{
		ID:        room.ID,
		Name:      room.Name,
		Capacity:  room.Capacity,
		CreatedAt: room.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: room.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type createRoomRequest struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

type createdRoomResponse struct {
	Room    roomResponse `json:"room"`
	Created bool         `json:"created"`
}

// Create handles POST /rooms.
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	room, created, err := h.catalog.GetOrCreateRoom(ctx, req.Name, req.Capacity)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, createdStatus(created), createdRoomResponse{
		Room:    toRoomResponse(room),
		Created: created,
	})
}

// List handles GET /rooms.
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rooms, err := h.catalog.ListRooms(ctx)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	out := make([]roomResponse, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, toRoomResponse(room))
	}
	h.responder.writeJSON(ctx, w, http.StatusOK, out)
}
