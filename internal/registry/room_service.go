package registry

import (
	"context"
	"log/slog"
	"strings"

	"github.com/example/campus-registry/internal/persistence"
)

// RoomService drives the idempotent room operations against the store.
type RoomService struct {
	store  persistence.RoomStore
	logger *slog.Logger
}

// NewRoomService wires dependencies for the room service.
func NewRoomService(store persistence.RoomStore, logger *slog.Logger) *RoomService {
	return &RoomService{store: store, logger: defaultLogger(logger)}
}

// GetOrCreateRoom creates a room once per unique name. When the room already
// exists it is returned unchanged, the capacity argument notwithstanding. A
// negative capacity fails with the store's constraint-violation class.
func (s *RoomService) GetOrCreateRoom(ctx context.Context, name string, capacity int) (persistence.Room, bool, error) {
	logger := serviceLogger(ctx, s.logger, "room", "get_or_create_room", "room_name", name)

	name = strings.TrimSpace(name)
	if name == "" {
		vErr := &ValidationError{}
		vErr.add("name", "room name is required")
		return persistence.Room{}, false, vErr
	}

	room, created, err := s.store.GetOrCreateRoom(ctx, name, capacity)
	if err != nil {
		logger.ErrorContext(ctx, "operation failed", "kind", ErrorKind(err), "error", err)
		return persistence.Room{}, false, err
	}

	logger.InfoContext(ctx, "room resolved", "room_id", room.ID, "created", created)
	return room, created, nil
}

// ListRooms returns all rooms ordered by name.
func (s *RoomService) ListRooms(ctx context.Context) ([]persistence.Room, error) {
	return s.store.ListRooms(ctx)
}
