package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/campus-registry/internal/persistence"
	"github.com/example/campus-registry/internal/registry"
)

// UsageLog captures the usage-record operations the handler needs.
type UsageLog interface {
	RecordUsage(ctx context.Context, personID, roomID int64, day time.Time) (persistence.UsageRecord, bool, error)
	ListUsage(ctx context.Context, day *time.Time) ([]registry.UsageProjection, error)
}

// UsageHandler serves the usage-record endpoints.
type UsageHandler struct {
	log       UsageLog
	responder responder
}

// NewUsageHandler creates a handler over the usage operations.
func NewUsageHandler(log UsageLog, logger *slog.Logger) *UsageHandler {
	return &UsageHandler{log: log, responder: newResponder(logger)}
}

type recordUsageRequest struct {
	PersonID int64  `json:"person_id"`
	RoomID   int64  `json:"room_id"`
	Day      string `json:"day"`
}

type usageResponse struct {
	ID       int64  `json:"id"`
	PersonID int64  `json:"person_id"`
	RoomID   int64  `json:"room_id"`
	Day      string `json:"day"`
}

type recordedUsageResponse struct {
	Usage   usageResponse `json:"usage"`
	Created bool          `json:"created"`
}

type usageRowResponse struct {
	ID     int64  `json:"id"`
	Day    string `json:"day"`
	Person string `json:"person"`
	Room   string `json:"room"`
}

// Create handles POST /usages.
func (h *UsageHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req recordUsageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	day, err := time.Parse("2006-01-02", req.Day)
	if err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidDay)
		return
	}

	record, created, err := h.log.RecordUsage(ctx, req.PersonID, req.RoomID, day)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, createdStatus(created), recordedUsageResponse{
		Usage: usageResponse{
			ID:       record.ID,
			PersonID: record.PersonID,
			RoomID:   record.RoomID,
			Day:      record.Day.Format("2006-01-02"),
		},
		Created: created,
	})
}

// List handles GET /usages with an optional day query parameter.
func (h *UsageHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var day *time.Time
	if value := r.URL.Query().Get("day"); value != "" {
		parsed, err := time.Parse("2006-01-02", value)
		if err != nil {
			h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidDay)
			return
		}
		day = &parsed
	}

	rows, err := h.log.ListUsage(ctx, day)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	out := make([]usageRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, usageRowResponse{
			ID:     row.ID,
			Day:    row.Day,
			Person: row.Person,
			Room:   row.Room,
		})
	}
	h.responder.writeJSON(ctx, w, http.StatusOK, out)
}
