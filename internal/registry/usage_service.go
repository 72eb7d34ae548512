package registry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/campus-registry/internal/persistence"
)

// UsageProjection is the display-ready view of one usage record. The summary
// strings are safe to render without re-entering the store.
type UsageProjection struct {
	ID     int64
	Day    string
	Person string
	Room   string
}

// UsageService drives the idempotent usage-record operations and the joined
// listing projection.
type UsageService struct {
	store  persistence.UsageStore
	logger *slog.Logger
}

// NewUsageService wires dependencies for the usage service.
func NewUsageService(store persistence.UsageStore, logger *slog.Logger) *UsageService {
	return &UsageService{store: store, logger: defaultLogger(logger)}
}

// RecordUsage records that a person used a room on a calendar day, at most
// once per triple. Person and room existence is not pre-checked; a dangling
// id fails with the store's referential-integrity class.
func (s *UsageService) RecordUsage(ctx context.Context, personID, roomID int64, day time.Time) (persistence.UsageRecord, bool, error) {
	logger := serviceLogger(ctx, s.logger, "usage", "record_usage",
		"person_id", personID, "room_id", roomID)

	if day.IsZero() {
		vErr := &ValidationError{}
		vErr.add("day", "day is required")
		return persistence.UsageRecord{}, false, vErr
	}

	record, created, err := s.store.RecordUsage(ctx, personID, roomID, day)
	if err != nil {
		logger.ErrorContext(ctx, "operation failed", "kind", ErrorKind(err), "error", err)
		return persistence.UsageRecord{}, false, err
	}

	logger.InfoContext(ctx, "usage recorded", "record_id", record.ID, "created", created)
	return record, created, nil
}

// ListUsage returns display projections of usage records, optionally
// filtered to one calendar day.
func (s *UsageService) ListUsage(ctx context.Context, day *time.Time) ([]UsageProjection, error) {
	rows, err := s.store.ListUsage(ctx, day)
	if err != nil {
		return nil, err
	}

	projections := make([]UsageProjection, 0, len(rows))
	for _, row := range rows {
		projections = append(projections, UsageProjection{
			ID:     row.ID,
			Day:    row.Day.Format("2006-01-02"),
			Person: fmt.Sprintf("%d - %s (%s)", row.PersonID, row.PersonName, row.PersonRole),
			Room:   fmt.Sprintf("%d - %s", row.RoomID, row.RoomName),
		})
	}
	return projections, nil
}
