package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/campus-registry/internal/persistence"
)

// UsageRepository implements persistence.UsageStore using SQLite.
type UsageRepository struct {
	pool   *ConnectionPool
	mapper *ErrorMapper
}

// NewUsageRepository creates a new SQLite usage-record repository.
func NewUsageRepository(pool *ConnectionPool) *UsageRepository {
	return &UsageRepository{pool: pool, mapper: NewErrorMapper()}
}

// RecordUsage inserts the (person, room, day) triple at most once. The
// conflict clause makes the insert the atomic arbiter: the first call
// creates, every later call for the same triple finds the existing record.
// Foreign keys are not pre-checked; a dangling person or room id surfaces as
// ErrForeignKeyViolation from the insert.
func (r *UsageRepository) RecordUsage(ctx context.Context, personID, roomID int64, day time.Time) (persistence.UsageRecord, bool, error) {
	var record persistence.UsageRecord
	created := false

	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		now := time.Now().UTC()
		result, err := tx.Exec(
			`INSERT INTO usage_records (person_id, room_id, day, created_at) VALUES (?, ?, ?, ?)
			 ON CONFLICT(person_id, room_id, day) DO NOTHING`,
			personID, roomID, formatDay(day), formatTime(now),
		)
		if err != nil {
			return r.mapper.MapError(err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("sqlite: rows affected: %w", err)
		}
		created = affected > 0

		record, err = r.findTripleTx(tx, personID, roomID, day)
		return err
	})
	if err != nil {
		return persistence.UsageRecord{}, false, err
	}
	return record, created, nil
}

// GetUsage retrieves a usage record by id.
func (r *UsageRepository) GetUsage(ctx context.Context, id int64) (persistence.UsageRecord, error) {
	row := r.pool.DB().QueryRowContext(ctx,
		`SELECT id, person_id, room_id, day, created_at FROM usage_records WHERE id = ?`, id)
	return r.scanRecord(row)
}

// ListUsage returns usage rows joined to their person and room, optionally
// restricted to one calendar day. Ordering is by record id, which is stable
// per call; callers needing another order sort themselves.
func (r *UsageRepository) ListUsage(ctx context.Context, day *time.Time) ([]persistence.UsageRow, error) {
	query := `
		SELECT u.id, u.day, p.id, p.name, p.role, rm.id, rm.name
		FROM usage_records u
		JOIN persons p ON p.id = u.person_id
		JOIN rooms rm ON rm.id = u.room_id`
	args := make([]any, 0, 1)
	if day != nil {
		query += ` WHERE u.day = ?`
		args = append(args, formatDay(*day))
	}
	query += ` ORDER BY u.id ASC`

	rows, err := r.pool.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var result []persistence.UsageRow
	for rows.Next() {
		var row persistence.UsageRow
		var dayStr, role string
		if err := rows.Scan(&row.ID, &dayStr, &row.PersonID, &row.PersonName, &role, &row.RoomID, &row.RoomName); err != nil {
			return nil, r.mapper.MapError(err)
		}
		if row.Day, err = parseDay(dayStr); err != nil {
			return nil, err
		}
		row.PersonRole = persistence.Role(role)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}
	return result, nil
}

func (r *UsageRepository) findTripleTx(tx *sql.Tx, personID, roomID int64, day time.Time) (persistence.UsageRecord, error) {
	row := tx.QueryRow(
		`SELECT id, person_id, room_id, day, created_at FROM usage_records
		 WHERE person_id = ? AND room_id = ? AND day = ?`,
		personID, roomID, formatDay(day),
	)
	return r.scanRecord(row)
}

func (r *UsageRepository) scanRecord(row rowScanner) (persistence.UsageRecord, error) {
	var record persistence.UsageRecord
	var dayStr, createdAt string

	err := row.Scan(&record.ID, &record.PersonID, &record.RoomID, &dayStr, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.UsageRecord{}, persistence.ErrNotFound
		}
		return persistence.UsageRecord{}, r.mapper.MapError(err)
	}

	if record.Day, err = parseDay(dayStr); err != nil {
		return persistence.UsageRecord{}, err
	}
	if record.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.UsageRecord{}, err
	}
	return record, nil
}
