package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/campus-registry/internal/persistence"
)

// RoomRepository implements persistence.RoomStore using SQLite.
type RoomRepository struct {
	pool   *ConnectionPool
	mapper *ErrorMapper
}

// NewRoomRepository creates a new SQLite room repository.
func NewRoomRepository(pool *ConnectionPool) *RoomRepository {
	return &RoomRepository{pool: pool, mapper: NewErrorMapper()}
}

const roomColumns = `id, name, capacity, created_at, updated_at`

// GetOrCreateRoom creates a room once per unique name. The insert uses
// SQLite's conflict clause so two concurrent calls cannot both create; the
// capacity argument is ignored whenever the named room already exists. A
// negative capacity fails the schema check constraint.
func (r *RoomRepository) GetOrCreateRoom(ctx context.Context, name string, capacity int) (persistence.Room, bool, error) {
	var room persistence.Room
	created := false

	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		now := time.Now().UTC()
		result, err := tx.Exec(
			`INSERT INTO rooms (name, capacity, created_at, updated_at) VALUES (?, ?, ?, ?)
			 ON CONFLICT(name) DO NOTHING`,
			name, capacity, formatTime(now), formatTime(now),
		)
		if err != nil {
			return r.mapper.MapError(err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("sqlite: rows affected: %w", err)
		}
		created = affected > 0

		room, err = r.findByNameTx(tx, name)
		return err
	})
	if err != nil {
		return persistence.Room{}, false, err
	}
	return room, created, nil
}

// GetRoom retrieves a room by id.
func (r *RoomRepository) GetRoom(ctx context.Context, id int64) (persistence.Room, error) {
	row := r.pool.DB().QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE id = ?`, id)
	return r.scanRoom(row)
}

// ListRooms returns all rooms ordered by name ascending.
func (r *RoomRepository) ListRooms(ctx context.Context) ([]persistence.Room, error) {
	rows, err := r.pool.DB().QueryContext(ctx,
		`SELECT `+roomColumns+` FROM rooms ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var rooms []persistence.Room
	for rows.Next() {
		room, err := r.scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}
	return rooms, nil
}

func (r *RoomRepository) findByNameTx(tx *sql.Tx, name string) (persistence.Room, error) {
	row := tx.QueryRow(`SELECT `+roomColumns+` FROM rooms WHERE name = ?`, name)
	return r.scanRoom(row)
}

func (r *RoomRepository) scanRoom(row rowScanner) (persistence.Room, error) {
	var room persistence.Room
	var createdAt, updatedAt string

	err := row.Scan(&room.ID, &room.Name, &room.Capacity, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Room{}, persistence.ErrNotFound
		}
		return persistence.Room{}, r.mapper.MapError(err)
	}

	if room.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.Room{}, err
	}
	if room.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return persistence.Room{}, err
	}
	return room, nil
}
