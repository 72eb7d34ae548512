package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// schemaMigration is one versioned schema step embedded in the binary.
type schemaMigration struct {
	Version     int
	Description string
	SQL         string
}

// schemaMigrations lists every migration in execution order. Versions are
// append-only; never edit an applied entry.
var schemaMigrations = []schemaMigration{
	{
		Version:     1,
		Description: "create registry tables",
		SQL: `
			CREATE TABLE persons (
				id            INTEGER PRIMARY KEY AUTOINCREMENT,
				name          TEXT NOT NULL CHECK (length(name) > 0),
				email         TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				role          TEXT NOT NULL CHECK (role IN ('student', 'professor', 'admin')),
				created_at    TEXT NOT NULL,
				updated_at    TEXT NOT NULL
			);

			CREATE TABLE student_profiles (
				person_id           INTEGER PRIMARY KEY
				                    REFERENCES persons(id) ON DELETE CASCADE,
				registration_number TEXT NOT NULL UNIQUE
			);

			CREATE TABLE professor_profiles (
				person_id INTEGER PRIMARY KEY
				          REFERENCES persons(id) ON DELETE CASCADE
			);

			CREATE TABLE rooms (
				id         INTEGER PRIMARY KEY AUTOINCREMENT,
				name       TEXT NOT NULL UNIQUE,
				capacity   INTEGER NOT NULL CHECK (capacity >= 0),
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			);

			CREATE TABLE usage_records (
				id         INTEGER PRIMARY KEY AUTOINCREMENT,
				person_id  INTEGER NOT NULL REFERENCES persons(id) ON DELETE CASCADE,
				room_id    INTEGER NOT NULL REFERENCES rooms(id) ON DELETE CASCADE,
				day        TEXT NOT NULL,
				created_at TEXT NOT NULL,
				UNIQUE (person_id, room_id, day)
			);

			CREATE INDEX idx_usage_records_day ON usage_records(day);
			CREATE INDEX idx_usage_records_room ON usage_records(room_id);
		`,
	},
}

// Migrate applies all pending schema migrations. Each migration runs in its
// own transaction and is recorded in schema_migrations, so Migrate is safe to
// call on every startup.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.DB().ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  TEXT NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("sqlite: initialize schema_migrations: %w", err)
	}

	for _, m := range schemaMigrations {
		applied, err := s.migrationApplied(ctx, m.Version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		err = s.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
			if _, err := tx.Exec(m.SQL); err != nil {
				return fmt.Errorf("sqlite: apply migration %d (%s): %w", m.Version, m.Description, err)
			}
			_, err := tx.Exec(
				`INSERT INTO schema_migrations (version, description, applied_at) VALUES (?, ?, ?)`,
				m.Version, m.Description, time.Now().UTC().Format(time.RFC3339),
			)
			if err != nil {
				return fmt.Errorf("sqlite: record migration %d: %w", m.Version, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) migrationApplied(ctx context.Context, version int) (bool, error) {
	var count int
	err := s.pool.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, version,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("sqlite: check migration %d: %w", version, err)
	}
	return count > 0, nil
}
