package persistence

import (
	"context"
	"time"
)

// NewStudent carries the attributes needed to create or reuse a student
// person. PasswordHash is the opaque credential string; the store never sees
// a plaintext password.
type NewStudent struct {
	Name               string
	Email              string
	PasswordHash       string
	RegistrationNumber string
}

// NewPerson carries the attributes needed to create or reuse a professor or
// admin person.
type NewPerson struct {
	Name         string
	Email        string
	PasswordHash string
}

// PersonUpdate overwrites a person's mutable attributes. PasswordHash is
// applied only when non-nil; a nil value keeps the stored credential.
type PersonUpdate struct {
	Name         string
	Email        string
	Role         Role
	PasswordHash *string
}

// PersonStore exposes the idempotent person operations. Each method runs as
// one atomic unit of work: it commits on success and rolls back on error.
// The boolean result of the get-or-create operations reports whether a new
// person was actually created.
type PersonStore interface {
	GetOrCreateStudent(ctx context.Context, input NewStudent) (Person, bool, error)
	GetOrCreateProfessor(ctx context.Context, input NewPerson) (Person, bool, error)
	CreateAdmin(ctx context.Context, input NewPerson) (Person, bool, error)
	UpdatePerson(ctx context.Context, id int64, update PersonUpdate) (bool, error)
	DeletePerson(ctx context.Context, id int64) (bool, error)
	GetPerson(ctx context.Context, id int64) (Person, error)
	ListPersons(ctx context.Context, role *Role) ([]Person, error)
	GetStudentProfile(ctx context.Context, personID int64) (StudentProfile, error)
	GetProfessorProfile(ctx context.Context, personID int64) (ProfessorProfile, error)
}

// RoomStore exposes the idempotent room operations. The capacity argument of
// GetOrCreateRoom is ignored when the named room already exists.
type RoomStore interface {
	GetOrCreateRoom(ctx context.Context, name string, capacity int) (Room, bool, error)
	GetRoom(ctx context.Context, id int64) (Room, error)
	ListRooms(ctx context.Context) ([]Room, error)
}

// UsageStore exposes the idempotent usage-record operations. RecordUsage does
// not pre-validate its foreign keys; a dangling person or room surfaces as
// ErrForeignKeyViolation from the insert itself.
type UsageStore interface {
	RecordUsage(ctx context.Context, personID, roomID int64, day time.Time) (UsageRecord, bool, error)
	GetUsage(ctx context.Context, id int64) (UsageRecord, error)
	ListUsage(ctx context.Context, day *time.Time) ([]UsageRow, error)
}
