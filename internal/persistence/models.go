package persistence

import "time"

// Role tags a person as one of the three account kinds the registry tracks.
type Role string

const (
	RoleStudent   Role = "student"
	RoleProfessor Role = "professor"
	RoleAdmin     Role = "admin"
)

// Valid reports whether the role is one of the enumerated values.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleProfessor, RoleAdmin:
		return true
	}
	return false
}

// Person represents an identity record in the registry.
type Person struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StudentProfile is the role-specific extension attached to a student person.
// It is owned exclusively by its person and is removed when the person is.
type StudentProfile struct {
	PersonID           int64
	RegistrationNumber string
}

// ProfessorProfile is the role-specific extension attached to a professor
// person. It carries no payload beyond the ownership link; treat it as a
// versioned extension point rather than a fixed shape.
type ProfessorProfile struct {
	PersonID int64
}

// Room represents a physical space in the facility catalog.
type Room struct {
	ID        int64
	Name      string
	Capacity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UsageRecord states that a person used a room on a calendar day. At most one
// record exists per (person, room, day) triple, and the record cannot outlive
// either parent.
type UsageRecord struct {
	ID        int64
	PersonID  int64
	RoomID    int64
	Day       time.Time
	CreatedAt time.Time
}

// UsageRow is the joined read model for a usage record, carrying enough of
// both parents to render a listing without re-entering the store.
type UsageRow struct {
	ID         int64
	Day        time.Time
	PersonID   int64
	PersonName string
	PersonRole Role
	RoomID     int64
	RoomName   string
}
