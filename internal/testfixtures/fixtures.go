// Package testfixtures provides deterministic data builders and a SQLite
// test harness shared across package tests.
package testfixtures

import (
	"fmt"

	"github.com/example/campus-registry/internal/persistence"
)

// FixtureHash is the opaque credential string used wherever a test does not
// care about password verification.
const FixtureHash = "$2a$04$fixturefixturefixturefuJ8tbsLQbMSxzRy0aPurwQIT0OBu8S2"

// StudentInput returns a deterministic student distinguished by n.
func StudentInput(n int) persistence.NewStudent {
	return persistence.NewStudent{
		Name:               fmt.Sprintf("Student %02d", n),
		Email:              fmt.Sprintf("student%02d@campus.test", n),
		PasswordHash:       FixtureHash,
		RegistrationNumber: fmt.Sprintf("S%04d", n),
	}
}

// ProfessorInput returns a deterministic professor distinguished by n.
func ProfessorInput(n int) persistence.NewPerson {
	return persistence.NewPerson{
		Name:         fmt.Sprintf("Professor %02d", n),
		Email:        fmt.Sprintf("professor%02d@campus.test", n),
		PasswordHash: FixtureHash,
	}
}

// AdminInput returns a deterministic admin distinguished by n.
func AdminInput(n int) persistence.NewPerson {
	return persistence.NewPerson{
		Name:         fmt.Sprintf("Admin %02d", n),
		Email:        fmt.Sprintf("admin%02d@campus.test", n),
		PasswordHash: FixtureHash,
	}
}

// RoomName returns a deterministic room name distinguished by n.
func RoomName(n int) string {
	return fmt.Sprintf("Room %02d", n)
}
