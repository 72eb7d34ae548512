package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/campus-registry/internal/persistence"
	"github.com/example/campus-registry/internal/testfixtures"
)

func TestGetOrCreateStudentCreatesThenReuses(t *testing.T) {
	store := testfixtures.NewStore(t)
	ctx := context.Background()
	input := testfixtures.StudentInput(1)

	person, created, err := store.Persons.GetOrCreateStudent(ctx, input)
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	if !created {
		t.Error("expected first call to create a person")
	}
	if person.ID == 0 {
		t.Error("expected a non-zero person id")
	}
	if person.Role != persistence.RoleStudent {
		t.Errorf("expected role student, got %q", person.Role)
	}

	again := input
	again.Name = "Someone Else"
	again.RegistrationNumber = "S9999"

	reused, created, err := store.Persons.GetOrCreateStudent(ctx, again)
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if created {
		t.Error("expected second call to reuse the existing person")
	}
	if reused.ID != person.ID {
		t.Errorf("expected id %d, got %d", person.ID, reused.ID)
	}
	if reused.Name != input.Name {
		t.Errorf("expected original name %q to survive, got %q", input.Name, reused.Name)
	}

	profile, err := store.Persons.GetStudentProfile(ctx, person.ID)
	if err != nil {
		t.Fatalf("failed to load student profile: %v", err)
	}
	if profile.RegistrationNumber != input.RegistrationNumber {
		t.Errorf("expected registration number %q, got %q", input.RegistrationNumber, profile.RegistrationNumber)
	}
}

func TestGetOrCreateStudentCoercesProfessor(t *testing.T) {
	store := testfixtures.NewStore(t)
	ctx := context.Background()

	professor, _, err := store.Persons.GetOrCreateProfessor(ctx, testfixtures.ProfessorInput(1))
	if err != nil {
		t.Fatalf("failed to create professor: %v", err)
	}

	input := persistence.NewStudent{
		Name:               "New Display Name",
		Email:              professor.Email,
		PasswordHash:       testfixtures.FixtureHash,
		RegistrationNumber: "S0100",
	}
	person, created, err := store.Persons.GetOrCreateStudent(ctx, input)
	if err != nil {
		t.Fatalf("coercing call failed: %v", err)
	}
	if created {
		t.Error("expected coercion to reuse the professor person")
	}
	if person.ID != professor.ID {
		t.Errorf("expected id %d, got %d", professor.ID, person.ID)
	}
	if person.Role != persistence.RoleStudent {
		t.Errorf("expected role student after coercion, got %q", person.Role)
	}

	if _, err := store.Persons.GetStudentProfile(ctx, professor.ID); err != nil {
		t.Errorf("expected a student profile after coercion: %v", err)
	}
	// The abandoned professor profile stays behind.
	if _, err := store.Persons.GetProfessorProfile(ctx, professor.ID); err != nil {
		t.Errorf("expected the professor profile to remain: %v", err)
	}
}

func TestGetOrCreateProfessorCoercesStudent(t *testing.T) {
	store := testfixtures.NewStore(t)
	ctx := context.Background()

	student, _, err := store.Persons.GetOrCreateStudent(ctx, testfixtures.StudentInput(1))
	if err != nil {
		t.Fatalf("failed to create student: %v", err)
	}

	person, created, err := store.Persons.GetOrCreateProfessor(ctx, persistence.NewPerson{
		Name:         "Ignored",
		Email:        student.Email,
		PasswordHash: testfixtures.FixtureHash,
	})
	if err != nil {
		t.Fatalf("coercing call failed: %v", err)
	}
	if created {
		t.Error("expected coercion to reuse the student person")
	}
	if person.Role != persistence.RoleProfessor {
		t.Errorf("expected role professor after coercion, got %q", person.Role)
	}

	if _, err := store.Persons.GetProfessorProfile(ctx, student.ID); err != nil {
		t.Errorf("expected a professor profile after coercion: %v", err)
	}
	if _, err := store.Persons.GetStudentProfile(ctx, student.ID); err != nil {
		t.Errorf("expected the student profile to remain: %v", err)
	}
}

func TestCreateAdminLeavesExistingRoleAlone(t *testing.T) {
	store := testfixtures.NewStore(t)
	ctx := context.Background()

	student, _, err := store.Persons.GetOrCreateStudent(ctx, testfixtures.StudentInput(1))
	if err != nil {
		t.Fatalf("failed to create student: %v", err)
	}

	person, created, err := store.Persons.CreateAdmin(ctx, persistence.NewPerson{
		Name:         "Ignored",
		Email:        student.Email,
		PasswordHash: testfixtures.FixtureHash,
	})
	if err != nil {
		t.Fatalf("admin call failed: %v", err)
	}
	if created {
		t.Error("expected admin call to reuse the existing person")
	}
	if person.Role != persistence.RoleStudent {
		t.Errorf("expected role to stay student, got %q", person.Role)
	}

	admin, created, err := store.Persons.CreateAdmin(ctx, testfixtures.AdminInput(1))
	if err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}
	if !created {
		t.Error("expected a fresh admin to be created")
	}
	if admin.Role != persistence.RoleAdmin {
		t.Errorf("expected role admin, got %q", admin.Role)
	}
}

func TestGetOrCreateStudentDuplicateRegistrationNumberRollsBack(t *testing.T) {
	store := testfixtures.NewStore(t)
	ctx := context.Background()

	first := testfixtures.StudentInput(1)
	if _, _, err := store.Persons.GetOrCreateStudent(ctx, first); err != nil {
		t.Fatalf("failed to create first student: %v", err)
	}

	second := testfixtures.StudentInput(2)
	second.RegistrationNumber = first.RegistrationNumber

	_, _, err := store.Persons.GetOrCreateStudent(ctx, second)
	if !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	// The person insert must not survive the failed profile insert.
	persons, err := store.Persons.ListPersons(ctx, nil)
	if err != nil {
		t.Fatalf("failed to list persons: %v", err)
	}
	if len(persons) != 1 {
		t.Errorf("expected 1 person after rollback, got %d", len(persons))
	}
}

func TestUpdatePerson(t *testing.T) {
	store := testfixtures.NewStore(t)
	ctx := context.Background()

	person, _, err := store.Persons.GetOrCreateStudent(ctx, testfixtures.StudentInput(1))
	if err != nil {
		t.Fatalf("failed to create student: %v", err)
	}

	found, err := store.Persons.UpdatePerson(ctx, person.ID, persistence.PersonUpdate{
		Name:  "Renamed",
		Email: "renamed@campus.test",
		Role:  persistence.RoleProfessor,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !found {
		t.Fatal("expected the person to be found")
	}

	updated, err := store.Persons.GetPerson(ctx, person.ID)
	if err != nil {
		t.Fatalf("failed to reload person: %v", err)
	}
	if updated.Name != "Renamed" || updated.Email != "renamed@campus.test" {
		t.Errorf("unexpected person after update: %+v", updated)
	}
	if updated.Role != persistence.RoleProfessor {
		t.Errorf("expected role professor, got %q", updated.Role)
	}
	if updated.PasswordHash != testfixtures.FixtureHash {
		t.Error("expected the stored credential to survive a password-less update")
	}

	newHash := "replacement-hash"
	if _, err := store.Persons.UpdatePerson(ctx, person.ID, persistence.PersonUpdate{
		Name:         updated.Name,
		Email:        updated.Email,
		Role:         updated.Role,
		PasswordHash: &newHash,
	}); err != nil {
		t.Fatalf("credential update failed: %v", err)
	}

	updated, err = store.Persons.GetPerson(ctx, person.ID)
	if err != nil {
		t.Fatalf("failed to reload person: %v", err)
	}
	if updated.PasswordHash != newHash {
		t.Errorf("expected credential %q, got %q", newHash, updated.PasswordHash)
	}
}

func TestUpdatePersonMissing(t *testing.T) {
	store := testfixtures.NewStore(t)

	found, err := store.Persons.UpdatePerson(context.Background(), 42, persistence.PersonUpdate{
		Name:  "Nobody",
		Email: "nobody@campus.test",
		Role:  persistence.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected a missing id to report not found")
	}
}

func TestUpdatePersonDuplicateEmail(t *testing.T) {
	store := testfixtures.NewStore(t)
	ctx := context.Background()

	first, _, err := store.Persons.GetOrCreateStudent(ctx, testfixtures.StudentInput(1))
	if err != nil {
		t.Fatalf("failed to create first student: %v", err)
	}
	second, _, err := store.Persons.GetOrCreateStudent(ctx, testfixtures.StudentInput(2))
	if err != nil {
		t.Fatalf("failed to create second student: %v", err)
	}

	_, err = store.Persons.UpdatePerson(ctx, second.ID, persistence.PersonUpdate{
		Name:  second.Name,
		Email: first.Email,
		Role:  second.Role,
	})
	if !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestDeletePersonCascades(t *testing.T) {
	store := testfixtures.NewStore(t)
	ctx := context.Background()

	person, _, err := store.Persons.GetOrCreateStudent(ctx, testfixtures.StudentInput(1))
	if err != nil {
		t.Fatalf("failed to create student: %v", err)
	}

	found, err := store.Persons.DeletePerson(ctx, person.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !found {
		t.Fatal("expected the person to be found")
	}

	if _, err := store.Persons.GetPerson(ctx, person.ID); !errors.Is(err, persistence.ErrNotFound) {
		t.Errorf("expected ErrNotFound for the deleted person, got %v", err)
	}
	if _, err := store.Persons.GetStudentProfile(ctx, person.ID); !errors.Is(err, persistence.ErrNotFound) {
		t.Errorf("expected the profile to cascade, got %v", err)
	}

	found, err = store.Persons.DeletePerson(ctx, person.ID)
	if err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
	if found {
		t.Error("expected the second delete to report not found")
	}
}

func TestListPersons(t *testing.T) {
	store := testfixtures.NewStore(t)
	ctx := context.Background()

	if _, _, err := store.Persons.GetOrCreateProfessor(ctx, persistence.NewPerson{
		Name: "Zoe", Email: "zoe@campus.test", PasswordHash: testfixtures.FixtureHash,
	}); err != nil {
		t.Fatalf("failed to create professor: %v", err)
	}
	if _, _, err := store.Persons.GetOrCreateStudent(ctx, persistence.NewStudent{
		Name: "Ana", Email: "ana@campus.test", PasswordHash: testfixtures.FixtureHash, RegistrationNumber: "S0001",
	}); err != nil {
		t.Fatalf("failed to create student: %v", err)
	}
	if _, _, err := store.Persons.GetOrCreateStudent(ctx, persistence.NewStudent{
		Name: "Mia", Email: "mia@campus.test", PasswordHash: testfixtures.FixtureHash, RegistrationNumber: "S0002",
	}); err != nil {
		t.Fatalf("failed to create student: %v", err)
	}

	persons, err := store.Persons.ListPersons(ctx, nil)
	if err != nil {
		t.Fatalf("failed to list persons: %v", err)
	}
	if len(persons) != 3 {
		t.Fatalf("expected 3 persons, got %d", len(persons))
	}
	for i, want := range []string{"Ana", "Mia", "Zoe"} {
		if persons[i].Name != want {
			t.Errorf("expected %q at position %d, got %q", want, i, persons[i].Name)
		}
	}

	role := persistence.RoleStudent
	students, err := store.Persons.ListPersons(ctx, &role)
	if err != nil {
		t.Fatalf("failed to list students: %v", err)
	}
	if len(students) != 2 {
		t.Fatalf("expected 2 students, got %d", len(students))
	}
	for _, p := range students {
		if p.Role != persistence.RoleStudent {
			t.Errorf("expected only students, got role %q", p.Role)
		}
	}
}
