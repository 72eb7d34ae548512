package registry_test

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/example/campus-registry/internal/credential"
	"github.com/example/campus-registry/internal/persistence"
	"github.com/example/campus-registry/internal/registry"
)

// stubPersonStore records the last inputs it received and hands back canned
// results, so service behavior can be observed without a database.
type stubPersonStore struct {
	lastStudent *persistence.NewStudent
	lastPerson  *persistence.NewPerson
	lastUpdate  *persistence.PersonUpdate
	person      persistence.Person
	created     bool
	found       bool
	err         error
}

func (s *stubPersonStore) GetOrCreateStudent(_ context.Context, input persistence.NewStudent) (persistence.Person, bool, error) {
	s.lastStudent = &input
	return s.person, s.created, s.err
}

func (s *stubPersonStore) GetOrCreateProfessor(_ context.Context, input persistence.NewPerson) (persistence.Person, bool, error) {
	s.lastPerson = &input
	return s.person, s.created, s.err
}

func (s *stubPersonStore) CreateAdmin(_ context.Context, input persistence.NewPerson) (persistence.Person, bool, error) {
	s.lastPerson = &input
	return s.person, s.created, s.err
}

func (s *stubPersonStore) UpdatePerson(_ context.Context, _ int64, update persistence.PersonUpdate) (bool, error) {
	s.lastUpdate = &update
	return s.found, s.err
}

func (s *stubPersonStore) DeletePerson(context.Context, int64) (bool, error) {
	return s.found, s.err
}

func (s *stubPersonStore) GetPerson(context.Context, int64) (persistence.Person, error) {
	return s.person, s.err
}

func (s *stubPersonStore) ListPersons(context.Context, *persistence.Role) ([]persistence.Person, error) {
	return []persistence.Person{s.person}, s.err
}

func (s *stubPersonStore) GetStudentProfile(context.Context, int64) (persistence.StudentProfile, error) {
	return persistence.StudentProfile{}, s.err
}

func (s *stubPersonStore) GetProfessorProfile(context.Context, int64) (persistence.ProfessorProfile, error) {
	return persistence.ProfessorProfile{}, s.err
}

func newPersonService(store *stubPersonStore) *registry.PersonService {
	return registry.NewPersonService(store, credential.NewHasher(bcrypt.MinCost), nil)
}

func assertValidationFields(t *testing.T, err error, fields ...string) {
	t.Helper()

	var vErr *registry.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	for _, field := range fields {
		if _, ok := vErr.FieldErrors[field]; !ok {
			t.Errorf("expected a validation error for field %q, got %v", field, vErr.FieldErrors)
		}
	}
}

func TestGetOrCreateStudentValidatesInput(t *testing.T) {
	store := &stubPersonStore{}
	service := newPersonService(store)

	_, _, err := service.GetOrCreateStudent(context.Background(), registry.StudentInput{})
	assertValidationFields(t, err, "name", "email", "password", "registration_number")
	if store.lastStudent != nil {
		t.Error("expected the store to stay untouched on validation failure")
	}

	_, _, err = service.GetOrCreateStudent(context.Background(), registry.StudentInput{
		Name:               "Ana",
		Email:              "not-an-email",
		Password:           "secret",
		RegistrationNumber: "S1",
	})
	assertValidationFields(t, err, "email")
}

func TestGetOrCreateStudentHashesAndTrims(t *testing.T) {
	store := &stubPersonStore{person: persistence.Person{ID: 7}, created: true}
	service := newPersonService(store)

	person, created, err := service.GetOrCreateStudent(context.Background(), registry.StudentInput{
		Name:               "  Ana  ",
		Email:              " ana@campus.test ",
		Password:           "secret123",
		RegistrationNumber: " S1 ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created || person.ID != 7 {
		t.Errorf("unexpected result: person=%+v created=%v", person, created)
	}

	if store.lastStudent == nil {
		t.Fatal("expected the store to be called")
	}
	if store.lastStudent.Name != "Ana" || store.lastStudent.Email != "ana@campus.test" || store.lastStudent.RegistrationNumber != "S1" {
		t.Errorf("expected trimmed input, got %+v", store.lastStudent)
	}
	if store.lastStudent.PasswordHash == "secret123" {
		t.Error("expected the password to be hashed before reaching the store")
	}
	if !credential.Verify("secret123", store.lastStudent.PasswordHash) {
		t.Error("expected the stored hash to verify against the password")
	}
}

func TestGetOrCreateProfessorValidatesInput(t *testing.T) {
	store := &stubPersonStore{}
	service := newPersonService(store)

	_, _, err := service.GetOrCreateProfessor(context.Background(), registry.PersonInput{})
	assertValidationFields(t, err, "name", "email", "password")
	if store.lastPerson != nil {
		t.Error("expected the store to stay untouched on validation failure")
	}
}

func TestCreateAdminHashesPassword(t *testing.T) {
	store := &stubPersonStore{person: persistence.Person{ID: 3}, created: true}
	service := newPersonService(store)

	if _, _, err := service.CreateAdmin(context.Background(), registry.PersonInput{
		Name:     "Root",
		Email:    "root@campus.test",
		Password: "secret123",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.lastPerson == nil {
		t.Fatal("expected the store to be called")
	}
	if !credential.Verify("secret123", store.lastPerson.PasswordHash) {
		t.Error("expected the stored hash to verify against the password")
	}
}

func TestUpdatePersonValidatesInput(t *testing.T) {
	store := &stubPersonStore{}
	service := newPersonService(store)

	empty := ""
	_, err := service.UpdatePerson(context.Background(), 1, registry.UpdatePersonInput{
		Name:        "Ana",
		Email:       "ana@campus.test",
		Role:        "superuser",
		NewPassword: &empty,
	})
	assertValidationFields(t, err, "role", "password")
	if store.lastUpdate != nil {
		t.Error("expected the store to stay untouched on validation failure")
	}
}

func TestUpdatePersonPasswordIsOptional(t *testing.T) {
	store := &stubPersonStore{found: true}
	service := newPersonService(store)

	found, err := service.UpdatePerson(context.Background(), 1, registry.UpdatePersonInput{
		Name:  "Ana",
		Email: "ana@campus.test",
		Role:  persistence.RoleStudent,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Error("expected the person to be found")
	}
	if store.lastUpdate.PasswordHash != nil {
		t.Error("expected no credential change without a new password")
	}

	newPassword := "rotated456"
	if _, err := service.UpdatePerson(context.Background(), 1, registry.UpdatePersonInput{
		Name:        "Ana",
		Email:       "ana@campus.test",
		Role:        persistence.RoleStudent,
		NewPassword: &newPassword,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.lastUpdate.PasswordHash == nil {
		t.Fatal("expected a credential change")
	}
	if !credential.Verify("rotated456", *store.lastUpdate.PasswordHash) {
		t.Error("expected the new hash to verify against the new password")
	}
}

func TestListPersonsRejectsUnknownRole(t *testing.T) {
	service := newPersonService(&stubPersonStore{})

	role := persistence.Role("superuser")
	_, err := service.ListPersons(context.Background(), &role)
	assertValidationFields(t, err, "role")
}
