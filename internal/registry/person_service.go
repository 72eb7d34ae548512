package registry

import (
	"context"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/example/campus-registry/internal/credential"
	"github.com/example/campus-registry/internal/persistence"
)

// StudentInput carries the registration form fields for a student.
type StudentInput struct {
	Name               string
	Email              string
	Password           string
	RegistrationNumber string
}

// PersonInput carries the registration form fields for a professor or admin.
type PersonInput struct {
	Name     string
	Email    string
	Password string
}

// UpdatePersonInput overwrites a person's attributes. NewPassword is applied
// only when non-nil.
type UpdatePersonInput struct {
	Name        string
	Email       string
	Role        persistence.Role
	NewPassword *string
}

// PersonService validates input, hashes credentials, and drives the
// idempotent person operations against the store.
type PersonService struct {
	store  persistence.PersonStore
	hasher *credential.Hasher
	logger *slog.Logger
}

// NewPersonService wires dependencies for the person service.
func NewPersonService(store persistence.PersonStore, hasher *credential.Hasher, logger *slog.Logger) *PersonService {
	if hasher == nil {
		hasher = credential.NewHasher(credential.DefaultCost)
	}
	return &PersonService{store: store, hasher: hasher, logger: defaultLogger(logger)}
}

// GetOrCreateStudent creates a student person for a new email or reuses the
// existing person, coercing its role and attaching a student profile as
// needed. The boolean reports whether a person was actually created.
func (s *PersonService) GetOrCreateStudent(ctx context.Context, input StudentInput) (persistence.Person, bool, error) {
	logger := serviceLogger(ctx, s.logger, "person", "get_or_create_student")

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.RegistrationNumber = strings.TrimSpace(input.RegistrationNumber)

	vErr := &ValidationError{}
	validateIdentity(vErr, input.Name, input.Email, input.Password)
	if input.RegistrationNumber == "" {
		vErr.add("registration_number", "registration number is required")
	}
	if vErr.HasErrors() {
		return persistence.Person{}, false, vErr
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return persistence.Person{}, false, err
	}

	person, created, err := s.store.GetOrCreateStudent(ctx, persistence.NewStudent{
		Name:               input.Name,
		Email:              input.Email,
		PasswordHash:       hash,
		RegistrationNumber: input.RegistrationNumber,
	})
	if err != nil {
		logger.ErrorContext(ctx, "operation failed", "kind", ErrorKind(err), "error", err)
		return persistence.Person{}, false, err
	}

	logger.InfoContext(ctx, "student resolved", "person_id", person.ID, "created", created)
	return person, created, nil
}

// GetOrCreateProfessor is the professor counterpart of GetOrCreateStudent.
func (s *PersonService) GetOrCreateProfessor(ctx context.Context, input PersonInput) (persistence.Person, bool, error) {
	logger := serviceLogger(ctx, s.logger, "person", "get_or_create_professor")

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)

	vErr := &ValidationError{}
	validateIdentity(vErr, input.Name, input.Email, input.Password)
	if vErr.HasErrors() {
		return persistence.Person{}, false, vErr
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return persistence.Person{}, false, err
	}

	person, created, err := s.store.GetOrCreateProfessor(ctx, persistence.NewPerson{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
	})
	if err != nil {
		logger.ErrorContext(ctx, "operation failed", "kind", ErrorKind(err), "error", err)
		return persistence.Person{}, false, err
	}

	logger.InfoContext(ctx, "professor resolved", "person_id", person.ID, "created", created)
	return person, created, nil
}

// CreateAdmin creates an admin person for a new email. An existing person is
// returned unchanged; unlike the student and professor paths, no role
// coercion happens here.
func (s *PersonService) CreateAdmin(ctx context.Context, input PersonInput) (persistence.Person, bool, error) {
	logger := serviceLogger(ctx, s.logger, "person", "create_admin")

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)

	vErr := &ValidationError{}
	validateIdentity(vErr, input.Name, input.Email, input.Password)
	if vErr.HasErrors() {
		return persistence.Person{}, false, vErr
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return persistence.Person{}, false, err
	}

	person, created, err := s.store.CreateAdmin(ctx, persistence.NewPerson{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
	})
	if err != nil {
		logger.ErrorContext(ctx, "operation failed", "kind", ErrorKind(err), "error", err)
		return persistence.Person{}, false, err
	}

	logger.InfoContext(ctx, "admin resolved", "person_id", person.ID, "created", created)
	return person, created, nil
}

// UpdatePerson overwrites name, email, and role, replacing the credential
// only when a new password is supplied. A missing id reports false without
// error. Existing profiles are not reconciled against the new role.
func (s *PersonService) UpdatePerson(ctx context.Context, id int64, input UpdatePersonInput) (bool, error) {
	logger := serviceLogger(ctx, s.logger, "person", "update_person", "person_id", id)

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)

	vErr := &ValidationError{}
	validateNameEmail(vErr, input.Name, input.Email)
	if !input.Role.Valid() {
		vErr.add("role", "role must be student, professor, or admin")
	}
	if input.NewPassword != nil && *input.NewPassword == "" {
		vErr.add("password", "new password must not be empty")
	}
	if vErr.HasErrors() {
		return false, vErr
	}

	update := persistence.PersonUpdate{
		Name:  input.Name,
		Email: input.Email,
		Role:  input.Role,
	}
	if input.NewPassword != nil {
		hash, err := s.hasher.Hash(*input.NewPassword)
		if err != nil {
			return false, err
		}
		update.PasswordHash = &hash
	}

	found, err := s.store.UpdatePerson(ctx, id, update)
	if err != nil {
		logger.ErrorContext(ctx, "operation failed", "kind", ErrorKind(err), "error", err)
		return false, err
	}

	logger.InfoContext(ctx, "person updated", "found", found)
	return found, nil
}

// DeletePerson removes a person together with its profiles and usage
// records. A missing id reports false without error.
func (s *PersonService) DeletePerson(ctx context.Context, id int64) (bool, error) {
	logger := serviceLogger(ctx, s.logger, "person", "delete_person", "person_id", id)

	found, err := s.store.DeletePerson(ctx, id)
	if err != nil {
		logger.ErrorContext(ctx, "operation failed", "kind", ErrorKind(err), "error", err)
		return false, err
	}

	logger.InfoContext(ctx, "person deleted", "found", found)
	return found, nil
}

// ListPersons returns persons ordered by display name, optionally filtered
// to one role.
func (s *PersonService) ListPersons(ctx context.Context, role *persistence.Role) ([]persistence.Person, error) {
	if role != nil && !role.Valid() {
		vErr := &ValidationError{}
		vErr.add("role", "role must be student, professor, or admin")
		return nil, vErr
	}
	return s.store.ListPersons(ctx, role)
}

func validateIdentity(vErr *ValidationError, name, email, password string) {
	validateNameEmail(vErr, name, email)
	if password == "" {
		vErr.add("password", "password is required")
	}
}

func validateNameEmail(vErr *ValidationError, name, email string) {
	if name == "" {
		vErr.add("name", "name is required")
	}
	if email == "" {
		vErr.add("email", "email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		vErr.add("email", "email is invalid")
	}
}
