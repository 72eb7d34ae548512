package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/campus-registry/internal/persistence"
)

// PersonRepository implements persistence.PersonStore using SQLite. Every
// public operation runs as exactly one transaction: lookups, role coercion,
// and inserts commit or roll back together.
type PersonRepository struct {
	pool   *ConnectionPool
	mapper *ErrorMapper
}

// NewPersonRepository creates a new SQLite person repository.
func NewPersonRepository(pool *ConnectionPool) *PersonRepository {
	return &PersonRepository{pool: pool, mapper: NewErrorMapper()}
}

const personColumns = `id, name, email, password_hash, role, created_at, updated_at`

// GetOrCreateStudent looks up a person by email and reuses it, coercing the
// role to student and attaching a student profile when missing. A fresh
// person plus profile is created when the email is unknown. The boolean
// reports whether a new person row was inserted.
//
// Coercing an existing professor leaves its professor profile in storage;
// only the role tag changes.
func (r *PersonRepository) GetOrCreateStudent(ctx context.Context, input persistence.NewStudent) (persistence.Person, bool, error) {
	var person persistence.Person
	created := false

	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		existing, err := r.findByEmailTx(tx, input.Email)
		switch {
		case err == nil:
			person, err = r.adoptRoleTx(tx, existing, persistence.RoleStudent)
			if err != nil {
				return err
			}
			return r.ensureStudentProfileTx(tx, person.ID, input.RegistrationNumber)
		case errors.Is(err, persistence.ErrNotFound):
			person, err = r.insertPersonTx(tx, input.Name, input.Email, input.PasswordHash, persistence.RoleStudent)
			if err != nil {
				return err
			}
			created = true
			return r.insertStudentProfileTx(tx, person.ID, input.RegistrationNumber)
		default:
			return err
		}
	})
	if err != nil {
		return persistence.Person{}, false, err
	}
	return person, created, nil
}

// GetOrCreateProfessor is the professor counterpart of GetOrCreateStudent.
func (r *PersonRepository) GetOrCreateProfessor(ctx context.Context, input persistence.NewPerson) (persistence.Person, bool, error) {
	var person persistence.Person
	created := false

	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		existing, err := r.findByEmailTx(tx, input.Email)
		switch {
		case err == nil:
			person, err = r.adoptRoleTx(tx, existing, persistence.RoleProfessor)
			if err != nil {
				return err
			}
			return r.ensureProfessorProfileTx(tx, person.ID)
		case errors.Is(err, persistence.ErrNotFound):
			person, err = r.insertPersonTx(tx, input.Name, input.Email, input.PasswordHash, persistence.RoleProfessor)
			if err != nil {
				return err
			}
			created = true
			return r.insertProfessorProfileTx(tx, person.ID)
		default:
			return err
		}
	})
	if err != nil {
		return persistence.Person{}, false, err
	}
	return person, created, nil
}

// CreateAdmin looks up a person by email and returns it unchanged when
// present; no role coercion happens on this path. A new admin person is
// created otherwise.
func (r *PersonRepository) CreateAdmin(ctx context.Context, input persistence.NewPerson) (persistence.Person, bool, error) {
	var person persistence.Person
	created := false

	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		existing, err := r.findByEmailTx(tx, input.Email)
		switch {
		case err == nil:
			person = existing
			return nil
		case errors.Is(err, persistence.ErrNotFound):
			person, err = r.insertPersonTx(tx, input.Name, input.Email, input.PasswordHash, persistence.RoleAdmin)
			if err != nil {
				return err
			}
			created = true
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return persistence.Person{}, false, err
	}
	return person, created, nil
}

// UpdatePerson overwrites name, email, and role, and replaces the credential
// only when the update carries one. A missing id reports false without error.
// Profiles are left untouched even when the new role disagrees with them.
func (r *PersonRepository) UpdatePerson(ctx context.Context, id int64, update persistence.PersonUpdate) (bool, error) {
	found := false

	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		now := formatTime(time.Now())

		var result sql.Result
		var err error
		if update.PasswordHash != nil {
			result, err = tx.Exec(
				`UPDATE persons SET name = ?, email = ?, role = ?, password_hash = ?, updated_at = ? WHERE id = ?`,
				update.Name, update.Email, string(update.Role), *update.PasswordHash, now, id,
			)
		} else {
			result, err = tx.Exec(
				`UPDATE persons SET name = ?, email = ?, role = ?, updated_at = ? WHERE id = ?`,
				update.Name, update.Email, string(update.Role), now, id,
			)
		}
		if err != nil {
			return r.mapper.MapError(err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("sqlite: rows affected: %w", err)
		}
		found = affected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// DeletePerson removes a person by id. Profiles and usage records go with it
// through the schema's cascade rules. A missing id reports false.
func (r *PersonRepository) DeletePerson(ctx context.Context, id int64) (bool, error) {
	found := false

	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec(`DELETE FROM persons WHERE id = ?`, id)
		if err != nil {
			return r.mapper.MapError(err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("sqlite: rows affected: %w", err)
		}
		found = affected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// GetPerson retrieves a person by id.
func (r *PersonRepository) GetPerson(ctx context.Context, id int64) (persistence.Person, error) {
	row := r.pool.DB().QueryRowContext(ctx,
		`SELECT `+personColumns+` FROM persons WHERE id = ?`, id)
	return r.scanPerson(row)
}

// ListPersons returns persons ordered by display name ascending with ties
// broken by id, optionally restricted to one role.
func (r *PersonRepository) ListPersons(ctx context.Context, role *persistence.Role) ([]persistence.Person, error) {
	query := `SELECT ` + personColumns + ` FROM persons`
	args := make([]any, 0, 1)
	if role != nil {
		query += ` WHERE role = ?`
		args = append(args, string(*role))
	}
	query += ` ORDER BY name ASC, id ASC`

	rows, err := r.pool.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var persons []persistence.Person
	for rows.Next() {
		person, err := r.scanPerson(rows)
		if err != nil {
			return nil, err
		}
		persons = append(persons, person)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}
	return persons, nil
}

// GetStudentProfile retrieves the student profile owned by a person.
func (r *PersonRepository) GetStudentProfile(ctx context.Context, personID int64) (persistence.StudentProfile, error) {
	var profile persistence.StudentProfile
	err := r.pool.DB().QueryRowContext(ctx,
		`SELECT person_id, registration_number FROM student_profiles WHERE person_id = ?`, personID,
	).Scan(&profile.PersonID, &profile.RegistrationNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.StudentProfile{}, persistence.ErrNotFound
		}
		return persistence.StudentProfile{}, r.mapper.MapError(err)
	}
	return profile, nil
}

// GetProfessorProfile retrieves the professor profile owned by a person.
func (r *PersonRepository) GetProfessorProfile(ctx context.Context, personID int64) (persistence.ProfessorProfile, error) {
	var profile persistence.ProfessorProfile
	err := r.pool.DB().QueryRowContext(ctx,
		`SELECT person_id FROM professor_profiles WHERE person_id = ?`, personID,
	).Scan(&profile.PersonID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.ProfessorProfile{}, persistence.ErrNotFound
		}
		return persistence.ProfessorProfile{}, r.mapper.MapError(err)
	}
	return profile, nil
}

// --- transaction-scoped helpers ---

func (r *PersonRepository) findByEmailTx(tx *sql.Tx, email string) (persistence.Person, error) {
	row := tx.QueryRow(`SELECT `+personColumns+` FROM persons WHERE email = ?`, email)
	return r.scanPerson(row)
}

func (r *PersonRepository) insertPersonTx(tx *sql.Tx, name, email, passwordHash string, role persistence.Role) (persistence.Person, error) {
	now := time.Now().UTC()
	result, err := tx.Exec(
		`INSERT INTO persons (name, email, password_hash, role, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		name, email, passwordHash, string(role), formatTime(now), formatTime(now),
	)
	if err != nil {
		return persistence.Person{}, r.mapper.MapError(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return persistence.Person{}, fmt.Errorf("sqlite: last insert id: %w", err)
	}

	return persistence.Person{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// adoptRoleTx switches the person's role tag when it differs. The previous
// role's profile row stays behind.
func (r *PersonRepository) adoptRoleTx(tx *sql.Tx, person persistence.Person, role persistence.Role) (persistence.Person, error) {
	if person.Role == role {
		return person, nil
	}

	now := time.Now().UTC()
	if _, err := tx.Exec(
		`UPDATE persons SET role = ?, updated_at = ? WHERE id = ?`,
		string(role), formatTime(now), person.ID,
	); err != nil {
		return persistence.Person{}, r.mapper.MapError(err)
	}

	person.Role = role
	person.UpdatedAt = now
	return person, nil
}

func (r *PersonRepository) ensureStudentProfileTx(tx *sql.Tx, personID int64, registrationNumber string) error {
	var existing int64
	err := tx.QueryRow(`SELECT person_id FROM student_profiles WHERE person_id = ?`, personID).Scan(&existing)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return r.mapper.MapError(err)
	}
	return r.insertStudentProfileTx(tx, personID, registrationNumber)
}

func (r *PersonRepository) insertStudentProfileTx(tx *sql.Tx, personID int64, registrationNumber string) error {
	if _, err := tx.Exec(
		`INSERT INTO student_profiles (person_id, registration_number) VALUES (?, ?)`,
		personID, registrationNumber,
	); err != nil {
		return r.mapper.MapError(err)
	}
	return nil
}

func (r *PersonRepository) ensureProfessorProfileTx(tx *sql.Tx, personID int64) error {
	var existing int64
	err := tx.QueryRow(`SELECT person_id FROM professor_profiles WHERE person_id = ?`, personID).Scan(&existing)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return r.mapper.MapError(err)
	}
	return r.insertProfessorProfileTx(tx, personID)
}

func (r *PersonRepository) insertProfessorProfileTx(tx *sql.Tx, personID int64) error {
	if _, err := tx.Exec(
		`INSERT INTO professor_profiles (person_id) VALUES (?)`, personID,
	); err != nil {
		return r.mapper.MapError(err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PersonRepository) scanPerson(row rowScanner) (persistence.Person, error) {
	var person persistence.Person
	var role, createdAt, updatedAt string

	err := row.Scan(&person.ID, &person.Name, &person.Email, &person.PasswordHash, &role, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Person{}, persistence.ErrNotFound
		}
		return persistence.Person{}, r.mapper.MapError(err)
	}

	person.Role = persistence.Role(role)
	if person.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.Person{}, err
	}
	if person.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return persistence.Person{}, err
	}
	return person, nil
}
