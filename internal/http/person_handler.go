package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/campus-registry/internal/persistence"
	"github.com/example/campus-registry/internal/registry"
)

// PersonDirectory captures the person operations the handler needs.
type PersonDirectory interface {
	GetOrCreateStudent(ctx context.Context, input registry.StudentInput) (persistence.Person, bool, error)
	GetOrCreateProfessor(ctx context.Context, input registry.PersonInput) (persistence.Person, bool, error)
	CreateAdmin(ctx context.Context, input registry.PersonInput) (persistence.Person, bool, error)
	UpdatePerson(ctx context.Context, id int64, input registry.UpdatePersonInput) (bool, error)
	DeletePerson(ctx context.Context, id int64) (bool, error)
	ListPersons(ctx context.Context, role *persistence.Role) ([]persistence.Person, error)
}

// PersonHandler serves the person endpoints.
type PersonHandler struct {
	directory PersonDirectory
	responder responder
}

// NewPersonHandler creates a handler over the person operations.
func NewPersonHandler(directory PersonDirectory, logger *slog.Logger) *PersonHandler {
	return &PersonHandler{directory: directory, responder: newResponder(logger)}
}

type personResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toPersonResponse(p persistence.Person) personResponse {
	return personResponse{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Role:      string(p.Role),
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type createdPersonResponse struct {
	Person  personResponse `json:"person"`
	Created bool           `json:"created"`
}

type createStudentRequest struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	Password           string `json:"password"`
	RegistrationNumber string `json:"registration_number"`
}

type createPersonRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updatePersonRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	NewPassword *string `json:"new_password"`
}

// CreateStudent handles POST /students.
func (h *PersonHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	person, created, err := h.directory.GetOrCreateStudent(ctx, registry.StudentInput{
		Name:               req.Name,
		Email:              req.Email,
		Password:           req.Password,
		RegistrationNumber: req.RegistrationNumber,
	})
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, createdStatus(created), createdPersonResponse{
		Person:  toPersonResponse(person),
		Created: created,
	})
}

// CreateProfessor handles POST /professors.
func (h *PersonHandler) CreateProfessor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createPersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	person, created, err := h.directory.GetOrCreateProfessor(ctx, registry.PersonInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, createdStatus(created), createdPersonResponse{
		Person:  toPersonResponse(person),
		Created: created,
	})
}

// CreateAdmin handles POST /admins.
func (h *PersonHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createPersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	person, created, err := h.directory.CreateAdmin(ctx, registry.PersonInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, createdStatus(created), createdPersonResponse{
		Person:  toPersonResponse(person),
		Created: created,
	})
}

// Update handles PUT /persons/{id}.
func (h *PersonHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := PersonIDFromContext(ctx)
	if !ok {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidPersonID)
		return
	}

	var req updatePersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	found, err := h.directory.UpdatePerson(ctx, id, registry.UpdatePersonInput{
		Name:        req.Name,
		Email:       req.Email,
		Role:        persistence.Role(req.Role),
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}
	if !found {
		h.responder.writeJSON(ctx, w, http.StatusNotFound, errorResponse{Message: "person not found"})
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusNoContent, nil)
}

// Delete handles DELETE /persons/{id}.
func (h *PersonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := PersonIDFromContext(ctx)
	if !ok {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidPersonID)
		return
	}

	found, err := h.directory.DeletePerson(ctx, id)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}
	if !found {
		h.responder.writeJSON(ctx, w, http.StatusNotFound, errorResponse{Message: "person not found"})
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusNoContent, nil)
}

// List handles GET /persons with an optional role query parameter.
func (h *PersonHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var role *persistence.Role
	if value := r.URL.Query().Get("role"); value != "" {
		parsed := persistence.Role(value)
		role = &parsed
	}

	persons, err := h.directory.ListPersons(ctx, role)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	out := make([]personResponse, 0, len(persons))
	for _, p := range persons {
		out = append(out, toPersonResponse(p))
	}
	h.responder.writeJSON(ctx, w, http.StatusOK, out)
}

func createdStatus(created bool) int {
	if created {
		return http.StatusCreated
	}
	return http.StatusOK
}
