package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/campus-registry/internal/persistence"
	"github.com/example/campus-registry/internal/registry"
)

var (
	errBadRequestBody  = errors.New("request body is not valid JSON")
	errInvalidPersonID = errors.New("person id must be a positive integer")
	errInvalidDay      = errors.New("day must use the YYYY-MM-DD format")
)

type errorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := http.StatusText(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

// handleServiceError translates the error taxonomy into HTTP statuses:
// validation issues and check-constraint failures are unprocessable input,
// uniqueness and referential failures are conflicts, and missing resources
// are not found. The store error itself is never swallowed silently.
func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("unknown error"))
		return
	}

	var vErr *registry.ValidationError
	switch {
	case errors.As(err, &vErr):
		r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
			Message: "invalid input",
			Errors:  vErr.FieldErrors,
		})
	case errors.Is(err, persistence.ErrNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{Message: "resource not found"})
	case errors.Is(err, persistence.ErrDuplicate):
		r.loggerFor(ctx).WarnContext(ctx, "duplicate record", "error", err)
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{Message: "a record with the same unique value already exists"})
	case errors.Is(err, persistence.ErrForeignKeyViolation):
		r.loggerFor(ctx).WarnContext(ctx, "referential integrity failure", "error", err)
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{Message: "referenced person or room does not exist"})
	case errors.Is(err, persistence.ErrConstraintViolation):
		r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{Message: "input violates a store constraint"})
	default:
		r.loggerFor(ctx).ErrorContext(ctx, "unexpected service error", "error", err)
		r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: "internal server error"})
	}
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
