package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/vlourenco/treinoapp/internal/contexthelpers"
	"github.com/vlourenco/treinoapp/internal/errors"
	"github.com/vlourenco/treinoapp/internal/progress"
	"github.com/vlourenco/treinoapp/internal/users"
	"github.com/vlourenco/treinoapp/internal/workout"
)

// apiResponse is the envelope every endpoint answers with.
type apiResponse struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(apiResponse{Data: data, Message: message}); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "failed to write response", slog.Any("error", err))
	}
}

const maxRequestBody = 1 << 20 // 1 MiB

func (app *application) readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error", errors.SlogError(err))
	app.writeJSON(w, r, http.StatusInternalServerError, nil, "internal server error")
}

func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int, message string) {
	app.writeJSON(w, r, status, nil, message)
}

// serviceError maps service sentinels to HTTP statuses.
func (app *application) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, users.ErrInvalidInput),
		errors.Is(err, workout.ErrInvalidInput),
		errors.Is(err, workout.ErrStudentInvalid),
		errors.Is(err, workout.ErrSessionFinished),
		errors.Is(err, progress.ErrInvalidTimezone):
		app.clientError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, users.ErrInvalidCredentials):
		app.clientError(w, r, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, workout.ErrForbidden),
		errors.Is(err, users.ErrNotTrainer),
		errors.Is(err, workout.ErrNotTrainer),
		errors.Is(err, workout.ErrStudentNotLinked):
		app.clientError(w, r, http.StatusForbidden, err.Error())
	case errors.Is(err, users.ErrNotFound), errors.Is(err, workout.ErrNotFound):
		app.clientError(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, users.ErrEmailTaken), errors.Is(err, users.ErrRelationExists):
		app.clientError(w, r, http.StatusConflict, err.Error())
	default:
		app.serverError(w, r, err)
	}
}

// parseUUIDParam parses a path parameter as a UUID. On failure it sends 404
// and reports false.
func (app *application) parseUUIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		app.clientError(w, r, http.StatusNotFound, "not found")
		return uuid.Nil, false
	}
	return id, true
}

// requireSelf checks that the userID path parameter matches the
// authenticated user. User-scoped resources are not visible to anyone else.
func (app *application) requireSelf(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := app.parseUUIDParam(w, r, "userID")
	if !ok {
		return uuid.Nil, false
	}
	authenticatedID, ok := contexthelpers.AuthenticatedUserID(r.Context())
	if !ok || authenticatedID != userID {
		app.clientError(w, r, http.StatusForbidden, "forbidden")
		return uuid.Nil, false
	}
	return userID, true
}
