// Package contexthelpers stores request-scoped values shared between the
// middleware chain and the handlers.
package contexthelpers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const (
	isAuthenticatedKey contextKey = "isAuthenticated"
	userIDKey          contextKey = "userID"
	isTrainerKey       contextKey = "isTrainer"
)

// Authenticate marks the request as authenticated for the given user.
func Authenticate(r *http.Request, userID uuid.UUID, isTrainer bool) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, isAuthenticatedKey, true)
	ctx = context.WithValue(ctx, userIDKey, userID)
	ctx = context.WithValue(ctx, isTrainerKey, isTrainer)
	return r.WithContext(ctx)
}

// IsAuthenticated reports whether the request carries an authenticated user.
func IsAuthenticated(ctx context.Context) bool {
	authenticated, ok := ctx.Value(isAuthenticatedKey).(bool)
	return ok && authenticated
}

// AuthenticatedUserID returns the id of the authenticated user. The second
// return value is false when the request is anonymous.
func AuthenticatedUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	return userID, ok
}

// IsTrainer reports whether the authenticated user is a trainer.
func IsTrainer(ctx context.Context) bool {
	isTrainer, ok := ctx.Value(isTrainerKey).(bool)
	return ok && isTrainer
}
