// Package ctxutil carries per-request identity through context.Context.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey int

const (
	actorKey ctxKey = iota
	requestIDKey
)

// Actor is the authenticated caller attached by the auth middleware.
type Actor struct {
	UserID uuid.UUID
	Role   string
}

// WithActor stores the authenticated caller in the context.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey, a)
}

// ActorFromCtx returns the caller, or false when the request is anonymous.
func ActorFromCtx(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey).(Actor)
	if !ok || a.UserID == uuid.Nil {
		return Actor{}, false
	}
	return a, true
}

// WithUserID is shorthand for WithActor with an empty role.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return WithActor(ctx, Actor{UserID: id})
}

// UserIDFromCtx extracts the caller's user ID.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	a, ok := ActorFromCtx(ctx)
	return a.UserID, ok
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx returns the request ID or "".
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
