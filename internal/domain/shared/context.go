package shared

import (
	"context"

	"github.com/google/uuid"
)

type actorKey struct{}

// WithActor returns a context carrying the acting user's ID
func WithActor(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorFromContext returns the acting user's ID, if one was attached
func ActorFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(actorKey{}).(uuid.UUID)
	return id, ok
}
