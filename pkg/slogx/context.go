package slogx

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

func FromContext(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(ctxKey{}).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return l
}

// WithActor attaches the authenticated actor's id and tenant to the
// contextual logger so every downstream log line carries them.
func WithActor(ctx context.Context, actorID, tenantID string) context.Context {
	l := FromContext(ctx)
	return WithContext(ctx, l.With("actor_id", actorID, "tenant_id", tenantID))
}
