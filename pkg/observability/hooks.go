package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/kinetic/pkg/domain"
)

// Merge combines several hook sets into one. Callbacks run in argument order.
func Merge(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var merged domain.LifecycleHooks
	for _, h := range sets {
		merged.OnFlush = chain(merged.OnFlush, h.OnFlush)
		merged.OnPlayerCreate = chain(merged.OnPlayerCreate, h.OnPlayerCreate)
		merged.OnPlayerDone = chain(merged.OnPlayerDone, h.OnPlayerDone)
		merged.OnPlayerDestroy = chain(merged.OnPlayerDestroy, h.OnPlayerDestroy)
		merged.OnResolveFallback = chain(merged.OnResolveFallback, h.OnResolveFallback)
	}
	return merged
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, ev E) {
		a(ctx, ev)
		b(ctx, ev)
	}
}

// LogHooks logs every lifecycle event at info level, fallbacks at warn.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnFlush: func(ctx context.Context, e *domain.FlushEvent) {
			logger.InfoContext(ctx, "flush",
				"requests", e.Requests,
				"players", e.Players,
				"skipped", e.Skipped,
				"elapsed", e.Elapsed,
			)
		},
		OnPlayerCreate: func(ctx context.Context, e *domain.PlayerEvent) {
			logger.InfoContext(ctx, "player_create", playerAttrs(e)...)
		},
		OnPlayerDone: func(ctx context.Context, e *domain.PlayerEvent) {
			logger.InfoContext(ctx, "player_done", playerAttrs(e)...)
		},
		OnPlayerDestroy: func(ctx context.Context, e *domain.PlayerEvent) {
			logger.InfoContext(ctx, "player_destroy", playerAttrs(e)...)
		},
		OnResolveFallback: func(ctx context.Context, e *domain.FallbackEvent) {
			logger.WarnContext(ctx, "resolve_fallback",
				"element", e.ElementID,
				"property", e.Property,
				"token", e.Token,
				"value", e.Value,
				"cached", e.Cached,
				"err", e.Err,
			)
		},
	}
}

func playerAttrs(e *domain.PlayerEvent) []any {
	return []any{
		"element", e.ElementID,
		"trigger", e.Trigger,
		"from", e.FromState,
		"to", e.ToState,
		"driver", e.Driver,
	}
}
