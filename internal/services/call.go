package services

import (
	"context"
	"time"

	"github.com/yungbote/storefront-backend/internal/domain/aggregates"
	"github.com/yungbote/storefront-backend/internal/observability"
)

const defaultCollaboratorTimeout = 3 * time.Second

// callCollaborator runs fn under its own deadline and records the outcome.
// A zero timeout means only the parent context bounds the call.
func callCollaborator[T any](
	ctx context.Context,
	metrics *observability.Metrics,
	name string,
	timeout time.Duration,
	fn func(ctx context.Context) (T, error),
) (T, error) {
	callCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	start := time.Now()
	out, err := fn(callCtx)
	metrics.ObserveCollaborator(name, collaboratorOutcome(err), time.Since(start))
	return out, err
}

func collaboratorOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case aggregates.IsCode(err, aggregates.CodeNotFound):
		return "not_found"
	default:
		return "error"
	}
}
