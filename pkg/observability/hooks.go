package observability

import (
	"context"

	"github.com/aretw0/ntm/pkg/domain"
)

// ChainHooks returns hooks that call every non-nil hook of each set in order.
func ChainHooks(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, s := range sets {
		out.OnTraceStart = chain(out.OnTraceStart, s.OnTraceStart)
		out.OnTraceFinished = chain(out.OnTraceFinished, s.OnTraceFinished)
		out.OnRunStart = chain(out.OnRunStart, s.OnRunStart)
		out.OnRunFinished = chain(out.OnRunFinished, s.OnRunFinished)
	}
	return out
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
