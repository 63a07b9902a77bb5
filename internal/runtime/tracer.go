package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/ntm/pkg/domain"
)

// TracerOption configures a Tracer.
type TracerOption func(*Tracer)

// WithTreeRetention keeps every level of the configuration tree in the result.
// Without it only the frontier and the parent chains it references stay alive.
func WithTreeRetention(keep bool) TracerOption {
	return func(t *Tracer) {
		t.keepTree = keep
	}
}

// Tracer explores the configuration tree of a one-tape nondeterministic machine
// breadth first. A Tracer holds no per-run state and may be reused.
type Tracer struct {
	machine  *domain.Machine
	keepTree bool
}

// NewTracer creates a tracer for m.
// It returns domain.ErrTapeCount when m has more than one tape.
func NewTracer(m *domain.Machine, opts ...TracerOption) (*Tracer, error) {
	if m == nil {
		return nil, fmt.Errorf("tracer requires a machine")
	}
	if m.Tapes() != 1 {
		return nil, fmt.Errorf("%w: machine %q has %d tapes, tracing needs exactly 1",
			domain.ErrTapeCount, m.Name(), m.Tapes())
	}

	t := &Tracer{machine: m}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Machine returns the machine being traced.
func (t *Tracer) Machine() *domain.Machine {
	return t.machine
}

// Run traces input for at most maxDepth transitions along any branch.
//
// Each level is scanned in order: the first configuration in the accept state ends
// the run, reject-state configurations and configurations without a matching rule
// have no children, and every other configuration gets one child per matching rule.
// The level at maxDepth is classified but never expanded, so a negative or zero
// maxDepth only examines the root.
func (t *Tracer) Run(input string, maxDepth int) *domain.TraceResult {
	res, _ := t.RunContext(context.Background(), input, maxDepth)
	return res
}

// RunContext is Run with cancellation checked before each level.
// On cancellation it returns the context error and no result.
func (t *Tracer) RunContext(ctx context.Context, input string, maxDepth int) (*domain.TraceResult, error) {
	if maxDepth < 0 {
		maxDepth = 0
	}

	w := &walk{
		machine: t.machine,
		res: &domain.TraceResult{
			Machine:  t.machine.Name(),
			Input:    input,
			MaxDepth: maxDepth,
		},
	}

	level := []*domain.Configuration{domain.NewRoot(t.machine.Start(), input)}
	for depth := 0; ; depth++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		w.res.LevelSizes = append(w.res.LevelSizes, len(level))
		if t.keepTree {
			w.res.Levels = append(w.res.Levels, level)
		}

		if depth == maxDepth {
			return w.classify(level, depth), nil
		}

		next, accepted := w.expand(level)
		if accepted != nil {
			return w.accept(accepted, depth), nil
		}
		if len(next) == 0 {
			return w.finish(domain.VerdictRejected, depth), nil
		}
		level = next
	}
}
