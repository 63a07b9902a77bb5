package runtime

import "github.com/aretw0/ntm/pkg/domain"

// walk carries the counters of a single Run.
type walk struct {
	machine *domain.Machine
	res     *domain.TraceResult
	nonleaf int
}

// expand builds the next level from level.
// It stops at the first accepting configuration and returns it instead.
func (w *walk) expand(level []*domain.Configuration) ([]*domain.Configuration, *domain.Configuration) {
	var next []*domain.Configuration
	for _, c := range level {
		w.res.Examined++

		if w.machine.IsAccept(c.State) {
			return nil, c
		}
		if w.machine.IsReject(c.State) {
			continue
		}

		rules := w.machine.Transitions(c.State, c.Tape.Head())
		if len(rules) == 0 {
			// Implicit reject.
			continue
		}

		w.nonleaf++
		w.res.Transitions += len(rules)
		for _, r := range rules {
			next = append(next, c.Child(r))
		}
	}
	return next, nil
}

// classify inspects the last level allowed by the depth bound without expanding it.
func (w *walk) classify(level []*domain.Configuration, depth int) *domain.TraceResult {
	alive := false
	for _, c := range level {
		w.res.Examined++

		switch {
		case w.machine.IsAccept(c.State):
			return w.accept(c, depth)
		case w.machine.IsReject(c.State):
		case len(w.machine.Transitions(c.State, c.Tape.Head())) > 0:
			alive = true
		}
	}
	if alive {
		return w.finish(domain.VerdictDepthExceeded, depth)
	}
	return w.finish(domain.VerdictRejected, depth)
}

func (w *walk) accept(c *domain.Configuration, depth int) *domain.TraceResult {
	res := w.finish(domain.VerdictAccepted, depth)
	res.Accepting = c
	res.Path = Path(c)
	return res
}

func (w *walk) finish(v domain.Verdict, depth int) *domain.TraceResult {
	w.res.Verdict = v
	w.res.Depth = depth
	w.res.Nonleaf = w.nonleaf
	w.res.Degree = Degree(w.res.Transitions, w.nonleaf)
	return w.res
}

// Degree is the average number of transitions per configuration that had any.
// It is 0 when no configuration had an outgoing transition.
func Degree(transitions, nonleaf int) float64 {
	if nonleaf == 0 {
		return 0
	}
	return float64(transitions) / float64(nonleaf)
}

// Path returns the display steps from the root to c.
func Path(c *domain.Configuration) []domain.PathStep {
	configs := c.Path()
	steps := make([]domain.PathStep, len(configs))
	for i, cfg := range configs {
		steps[i] = cfg.Step()
	}
	return steps
}
