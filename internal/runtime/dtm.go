package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/ntm/pkg/domain"
)

// DTMOption configures a DTM.
type DTMOption func(*DTM)

// WithHistory records a snapshot of every tape after each step.
func WithHistory(keep bool) DTMOption {
	return func(d *DTM) {
		d.history = keep
	}
}

// DTM runs a deterministic k-tape machine.
// When several rules match, the first one returned by the machine lookup is used,
// so under the exact-first policy an exact rule always beats a wildcard rule.
type DTM struct {
	machine *domain.Machine
	history bool
}

// NewDTM creates a deterministic runner for m.
func NewDTM(m *domain.Machine, opts ...DTMOption) (*DTM, error) {
	if m == nil {
		return nil, fmt.Errorf("runner requires a machine")
	}
	d := &DTM{machine: m}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// cancelCheckInterval is how many steps run between context checks.
const cancelCheckInterval = 1024

// Run executes at most maxSteps transitions. Tape 1 holds input; the others start blank.
func (d *DTM) Run(input string, maxSteps int) *domain.RunResult {
	res, _ := d.RunContext(context.Background(), input, maxSteps)
	return res
}

// RunContext is Run with periodic cancellation checks.
func (d *DTM) RunContext(ctx context.Context, input string, maxSteps int) (*domain.RunResult, error) {
	if maxSteps < 0 {
		maxSteps = 0
	}

	k := d.machine.Tapes()
	tapes := make([]domain.Tape, k)
	tapes[0] = domain.NewTape(domain.Symbols(input))
	for i := 1; i < k; i++ {
		tapes[i] = domain.NewTape(nil)
	}

	res := &domain.RunResult{
		Machine:  d.machine.Name(),
		Input:    input,
		MaxSteps: maxSteps,
	}

	state := d.machine.Start()
	finish := func(v domain.Verdict, steps int) *domain.RunResult {
		res.Verdict = v
		res.Steps = steps
		res.FinalState = state
		res.Tapes = snapshots(tapes)
		return res
	}

	for step := 0; ; step++ {
		if step%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if d.machine.IsAccept(state) {
			return finish(domain.VerdictAccepted, step), nil
		}
		if d.machine.IsReject(state) {
			return finish(domain.VerdictRejected, step), nil
		}

		read := make([]domain.Symbol, k)
		for i, t := range tapes {
			read[i] = t.Head()
		}
		rules := d.machine.Transitions(state, read...)
		if len(rules) == 0 {
			return finish(domain.VerdictRejected, step), nil
		}
		if step == maxSteps {
			return finish(domain.VerdictStepLimit, step), nil
		}

		r := rules[0]
		for i := range tapes {
			tapes[i] = tapes[i].Apply(r.Write[i], r.Move[i])
		}
		state = r.To

		if d.history {
			res.History = append(res.History, domain.StepSnapshot{
				Step:  step + 1,
				State: state,
				Via:   r.Label(),
				Tapes: snapshots(tapes),
			})
		}
	}
}

func snapshots(tapes []domain.Tape) []domain.TapeSnapshot {
	out := make([]domain.TapeSnapshot, len(tapes))
	for i, t := range tapes {
		out[i] = t.Snapshot()
	}
	return out
}
