package domain

// Verdict is the outcome of a simulation. The variants are mutually exclusive.
type Verdict string

const (
	VerdictAccepted      Verdict = "accepted"
	VerdictRejected      Verdict = "rejected"
	VerdictDepthExceeded Verdict = "depth_exceeded"
	// VerdictStepLimit is the deterministic runner's counterpart of VerdictDepthExceeded.
	VerdictStepLimit Verdict = "step_limit"
)

// PathStep is the display form of one configuration on an accepting path.
type PathStep struct {
	Depth int    `json:"depth"`
	Left  string `json:"left"`
	State string `json:"state"`
	Head  string `json:"head"`
	Right string `json:"right"`
	Via   string `json:"via,omitempty"`
}

// Tape renders the visible tape of the step.
func (s PathStep) Tape() string { return s.Left + s.Head + s.Right }

// TraceResult is the outcome of a breadth-first trace.
//
// Depth is the accepting depth, the depth at which every branch died, or MaxDepth when
// the bound was reached. Degree is Transitions/Nonleaf, and 0 when no configuration
// had an outgoing transition. Path is set only for accepted runs.
type TraceResult struct {
	Machine     string     `json:"machine"`
	Input       string     `json:"input"`
	Verdict     Verdict    `json:"verdict"`
	Depth       int        `json:"depth"`
	MaxDepth    int        `json:"max_depth"`
	Transitions int        `json:"transitions"`
	Nonleaf     int        `json:"nonleaf"`
	Degree      float64    `json:"nondeterminism"`
	Examined    int        `json:"examined"`
	LevelSizes  []int      `json:"level_sizes"`
	Path        []PathStep `json:"path,omitempty"`

	// Accepting is the accepting configuration; its Parent chain is the path.
	Accepting *Configuration `json:"-"`
	// Levels holds every level of the tree when tree retention is enabled.
	Levels [][]*Configuration `json:"-"`
}

func (r *TraceResult) Accepted() bool      { return r.Verdict == VerdictAccepted }
func (r *TraceResult) Rejected() bool      { return r.Verdict == VerdictRejected }
func (r *TraceResult) DepthExceeded() bool { return r.Verdict == VerdictDepthExceeded }

// StepSnapshot records a deterministic run after one step.
type StepSnapshot struct {
	Step  int            `json:"step"`
	State string         `json:"state"`
	Via   string         `json:"via,omitempty"`
	Tapes []TapeSnapshot `json:"tapes"`
}

// RunResult is the outcome of a deterministic k-tape run.
type RunResult struct {
	Machine    string         `json:"machine"`
	Input      string         `json:"input"`
	Verdict    Verdict        `json:"verdict"`
	Steps      int            `json:"steps"`
	MaxSteps   int            `json:"max_steps"`
	FinalState string         `json:"final_state"`
	Tapes      []TapeSnapshot `json:"tapes"`
	History    []StepSnapshot `json:"history,omitempty"`
}
