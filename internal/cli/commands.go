package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/ntm"
	"github.com/aretw0/ntm/internal/presentation/graph"
	"github.com/aretw0/ntm/internal/presentation/report"
	"github.com/aretw0/ntm/internal/presentation/tui"
	"github.com/aretw0/ntm/internal/validator"
	loamAdapter "github.com/aretw0/ntm/pkg/adapters/loam"
	"github.com/aretw0/ntm/pkg/domain"
)

// Process exit codes. The three outcomes of a simulation stay distinct.
const (
	ExitAccepted = 0
	ExitError    = 1
	ExitRejected = 2
	ExitLimit    = 3
)

// ExitCode maps a verdict to its process exit code.
func ExitCode(v domain.Verdict) int {
	switch v {
	case domain.VerdictAccepted:
		return ExitAccepted
	case domain.VerdictRejected:
		return ExitRejected
	default:
		return ExitLimit
	}
}

// TraceOptions configures the trace command.
type TraceOptions struct {
	MaxDepth int
	Format   report.Format
}

// Trace runs the breadth-first tracer and prints the report.
func (s *Session) Trace(ctx context.Context, machine, input string, opts TraceOptions) (int, error) {
	engine, id, err := s.createEngine(machine)
	if err != nil {
		return ExitError, err
	}
	res, err := engine.Trace(ctx, id, input, opts.MaxDepth)
	if err != nil {
		return ExitError, err
	}

	if err := s.write(opts.Format, res.Verdict, report.Outcome(res), func(w io.Writer, f report.Format) error {
		return report.WriteTrace(w, res, f)
	}); err != nil {
		return ExitError, err
	}
	return ExitCode(res.Verdict), nil
}

// RunOptions configures the deterministic run command.
type RunOptions struct {
	MaxSteps int
	Format   report.Format
	History  bool
}

// Run executes the deterministic k-tape runner and prints the report.
func (s *Session) Run(ctx context.Context, machine, input string, opts RunOptions) (int, error) {
	engine, id, err := s.createEngine(machine, ntm.WithHistory(opts.History))
	if err != nil {
		return ExitError, err
	}
	res, err := engine.Run(ctx, id, input, opts.MaxSteps)
	if err != nil {
		return ExitError, err
	}

	if err := s.write(opts.Format, res.Verdict, report.RunOutcome(res), func(w io.Writer, f report.Format) error {
		return report.WriteRun(w, res, f)
	}); err != nil {
		return ExitError, err
	}
	return ExitCode(res.Verdict), nil
}

// write renders a result. On a terminal, markdown goes through glamour and
// text is preceded by a coloured verdict banner.
func (s *Session) write(f report.Format, v domain.Verdict, outcome string, render func(io.Writer, report.Format) error) error {
	if !s.Terminal || f == report.FormatJSON {
		return render(s.Stdout, f)
	}

	if f == report.FormatMarkdown {
		var buf strings.Builder
		if err := render(&buf, f); err != nil {
			return err
		}
		out, err := tui.NewRenderer()(buf.String())
		if err != nil {
			return err
		}
		_, err = io.WriteString(s.Stdout, out)
		return err
	}

	tui.PrintBanner(s.Stdout, v, outcome)
	return render(s.Stdout, f)
}

// GraphOptions configures the graph command.
type GraphOptions struct {
	// Input, when set, overlays the accepting path of a trace on Input.
	Input    *string
	MaxDepth int
}

// Graph prints the Mermaid state diagram of a machine.
func (s *Session) Graph(ctx context.Context, machine string, opts GraphOptions) error {
	engine, id, err := s.createEngine(machine)
	if err != nil {
		return err
	}
	m, err := engine.Machine(id)
	if err != nil {
		return err
	}

	var overlay *graph.GraphOverlay
	if opts.Input != nil {
		res, err := engine.Trace(ctx, id, *opts.Input, opts.MaxDepth)
		if err != nil {
			return err
		}
		overlay = graph.OverlayFromPath(res.Path)
		if overlay == nil {
			s.Logger.Warn("no accepting path to overlay", "verdict", res.Verdict)
		}
	}

	_, err = io.WriteString(s.Stdout, graph.GenerateMermaid(m, overlay))
	return err
}

// TreeOptions configures the tree command.
type TreeOptions struct {
	MaxDepth int
	Limit    int
}

// Tree prints the Mermaid diagram of the configuration tree of a trace.
func (s *Session) Tree(ctx context.Context, machine, input string, opts TreeOptions) (int, error) {
	engine, id, err := s.createEngine(machine, ntm.WithTreeRetention(true))
	if err != nil {
		return ExitError, err
	}
	m, err := engine.Machine(id)
	if err != nil {
		return ExitError, err
	}
	res, err := engine.Trace(ctx, id, input, opts.MaxDepth)
	if err != nil {
		return ExitError, err
	}

	out, err := graph.GenerateTreeMermaid(m, res, opts.Limit)
	if err != nil {
		return ExitError, err
	}
	if _, err := io.WriteString(s.Stdout, out); err != nil {
		return ExitError, err
	}
	return ExitCode(res.Verdict), nil
}

// Validate checks each machine, or every machine of the library when none is named.
// It returns ExitError when any machine fails to load or has an error-level issue.
func (s *Session) Validate(machines []string) (int, error) {
	if len(machines) == 0 {
		engine, err := s.libraryEngine()
		if err != nil {
			return ExitError, err
		}
		if machines, err = engine.List(); err != nil {
			return ExitError, err
		}
	}

	code := ExitAccepted
	for _, machine := range machines {
		r, err := s.validateOne(machine)
		if err != nil {
			fmt.Fprintf(s.Stdout, "%s: %v\n", machine, err)
			code = ExitError
			continue
		}
		if r.Err() != nil {
			code = ExitError
		}
		printReport(s.Stdout, machine, r)
	}
	return code, nil
}

func (s *Session) validateOne(machine string) (*validator.Report, error) {
	engine, id, err := s.createEngine(machine)
	if err != nil {
		return nil, err
	}
	return engine.Validate(id)
}

func printReport(w io.Writer, machine string, r *validator.Report) {
	if r.Err() == nil {
		fmt.Fprintf(w, "%s: valid ✅ (%d reachable states)\n", machine, len(r.Reachable))
	} else {
		fmt.Fprintf(w, "%s: invalid ❌\n", machine)
	}
	for _, issue := range r.Issues {
		fmt.Fprintf(w, "  - %s\n", issue)
	}
}

// List prints the machines of the configured library.
func (s *Session) List() error {
	engine, err := s.libraryEngine()
	if err != nil {
		return err
	}

	if lib, ok := engine.Loader().(*loamAdapter.Loader); ok {
		entries, err := lib.Entries()
		if err != nil {
			return err
		}
		for _, e := range entries {
			if e.Description == "" {
				fmt.Fprintln(s.Stdout, e.ID)
				continue
			}
			fmt.Fprintf(s.Stdout, "%s\t%s\n", e.ID, e.Description)
		}
		return nil
	}

	ids, err := engine.List()
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Fprintln(s.Stdout, id)
	}
	return nil
}
