package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/ntm/pkg/domain"
)

// Format selects how a result is rendered.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat converts a format name into a Format. The empty string selects FormatText.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatText:
		return FormatText, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown report format %q", s)
	}
}

// WriteTrace renders a trace result to w.
func WriteTrace(w io.Writer, res *domain.TraceResult, f Format) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, res)
	case FormatMarkdown:
		_, err := io.WriteString(w, TraceMarkdown(res))
		return err
	default:
		_, err := io.WriteString(w, TraceText(res))
		return err
	}
}

// WriteRun renders a deterministic run result to w.
func WriteRun(w io.Writer, res *domain.RunResult, f Format) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, res)
	case FormatMarkdown:
		_, err := io.WriteString(w, RunMarkdown(res))
		return err
	default:
		_, err := io.WriteString(w, RunText(res))
		return err
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Nondeterminism formats the degree as "x.xxxx (transitions/nonleaf)".
func Nondeterminism(res *domain.TraceResult) string {
	return fmt.Sprintf("%.4f (%d/%d)", res.Degree, res.Transitions, res.Nonleaf)
}

// Outcome is the one-line verdict of a trace.
func Outcome(res *domain.TraceResult) string {
	switch res.Verdict {
	case domain.VerdictAccepted:
		return fmt.Sprintf("✓ Accepted at depth %d.", res.Depth)
	case domain.VerdictRejected:
		return fmt.Sprintf("✗ String rejected in %d transitions (all branches dead at level %d).", res.Depth, res.Depth)
	default:
		return fmt.Sprintf("⚠ Execution stopped after reaching max_depth = %d (no accept found).", res.MaxDepth)
	}
}

// TraceText is the plain console rendering of a trace.
func TraceText(res *domain.TraceResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Tracing NTM: %s on input '%s' ===\n", res.Machine, res.Input)
	sb.WriteString(Outcome(res) + "\n")

	sb.WriteString("\n--- SUMMARY ---\n")
	fmt.Fprintf(&sb, "Machine: %s\n", res.Machine)
	fmt.Fprintf(&sb, "Input: %s\n", res.Input)
	fmt.Fprintf(&sb, "Depth reached: %d\n", res.Depth)
	fmt.Fprintf(&sb, "Total transitions simulated: %d\n", res.Transitions)
	fmt.Fprintf(&sb, "Configurations examined: %d\n", res.Examined)
	fmt.Fprintf(&sb, "Nondeterminism = %s\n", Nondeterminism(res))

	if len(res.Path) > 0 {
		sb.WriteString("\nAccepting path:\n")
		for _, step := range res.Path {
			fmt.Fprintf(&sb, "Level %d: '%s', %s, '%s%s'", step.Depth, step.Left, step.State, step.Head, step.Right)
			if step.Via != "" {
				fmt.Fprintf(&sb, "  via %s", step.Via)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// TraceMarkdown renders a trace as a Markdown document.
func TraceMarkdown(res *domain.TraceResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s on `%s`\n\n", res.Machine, displayInput(res.Input))
	fmt.Fprintf(&sb, "**%s**\n\n", Outcome(res))

	sb.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Verdict | %s |\n", res.Verdict)
	fmt.Fprintf(&sb, "| Depth | %d (max %d) |\n", res.Depth, res.MaxDepth)
	fmt.Fprintf(&sb, "| Transitions | %d |\n", res.Transitions)
	fmt.Fprintf(&sb, "| Configurations | %d |\n", res.Examined)
	fmt.Fprintf(&sb, "| Nondeterminism | %s |\n", Nondeterminism(res))

	if len(res.Path) > 0 {
		sb.WriteString("\n## Accepting path\n\n")
		sb.WriteString("| Level | State | Tape | Via |\n|---|---|---|---|\n")
		for _, step := range res.Path {
			fmt.Fprintf(&sb, "| %d | %s | `%s[%s]%s` | %s |\n",
				step.Depth, step.State, step.Left, step.Head, step.Right, cell(step.Via))
		}
	}
	return sb.String()
}

// RunOutcome is the one-line verdict of a deterministic run.
func RunOutcome(res *domain.RunResult) string {
	switch res.Verdict {
	case domain.VerdictAccepted:
		return fmt.Sprintf("✓ Accepted after %d steps in state %s.", res.Steps, res.FinalState)
	case domain.VerdictRejected:
		return fmt.Sprintf("✗ Rejected after %d steps in state %s.", res.Steps, res.FinalState)
	default:
		return fmt.Sprintf("⚠ Execution stopped after reaching max_steps = %d in state %s.", res.MaxSteps, res.FinalState)
	}
}

// RunText is the plain console rendering of a deterministic run.
func RunText(res *domain.RunResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Running DTM: %s on input '%s' ===\n", res.Machine, res.Input)
	sb.WriteString(RunOutcome(res) + "\n")
	for i, t := range res.Tapes {
		fmt.Fprintf(&sb, "Tape %d: %s[%s]%s\n", i+1, t.Left, t.Head, t.Right)
	}
	if len(res.History) > 0 {
		sb.WriteString("\nHistory:\n")
		for _, h := range res.History {
			fmt.Fprintf(&sb, "Step %d: %s %s  via %s\n", h.Step, h.State, tapes(h.Tapes, " | "), h.Via)
		}
	}
	return sb.String()
}

// RunMarkdown renders a deterministic run as a Markdown document.
func RunMarkdown(res *domain.RunResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s on `%s`\n\n", res.Machine, displayInput(res.Input))
	fmt.Fprintf(&sb, "**%s**\n\n", RunOutcome(res))

	sb.WriteString("| Tape | Content |\n|---|---|\n")
	for i, t := range res.Tapes {
		fmt.Fprintf(&sb, "| %d | `%s[%s]%s` |\n", i+1, t.Left, t.Head, t.Right)
	}
	if len(res.History) > 0 {
		sb.WriteString("\n## History\n\n| Step | State | Tapes | Via |\n|---|---|---|---|\n")
		for _, h := range res.History {
			fmt.Fprintf(&sb, "| %d | %s | `%s` | %s |\n", h.Step, h.State, tapes(h.Tapes, "; "), cell(h.Via))
		}
	}
	return sb.String()
}

func tapes(ts []domain.TapeSnapshot, sep string) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = fmt.Sprintf("%s[%s]%s", t.Left, t.Head, t.Right)
	}
	return strings.Join(parts, sep)
}

// cell escapes a value for a Markdown table cell.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", "\\|")
}

func displayInput(s string) string {
	if s == "" {
		return "ε"
	}
	return s
}
