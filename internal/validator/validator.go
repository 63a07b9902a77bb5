package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/ntm/pkg/domain"
)

// Severity ranks a validation finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is a single validation finding.
type Issue struct {
	Severity Severity `json:"severity"`
	State    string   `json:"state,omitempty"`
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	if i.State == "" {
		return fmt.Sprintf("%s: %s", i.Severity, i.Message)
	}
	return fmt.Sprintf("%s: state '%s': %s", i.Severity, i.State, i.Message)
}

// Report collects the findings for one machine.
type Report struct {
	Machine   string   `json:"machine"`
	Reachable []string `json:"reachable"`
	Issues    []Issue  `json:"issues"`
}

// Errors returns the error-level issues.
func (r *Report) Errors() []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			out = append(out, i)
		}
	}
	return out
}

// Err returns nil when the report holds no error-level issue.
func (r *Report) Err() error {
	errs := r.Errors()
	if len(errs) == 0 {
		return nil
	}
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.String()
	}
	return fmt.Errorf("found %d errors:\n- %s", len(errs), strings.Join(lines, "\n- "))
}

// ValidateMachine crawls the state graph from the start state and reports
// unreachable states, dead ends, rules that can never fire, and nondeterministic choices.
// An accept state that cannot be reached from the start state is an error.
func ValidateMachine(m *domain.Machine) *Report {
	report := &Report{Machine: m.Name()}

	visited := make(map[string]bool)
	queue := []string{m.Start()}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true
		report.Reachable = append(report.Reachable, current)

		// Halting states never move.
		if m.IsAccept(current) || m.IsReject(current) {
			continue
		}

		for _, r := range m.RulesFrom(current) {
			if !visited[r.To] {
				queue = append(queue, r.To)
			}
		}
	}

	if !visited[m.Accept()] {
		report.add(SeverityError, m.Accept(), "accept state is unreachable from start state '%s'", m.Start())
	}

	for _, s := range m.States() {
		halting := m.IsAccept(s) || m.IsReject(s)
		rules := m.RulesFrom(s)
		switch {
		case !visited[s]:
			report.add(SeverityWarning, s, "unreachable from start state")
		case !halting && len(rules) == 0:
			report.add(SeverityWarning, s, "no outgoing transitions (implicit reject)")
		}
		if halting && len(rules) > 0 {
			report.add(SeverityWarning, s, "%d transitions leave a halting state and never fire", len(rules))
		}
		if !halting {
			checkChoices(report, s, rules)
		}
	}

	return report
}

// checkChoices flags read tuples with more than one rule. The deterministic
// runner takes the first of them.
func checkChoices(report *Report, state string, rules []domain.Rule) {
	counts := make(map[string]int)
	var order []string
	for _, r := range rules {
		key := joinTuple(r.Read)
		if counts[key] == 0 {
			order = append(order, key)
		}
		counts[key]++
	}
	for _, key := range order {
		if counts[key] > 1 {
			report.add(SeverityInfo, state, "%d rules read (%s)", counts[key], key)
		}
	}
}

func joinTuple(syms []domain.Symbol) string {
	parts := make([]string, len(syms))
	for i, s := range syms {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}

func (r *Report) add(sev Severity, state, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{Severity: sev, State: state, Message: fmt.Sprintf(format, args...)})
}
