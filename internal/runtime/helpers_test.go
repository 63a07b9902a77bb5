package runtime_test

import (
	"strings"
	"testing"

	"github.com/aretw0/ntm/pkg/domain"
	"github.com/stretchr/testify/require"
)

// r builds a rule from the compact form "from,read,to,write,move" with one
// read/write/move element per tape: "q0,a,_,q1,a,a,R,R".
func r(t *testing.T, line string, tapes int) domain.Rule {
	t.Helper()
	f := strings.Split(line, ",")
	require.Len(t, f, 2+3*tapes, "bad rule %q", line)

	rule := domain.Rule{From: f[0], To: f[1+tapes]}
	for i := 0; i < tapes; i++ {
		rule.Read = append(rule.Read, domain.Symbol(f[1+i]))
		rule.Write = append(rule.Write, domain.Symbol(f[2+tapes+i]))
		rule.Move = append(rule.Move, domain.Move(f[2+2*tapes+i]))
	}
	return rule
}

func machine(t *testing.T, start string, lines ...string) *domain.Machine {
	t.Helper()
	return kmachine(t, 1, start, lines...)
}

func kmachine(t *testing.T, tapes int, start string, lines ...string) *domain.Machine {
	t.Helper()
	states := map[string]bool{start: true}
	spec := domain.MachineSpec{
		Name:   t.Name(),
		Tapes:  tapes,
		States: []string{start},
		Start:  start,
		Accept: "qa",
		Reject: "qr",
	}
	for _, l := range lines {
		rule := r(t, l, tapes)
		for _, s := range []string{rule.From, rule.To} {
			if !states[s] {
				states[s] = true
				spec.States = append(spec.States, s)
			}
		}
		spec.Rules = append(spec.Rules, rule)
	}

	m, err := domain.NewMachine(spec)
	require.NoError(t, err)
	return m
}
