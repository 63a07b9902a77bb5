package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/ntm/internal/compiler"
	"github.com/aretw0/ntm/internal/presentation/report"
	"github.com/aretw0/ntm/internal/runtime"
	"github.com/aretw0/ntm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const endsInOne = `ends_in_one
q0,q1,qa,qr
0,1
0,1,_
q0
qa
qr
q0,0,q0,0,R
q0,1,q0,1,R
q0,1,q1,1,R
q1,_,qa,_,R
`

func trace(t *testing.T, input string, maxDepth int) *domain.TraceResult {
	t.Helper()
	m, err := compiler.NewParser().Parse([]byte(endsInOne), domain.FormatTM)
	require.NoError(t, err)
	tracer, err := runtime.NewTracer(m)
	require.NoError(t, err)
	return tracer.Run(input, maxDepth)
}

func TestTraceText_Accepted(t *testing.T) {
	got := report.TraceText(trace(t, "01", 10))

	for _, want := range []string{
		"=== Tracing NTM: ends_in_one on input '01' ===",
		"✓ Accepted at depth 3.",
		"Depth reached: 3",
		"Total transitions simulated: 4",
		"Nondeterminism = 1.3333 (4/3)",
		"Level 0: '', q0, '01'\n",
		"Level 1: '0', q0, '1'  via q0,0 -> q0,0,R",
		"Level 2: '01', q1, '_'  via q0,1 -> q1,1,R",
		"Level 3: '01_', qa, '_'  via q1,_ -> qa,_,R",
	} {
		assert.Contains(t, got, want)
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxDepth int
		want     string
	}{
		{"rejected", "00", 10, "✗ String rejected in 2 transitions (all branches dead at level 2)."},
		{"depth exceeded", "0000", 2, "⚠ Execution stopped after reaching max_depth = 2 (no accept found)."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := trace(t, tt.input, tt.maxDepth)
			assert.Equal(t, tt.want, report.Outcome(res))
			assert.NotContains(t, report.TraceText(res), "Accepting path")
		})
	}
}

func TestTraceMarkdown(t *testing.T) {
	got := report.TraceMarkdown(trace(t, "1", 10))

	assert.True(t, strings.HasPrefix(got, "# ends_in_one on `1`"))
	assert.Contains(t, got, "| Nondeterminism | 1.5000 (3/2) |")
	assert.Contains(t, got, "| 0 | q0 | `[1]` | - |")
	assert.Contains(t, got, "| 2 | qa | `1_[_]` | q1,_ -> qa,_,R |")
}

func TestWriteTrace_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteTrace(&buf, trace(t, "1", 10), report.FormatJSON))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "accepted", decoded["verdict"])
	assert.Equal(t, 1.5, decoded["nondeterminism"])
	assert.Len(t, decoded["path"], 3)
	assert.NotContains(t, decoded, "Accepting")
}

func TestRunRendering(t *testing.T) {
	res := &domain.RunResult{
		Machine:    "copy",
		Input:      "ab",
		Verdict:    domain.VerdictAccepted,
		Steps:      4,
		MaxSteps:   100,
		FinalState: "qa",
		Tapes: []domain.TapeSnapshot{
			{Left: "ab", Head: "_"},
			{Left: "ab", Head: "_"},
		},
		History: []domain.StepSnapshot{
			{Step: 1, State: "copy", Via: "start,*,_ -> copy,*,*,S,S", Tapes: []domain.TapeSnapshot{{Head: "a", Right: "b"}, {Head: "_"}}},
		},
	}

	text := report.RunText(res)
	assert.Contains(t, text, "✓ Accepted after 4 steps in state qa.")
	assert.Contains(t, text, "Tape 2: ab[_]")
	assert.Contains(t, text, "Step 1: copy [a]b | [_]  via start,*,_ -> copy,*,*,S,S")

	md := report.RunMarkdown(res)
	assert.Contains(t, md, "| 1 | copy | `[a]b; [_]` | start,*,_ -> copy,*,*,S,S |")

	res.Verdict = domain.VerdictStepLimit
	assert.Equal(t, "⚠ Execution stopped after reaching max_steps = 100 in state qa.", report.RunOutcome(res))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]report.Format{
		"":         report.FormatText,
		"text":     report.FormatText,
		"MD":       report.FormatMarkdown,
		"markdown": report.FormatMarkdown,
		"json":     report.FormatJSON,
	} {
		got, err := report.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := report.ParseFormat("xml")
	assert.Error(t, err)
}
