package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/ntm/internal/compiler"
	"github.com/aretw0/ntm/internal/presentation/graph"
	"github.com/aretw0/ntm/internal/runtime"
	"github.com/aretw0/ntm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const endsInOne = `ends-in-one
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
q1,0,qr,0,S
`

func parse(t *testing.T) *domain.Machine {
	t.Helper()
	m, err := compiler.NewParser().Parse([]byte(endsInOne), domain.FormatTM)
	require.NoError(t, err)
	return m
}

func TestGenerateMermaid(t *testing.T) {
	got := graph.GenerateMermaid(parse(t), nil)

	for _, want := range []string{
		"graph LR",
		`q0(("q0"))`,
		`q1["q1"]`,
		`qa((("qa")))`,
		`qr{{"qr"}}`,
		`q0 -- "0→0,R<br/>1→1,R" --> q0`,
		`q0 -- "1→1,R" --> q1`,
		`q1 -- "_→_,R" --> qa`,
		`q1 -- "0→0,S" --> qr`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
		}
	}
	assert.NotContains(t, got, "classDef")
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	m := parse(t)
	tracer, err := runtime.NewTracer(m)
	require.NoError(t, err)

	res := tracer.Run("01", 10)
	require.True(t, res.Accepted())

	overlay := graph.OverlayFromPath(res.Path)
	require.NotNil(t, overlay)
	assert.Equal(t, "qa", overlay.CurrentState)
	assert.Equal(t, [][2]string{{"q0", "q0"}, {"q0", "q1"}, {"q1", "qa"}}, overlay.Steps)

	got := graph.GenerateMermaid(m, overlay)
	assert.Contains(t, got, "class q0 visited;")
	assert.Contains(t, got, "class q1 visited;")
	assert.Contains(t, got, "class qa current;")
	// Edges 0 (q0->q0), 1 (q0->q1) and 2 (q1->qa) were taken; edge 3 was not.
	assert.Contains(t, got, "linkStyle 0 ")
	assert.Contains(t, got, "linkStyle 2 ")
	assert.NotContains(t, got, "linkStyle 3 ")

	assert.Nil(t, graph.OverlayFromPath(nil))
}

func TestGenerateMermaid_Sanitization(t *testing.T) {
	m, err := domain.NewMachine(domain.MachineSpec{
		Name:   "odd",
		States: []string{"start-1", "end", "a.b"},
		Start:  "start-1",
		Accept: "a.b",
		Rules: []domain.Rule{{
			From: "start-1", Read: []domain.Symbol{`"`}, To: "end",
			Write: []domain.Symbol{`"`}, Move: []domain.Move{domain.MoveLeft},
		}},
	})
	require.NoError(t, err)

	got := graph.GenerateMermaid(m, nil)
	assert.Contains(t, got, `start_1(("start-1"))`)
	assert.Contains(t, got, `end_["end"]`)
	assert.Contains(t, got, `a_b((("a.b")))`)
	assert.Contains(t, got, `start_1 -- "'→',L" --> end_`)
}

func TestGenerateTreeMermaid(t *testing.T) {
	m := parse(t)
	tracer, err := runtime.NewTracer(m, runtime.WithTreeRetention(true))
	require.NoError(t, err)

	res := tracer.Run("1", 5)
	require.True(t, res.Accepted())

	got, err := graph.GenerateTreeMermaid(m, res, 0)
	require.NoError(t, err)

	// Level 0: root. Level 1: two children of the guess on '1'. Level 2: the accepting one.
	assert.Contains(t, got, `c0["q0<br/>[1]"]`)
	assert.Contains(t, got, `c0 -- "q0,1 -> q0,1,R" --> c1`)
	assert.Contains(t, got, `c0 -- "q0,1 -> q1,1,R" --> c2`)
	assert.Contains(t, got, `c3["qa<br/>1_[_]"]`)
	assert.Contains(t, got, "class c0,c2,c3 path;")

	truncated, err := graph.GenerateTreeMermaid(m, res, 2)
	require.NoError(t, err)
	assert.Contains(t, truncated, "%% truncated after 2 configurations")
	assert.NotContains(t, truncated, "c2[")
}

func TestGenerateTreeMermaid_NoTree(t *testing.T) {
	m := parse(t)
	tracer, err := runtime.NewTracer(m)
	require.NoError(t, err)

	_, err = graph.GenerateTreeMermaid(m, tracer.Run("1", 5), 0)
	assert.ErrorIs(t, err, graph.ErrNoTree)
}
