package ntm_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/ntm"
	"github.com/aretw0/ntm/pkg/adapters/memory"
	"github.com/aretw0/ntm/pkg/domain"
	"github.com/aretw0/ntm/pkg/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
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

const copyTwoTapes = `copy,2
start,copy,qa,qr
a,b
a,b,_
start
qa
qr
start,*,_,copy,*,*,S,S
copy,a,_,copy,a,a,R,R
copy,b,_,copy,b,b,R,R
copy,_,_,qa,_,_,S,S
`

func newEngine(t *testing.T, opts ...ntm.Option) *ntm.Engine {
	t.Helper()
	loader := memory.NewLoader(domain.FormatTM, map[string]string{
		"ends_in_one": endsInOne,
		"copy":        copyTwoTapes,
	})
	eng, err := ntm.New("", append([]ntm.Option{ntm.WithLoader(loader)}, opts...)...)
	require.NoError(t, err)
	return eng
}

func TestEngine_Trace(t *testing.T) {
	var events []domain.EventType
	hooks := domain.LifecycleHooks{
		OnTraceStart: func(_ context.Context, e *domain.TraceEvent) {
			events = append(events, e.Type)
			assert.Nil(t, e.Result)
		},
		OnTraceFinished: func(_ context.Context, e *domain.TraceEvent) {
			events = append(events, e.Type)
			require.NotNil(t, e.Result)
			assert.Equal(t, "0101", e.Input)
		},
	}
	eng := newEngine(t, ntm.WithLifecycleHooks(hooks))

	res, err := eng.Trace(context.Background(), "ends_in_one", "0101", 50)
	require.NoError(t, err)

	assert.Equal(t, domain.VerdictAccepted, res.Verdict)
	assert.Equal(t, 5, res.Depth)
	require.Len(t, res.Path, 6)
	assert.Equal(t, "qa", res.Path[5].State)
	assert.Nil(t, res.Levels, "tree is not retained by default")
	assert.Equal(t, []domain.EventType{domain.EventTraceStart, domain.EventTraceFinished}, events)
}

func TestEngine_TraceOutcomes(t *testing.T) {
	eng := newEngine(t)
	ctx := context.Background()

	res, err := eng.Trace(ctx, "ends_in_one", "0110", 50)
	require.NoError(t, err)
	assert.True(t, res.Rejected())

	res, err = eng.Trace(ctx, "ends_in_one", "0000001", 3)
	require.NoError(t, err)
	assert.True(t, res.DepthExceeded())
	assert.Equal(t, 3, res.Depth)
}

func TestEngine_Errors(t *testing.T) {
	eng := newEngine(t)
	ctx := context.Background()

	_, err := eng.Trace(ctx, "missing", "0", 5)
	assert.ErrorIs(t, err, domain.ErrMachineNotFound)

	_, err = eng.Trace(ctx, "ends_in_one", "012", 5)
	assert.ErrorIs(t, err, domain.ErrInvalidInputSymbol)
	var inputErr *domain.InvalidInputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, 2, inputErr.Position)

	_, err = eng.Trace(ctx, "copy", "ab", 5)
	assert.ErrorIs(t, err, domain.ErrTapeCount)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = eng.Trace(cancelled, "ends_in_one", "01", 5)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_LenientInput(t *testing.T) {
	eng := newEngine(t, ntm.WithStrictInput(false))

	res, err := eng.Trace(context.Background(), "ends_in_one", "2", 5)
	require.NoError(t, err)
	assert.True(t, res.Rejected(), "unknown symbols have no rules")
}

func TestEngine_WildcardPolicy(t *testing.T) {
	spec := domain.MachineSpec{
		Name:   "wild",
		States: []string{"q0", "q1", "qa", "qr"},
		Start:  "q0",
		Accept: "qa",
		Reject: "qr",
		Rules: []domain.Rule{
			{From: "q0", Read: []domain.Symbol{"a"}, To: "q1", Write: []domain.Symbol{"a"}, Move: []domain.Move{domain.MoveStay}},
			{From: "q0", Read: []domain.Symbol{"*"}, To: "qa", Write: []domain.Symbol{"*"}, Move: []domain.Move{domain.MoveStay}},
		},
	}
	loader, err := memory.NewFromSpecs(spec)
	require.NoError(t, err)

	exact, err := ntm.New("", ntm.WithLoader(loader))
	require.NoError(t, err)
	res, err := exact.Trace(context.Background(), "wild", "a", 5)
	require.NoError(t, err)
	assert.True(t, res.Rejected(), "exact rule shadows the wildcard")

	union, err := ntm.New("", ntm.WithLoader(loader), ntm.WithWildcardPolicy(domain.WildcardUnion))
	require.NoError(t, err)
	res, err = union.Trace(context.Background(), "wild", "a", 5)
	require.NoError(t, err)
	assert.True(t, res.Accepted())
	assert.Equal(t, 2.0, res.Degree)

	_, err = ntm.New("", ntm.WithLoader(loader), ntm.WithWildcardPolicy("sometimes"))
	assert.Error(t, err)
}

func TestEngine_Run(t *testing.T) {
	metrics := observability.NewMetrics()
	eng := newEngine(t, ntm.WithHistory(true), ntm.WithLifecycleHooks(metrics.Hooks()))

	res, err := eng.Run(context.Background(), "copy", "abba", 100)
	require.NoError(t, err)

	assert.Equal(t, domain.VerdictAccepted, res.Verdict)
	assert.Equal(t, 6, res.Steps)
	require.Len(t, res.Tapes, 2)
	assert.Equal(t, "abba", res.Tapes[1].Left)
	assert.Len(t, res.History, 6)

	expected := `
# HELP ntm_dtm_steps_total Total number of deterministic steps executed
# TYPE ntm_dtm_steps_total counter
ntm_dtm_steps_total 6
`
	assert.NoError(t, testutil.GatherAndCompare(metrics.Registry(), strings.NewReader(expected), "ntm_dtm_steps_total"))
}

func TestEngine_Validate(t *testing.T) {
	eng := newEngine(t)

	report, err := eng.Validate("ends_in_one")
	require.NoError(t, err)
	assert.NoError(t, report.Err())
	assert.Equal(t, []string{"q0", "q1", "qa"}, report.Reachable)

	ids, err := eng.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"copy", "ends_in_one"}, ids)
}

func TestNew_FileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ends_in_one.tm")
	require.NoError(t, os.WriteFile(path, []byte(endsInOne), 0644))

	eng, err := ntm.New(path)
	require.NoError(t, err)
	assert.Equal(t, "ends_in_one.tm", eng.Name)

	res, err := eng.Trace(context.Background(), "ends_in_one", "1", 10)
	require.NoError(t, err)
	assert.True(t, res.Accepted())
}

func TestNew_LibrarySource(t *testing.T) {
	dir := t.TempDir()
	doc := "---\nid: ends_in_one\ndescription: ends in one\n---\n```tm\n" + endsInOne + "```\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ends_in_one.md"), []byte(doc), 0644))

	eng, err := ntm.New(dir)
	require.NoError(t, err)

	ids, err := eng.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"ends_in_one"}, ids)

	res, err := eng.Trace(context.Background(), "ends_in_one", "11", 10)
	require.NoError(t, err)
	assert.True(t, res.Accepted())
}

func TestNew_RequiresSource(t *testing.T) {
	_, err := ntm.New("")
	assert.Error(t, err)

	_, err = ntm.New(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
