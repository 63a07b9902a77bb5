package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/ntm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, name string) (*domain.Machine, error) {
	t.Helper()
	path := filepath.Join("testdata", name)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return NewParser().Parse(data, domain.FormatFromPath(path))
}

func TestParse_FormatsAgree(t *testing.T) {
	want := []domain.Rule{
		{From: "q0", Read: []domain.Symbol{"0"}, To: "q0", Write: []domain.Symbol{"0"}, Move: []domain.Move{domain.MoveRight}},
		{From: "q0", Read: []domain.Symbol{"1"}, To: "q0", Write: []domain.Symbol{"1"}, Move: []domain.Move{domain.MoveRight}},
		{From: "q0", Read: []domain.Symbol{"1"}, To: "q1", Write: []domain.Symbol{"1"}, Move: []domain.Move{domain.MoveRight}},
		{From: "q1", Read: []domain.Symbol{"_"}, To: "qa", Write: []domain.Symbol{"_"}, Move: []domain.Move{domain.MoveRight}},
	}

	for _, file := range []string{"ends_in_one.tm", "ends_in_one.yaml", "ends_in_one.json"} {
		t.Run(file, func(t *testing.T) {
			m, err := load(t, file)
			require.NoError(t, err)

			assert.Equal(t, "ends_in_one", m.Name())
			assert.Equal(t, 1, m.Tapes())
			assert.Equal(t, "q0", m.Start())
			assert.Equal(t, "qa", m.Accept())
			assert.Equal(t, "qr", m.Reject())
			assert.Equal(t, []string{"q0", "q1", "qa", "qr"}, m.States())
			assert.Equal(t, []domain.Symbol{"0", "1"}, m.InputAlphabet())
			assert.Equal(t, want, m.Rules())
		})
	}
}

func TestParse_MultiTape(t *testing.T) {
	m, err := load(t, "copy.tm")
	require.NoError(t, err)

	assert.Equal(t, "copy", m.Name())
	assert.Equal(t, 2, m.Tapes())
	require.Len(t, m.Rules(), 5)

	first := m.Rules()[0]
	assert.Equal(t, []domain.Symbol{domain.Wildcard, domain.Blank}, first.Read)
	assert.Equal(t, []domain.Move{domain.MoveStay, domain.MoveStay}, first.Move)
}

func TestParse_TMErrors(t *testing.T) {
	header := "m\nq0,qa\na\na,_\nq0\nqa\nqr\n"

	tests := []struct {
		name string
		data string
		line int
	}{
		{name: "missing header", data: "m\nq0,qa\na\n", line: 0},
		{name: "bad tape count", data: "m,zero\nq0,qa\na\na,_\nq0\nqa\nqr\n", line: 1},
		{name: "wrong arity", data: header + "q0,a,qa\n", line: 8},
		{name: "bad move", data: header + "q0,a,qa,a,X\n", line: 8},
		{name: "comment keeps line numbers", data: header + "# note\nq0,a,qa,a,R,R\n", line: 9},
	}

	p := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse([]byte(tt.data), domain.FormatTM)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMachineDefinition)

			var defErr *domain.MachineDefinitionError
			require.ErrorAs(t, err, &defErr)
			assert.Equal(t, tt.line, defErr.Line)
		})
	}
}

func TestParse_MovesDefaultRight(t *testing.T) {
	data := "m\nq0,qa\na\na,_\nq0\nqa\nqr\nq0,a,qa,a\n"
	m, err := NewParser().Parse([]byte(data), domain.FormatTM)
	require.NoError(t, err)
	assert.Equal(t, []domain.Move{domain.MoveRight}, m.Rules()[0].Move)
}

func TestParse_StructuredErrors(t *testing.T) {
	p := NewParser()

	_, err := p.Parse([]byte("name: [unterminated"), domain.FormatYAML)
	assert.ErrorIs(t, err, domain.ErrMachineDefinition)

	_, err = p.Parse([]byte(`{"name": 1,`), domain.FormatJSON)
	assert.ErrorIs(t, err, domain.ErrMachineDefinition)

	_, err = p.Parse([]byte("name: m\nstates: [q0]\nstart: q0\naccept: qa\ntransitions: [\"q0,a,qa\"]\n"), domain.FormatYAML)
	assert.ErrorIs(t, err, domain.ErrMachineDefinition)

	_, err = p.Parse([]byte("x"), domain.Format("toml"))
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, domain.FormatYAML, domain.FormatFromPath("a/b.yml"))
	assert.Equal(t, domain.FormatYAML, domain.FormatFromPath("b.YAML"))
	assert.Equal(t, domain.FormatJSON, domain.FormatFromPath("b.json"))
	assert.Equal(t, domain.FormatTM, domain.FormatFromPath("b.csv"))
	assert.Equal(t, domain.FormatTM, domain.FormatFromPath("b.tm"))
}
