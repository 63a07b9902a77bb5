package memory_test

import (
	"testing"

	"github.com/aretw0/ntm/pkg/adapters/memory"
	"github.com/aretw0/ntm/pkg/domain"
	contract "github.com/aretw0/ntm/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const acceptAll = `accept_all
q0,qa,qr
a
a,_
q0
qa
qr
q0,*,qa,*,S
`

func TestInMemoryLoader_Contract(t *testing.T) {
	loader := memory.NewLoader(domain.FormatTM, map[string]string{
		"first":  acceptAll,
		"second": acceptAll,
	})

	contract.MachineLoaderContractTest(t, loader, map[string]string{
		"first":  "accept_all",
		"second": "accept_all",
	})
}

func TestNewFromSpecs(t *testing.T) {
	spec := domain.MachineSpec{
		Name:   "one_a",
		States: []string{"q0", "qa"},
		Start:  "q0",
		Accept: "qa",
		Rules: []domain.Rule{{
			From: "q0", Read: []domain.Symbol{"a"}, To: "qa",
			Write: []domain.Symbol{"a"}, Move: []domain.Move{domain.MoveRight},
		}},
	}

	loader, err := memory.NewFromSpecs(spec)
	require.NoError(t, err)
	contract.MachineLoaderContractTest(t, loader, map[string]string{"one_a": "one_a"})

	data, format, err := loader.GetMachine("one_a")
	require.NoError(t, err)
	assert.Equal(t, domain.FormatJSON, format)
	assert.Contains(t, string(data), `"transitions"`)
}

func TestNewFromSpecs_Errors(t *testing.T) {
	_, err := memory.NewFromSpecs(domain.MachineSpec{})
	assert.Error(t, err)

	s := domain.MachineSpec{Name: "dup"}
	_, err = memory.NewFromSpecs(s, s)
	assert.Error(t, err)
}
