package tests

import (
	"testing"

	"github.com/aretw0/ntm/internal/compiler"
	"github.com/aretw0/ntm/pkg/domain"
	"github.com/aretw0/ntm/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MachineLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.MachineLoader.
// expected maps every machine ID the loader holds to the machine name its definition declares.
func MachineLoaderContractTest(t *testing.T, loader ports.MachineLoader, expected map[string]string) {
	t.Helper()
	parser := compiler.NewParser()

	t.Run("GetMachine_Success", func(t *testing.T) {
		for id, name := range expected {
			data, format, err := loader.GetMachine(id)
			require.NoError(t, err, "machine %s", id)

			m, err := parser.Parse(data, format)
			require.NoError(t, err, "machine %s should compile", id)
			assert.Equal(t, name, m.Name())
		}
	})

	t.Run("GetMachine_NotFound", func(t *testing.T) {
		_, _, err := loader.GetMachine("non-existent-machine")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrMachineNotFound)
	})

	t.Run("ListMachines", func(t *testing.T) {
		ids, err := loader.ListMachines()
		require.NoError(t, err)
		assert.Len(t, ids, len(expected))
		assert.IsNonDecreasing(t, ids)

		for id := range expected {
			assert.Contains(t, ids, id)
		}
	})
}
