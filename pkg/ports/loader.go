package ports

import "github.com/aretw0/ntm/pkg/domain"

// MachineLoader defines how the engine retrieves machine definitions.
// This allows the storage layer (Loam, FS, Memory) to be decoupled.
type MachineLoader interface {
	// GetMachine retrieves the raw definition of a machine by ID together with its format.
	// It returns an error wrapping domain.ErrMachineNotFound when the ID is unknown.
	GetMachine(id string) ([]byte, domain.Format, error)

	// ListMachines returns the IDs of every machine the loader can serve, sorted.
	ListMachines() ([]string, error)
}
