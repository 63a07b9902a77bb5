package memory

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/aretw0/ntm/pkg/domain"
)

type entry struct {
	data   []byte
	format domain.Format
}

// Loader implements ports.MachineLoader using an in-memory map.
type Loader struct {
	machines map[string]entry
}

// NewLoader creates a new in-memory loader with raw definitions that all share one format.
func NewLoader(format domain.Format, data map[string]string) *Loader {
	machines := make(map[string]entry, len(data))
	for k, v := range data {
		machines[k] = entry{data: []byte(v), format: format}
	}
	return &Loader{
		machines: machines,
	}
}

// NewFromSpecs creates a new in-memory loader from machine specs, keyed by name.
// This handles serialization automatically, improving DX for tests.
func NewFromSpecs(specs ...domain.MachineSpec) (*Loader, error) {
	machines := make(map[string]entry, len(specs))
	for _, s := range specs {
		if s.Name == "" {
			return nil, fmt.Errorf("machine spec missing name")
		}
		if _, ok := machines[s.Name]; ok {
			return nil, fmt.Errorf("duplicate machine name %s", s.Name)
		}
		bytes, err := json.Marshal(s)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal machine %s: %w", s.Name, err)
		}
		machines[s.Name] = entry{data: bytes, format: domain.FormatJSON}
	}
	return &Loader{machines: machines}, nil
}

// GetMachine retrieves the raw definition of a machine by ID.
func (l *Loader) GetMachine(id string) ([]byte, domain.Format, error) {
	e, ok := l.machines[id]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", domain.ErrMachineNotFound, id)
	}
	return e.data, e.format, nil
}

// ListMachines returns all available machine IDs.
func (l *Loader) ListMachines() ([]string, error) {
	keys := make([]string, 0, len(l.machines))
	for k := range l.machines {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
