package domain

import (
	"errors"
	"fmt"
)

// ErrMachineDefinition is the sentinel wrapped by every MachineDefinitionError.
var ErrMachineDefinition = errors.New("invalid machine definition")

// ErrInvalidInputSymbol is returned when an input string uses a symbol outside the input alphabet.
var ErrInvalidInputSymbol = errors.New("input symbol not in alphabet")

// ErrTapeCount is returned when a machine has a tape count the caller cannot simulate.
var ErrTapeCount = errors.New("unsupported tape count")

// ErrMachineNotFound is returned by loaders when no machine has the requested ID.
var ErrMachineNotFound = errors.New("machine not found")

// MachineDefinitionError describes a malformed or incomplete machine definition.
// It is fatal to machine construction.
type MachineDefinitionError struct {
	Machine string // Machine name, if known
	Line    int    // Source line (1-based), 0 when not applicable
	Reason  string
}

func (e *MachineDefinitionError) Error() string {
	prefix := "machine"
	if e.Machine != "" {
		prefix = fmt.Sprintf("machine %q", e.Machine)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", prefix, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Reason)
}

func (e *MachineDefinitionError) Unwrap() error { return ErrMachineDefinition }

// InvalidInputError reports the first input symbol that is not part of the input alphabet.
type InvalidInputError struct {
	Symbol   Symbol
	Position int
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("input symbol %q at position %d is not in the input alphabet", e.Symbol, e.Position)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInputSymbol }
