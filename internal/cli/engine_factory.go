package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/ntm"
	"github.com/aretw0/ntm/pkg/adapters/file"
)

// createEngine resolves a machine argument into an engine and a machine ID.
//
// An argument naming an existing file is opened directly. Otherwise the argument is
// an ID in the configured library (a Loam directory).
func (s *Session) createEngine(machine string, extra ...ntm.Option) (*ntm.Engine, string, error) {
	opts, err := s.engineOptions()
	if err != nil {
		return nil, "", err
	}
	opts = append(opts, extra...)

	if isFile(machine) {
		engine, err := ntm.New(machine, opts...)
		if err != nil {
			return nil, "", fmt.Errorf("error initializing engine: %w", err)
		}
		return engine, file.ID(filepath.Base(machine)), nil
	}

	if s.Config.Library == "" {
		return nil, "", fmt.Errorf("machine %q is not a file and no library is configured (use --lib)", machine)
	}
	engine, err := s.libraryEngine(opts...)
	if err != nil {
		return nil, "", err
	}
	return engine, machine, nil
}

func (s *Session) libraryEngine(opts ...ntm.Option) (*ntm.Engine, error) {
	if s.Config.Library == "" {
		return nil, fmt.Errorf("no library is configured (use --lib)")
	}
	engine, err := ntm.New(s.Config.Library, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
