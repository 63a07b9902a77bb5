package file

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/ntm/pkg/domain"
)

// Extensions lists the file extensions recognised as machine definitions.
var Extensions = []string{".tm", ".csv", ".yaml", ".yml", ".json"}

// Loader implements ports.MachineLoader over plain files.
// It serves either a single machine file or every machine file below a directory.
type Loader struct {
	root  string
	paths map[string]string // id -> path
}

// New creates a loader for path, which may be a machine file or a directory.
// IDs are file paths relative to the directory, without extension and with forward slashes.
func New(path string) (*Loader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open machine source: %w", err)
	}

	l := &Loader{root: path, paths: make(map[string]string)}
	if !info.IsDir() {
		l.paths[ID(filepath.Base(path))] = path
		return l, nil
	}

	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != path && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !isMachineFile(p) {
			return nil
		}
		rel, err := filepath.Rel(path, p)
		if err != nil {
			return err
		}
		id := ID(rel)
		if existing, ok := l.paths[id]; ok {
			return fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existing, p)
		}
		l.paths[id] = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

// ID derives a machine ID from a relative file path.
func ID(path string) string {
	return filepath.ToSlash(strings.TrimSuffix(path, filepath.Ext(path)))
}

func isMachineFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// GetMachine reads the machine file registered under id.
func (l *Loader) GetMachine(id string) ([]byte, domain.Format, error) {
	path, ok := l.paths[id]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", domain.ErrMachineNotFound, id)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read machine %s: %w", id, err)
	}
	return data, domain.FormatFromPath(path), nil
}

// ListMachines returns all machine IDs in sorted order.
func (l *Loader) ListMachines() ([]string, error) {
	ids := make([]string, 0, len(l.paths))
	for id := range l.paths {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Root returns the file or directory the loader was created with.
func (l *Loader) Root() string {
	return l.root
}
