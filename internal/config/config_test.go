package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_DefaultsWhenDefaultFileMissing(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_YAMLAndJSON(t *testing.T) {
	yamlPath := write(t, "ntm.yaml", "max_depth: 12\nwildcard_policy: union\nformat: json\nlibrary: ./machines\n")
	jsonPath := write(t, "ntm.json", `{"max_depth": 12, "wildcard_policy": "union", "format": "json", "library": "./machines"}`)

	for _, path := range []string{yamlPath, jsonPath} {
		cfg, err := Load(path)
		require.NoError(t, err, path)

		assert.Equal(t, 12, cfg.MaxDepth)
		assert.Equal(t, DefaultMaxSteps, cfg.MaxSteps, "untouched keys keep defaults")
		assert.Equal(t, "union", cfg.WildcardPolicy)
		assert.Equal(t, "json", cfg.Format)
		assert.Equal(t, "./machines", cfg.Library)
		assert.True(t, cfg.StrictInput)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown key", "a.yaml", "max_dept: 3\n"},
		{"bad policy", "b.yaml", "wildcard_policy: sometimes\n"},
		{"bad format", "c.yaml", "format: xml\n"},
		{"bad level", "d.yaml", "log_level: loud\n"},
		{"negative depth", "e.json", `{"max_depth": -1}`},
		{"broken yaml", "f.yaml", "max_depth: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(write(t, tt.file, tt.content))
			assert.Error(t, err)
		})
	}
}
