package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/ntm/internal/logging"
	"github.com/aretw0/ntm/internal/presentation/report"
	"github.com/aretw0/ntm/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no config path is given. Its absence is not an error.
const DefaultFile = "ntm.yaml"

const (
	DefaultMaxDepth = 100
	DefaultMaxSteps = 1000
)

// Config holds the settings shared by every ntm command.
type Config struct {
	MaxDepth       int    `mapstructure:"max_depth"`
	MaxSteps       int    `mapstructure:"max_steps"`
	WildcardPolicy string `mapstructure:"wildcard_policy"`
	Format         string `mapstructure:"format"`
	StrictInput    bool   `mapstructure:"strict_input"`
	LogLevel       string `mapstructure:"log_level"`
	LogFile        string `mapstructure:"log_file"`
	Library        string `mapstructure:"library"`
	MetricsFile    string `mapstructure:"metrics_file"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		MaxDepth:       DefaultMaxDepth,
		MaxSteps:       DefaultMaxSteps,
		WildcardPolicy: string(domain.WildcardExactFirst),
		Format:         string(report.FormatText),
		StrictInput:    true,
		LogLevel:       "warn",
	}
}

// Load reads a YAML or JSON config file (the extension decides) over the defaults.
// An empty path reads DefaultFile if it exists.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	var raw map[string]any
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &cfg,
	})
	if err != nil {
		return cfg, err
	}
	if err := decoder.Decode(raw); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks that every enumerated setting has a known value.
func (c Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("max_steps must not be negative, got %d", c.MaxSteps)
	}
	if _, err := domain.ParseWildcardPolicy(c.WildcardPolicy); err != nil {
		return err
	}
	if _, err := report.ParseFormat(c.Format); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
