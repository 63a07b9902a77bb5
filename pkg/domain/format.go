package domain

import (
	"path/filepath"
	"strings"
)

// Format identifies the encoding of a machine definition.
type Format string

const (
	// FormatTM is the line-oriented comma separated course format (.tm, .csv).
	FormatTM   Format = "tm"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath guesses the format from a file extension. Unknown extensions map to FormatTM.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatTM
	}
}

// ParseFormat converts a format name into a Format.
func ParseFormat(s string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatTM, "csv":
		return FormatTM, true
	case FormatYAML, "yml":
		return FormatYAML, true
	case FormatJSON:
		return FormatJSON, true
	default:
		return "", false
	}
}
