package loam

// MachineMetadata represents the header of a machine document in a Loam library.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type MachineMetadata struct {
	ID          string   `json:"id" mapstructure:"id"`
	Format      string   `json:"format" mapstructure:"format"`
	Description string   `json:"description" mapstructure:"description"`
	Tags        []string `json:"tags" mapstructure:"tags"`

	// Definition collects the remaining keys. Structured documents (JSON/YAML)
	// carry the whole machine here instead of in a body.
	Definition map[string]any `json:"-" mapstructure:",remain"`
}
