package driven

// ConfigReader parses one configuration document into a nested mapping.
// Implementations handle a single file format (YAML, TOML).
type ConfigReader interface {
	// Extensions returns the file extensions this reader handles (e.g., ".yaml").
	Extensions() []string

	// Read parses the file at path. A missing file yields an error
	// satisfying errors.Is(err, fs.ErrNotExist).
	Read(path string) (map[string]any, error)
}
