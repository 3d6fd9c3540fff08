package domain

// Well-known configuration keys.
const (
	KeyParentConfigFile = "parent_config_file"
	KeyTextExtensions   = "text_extensions"
	KeyLibDirs          = "lib_dirs"
	KeyDataSources      = "data_sources"
	KeyOutputDir        = "output_dir"
	KeyIndexFilenames   = "index_filenames"
	KeyEnableOutputDiff = "enable_output_diff"
	KeyPrune            = "prune"
	KeySiteDir          = "site_dir"
)

// Data source entry keys.
const (
	KeyType        = "type"
	KeyItemsRoot   = "items_root"
	KeyLayoutsRoot = "layouts_root"
	KeyConfig      = "config"
)

// Config is the resolved site configuration.
// Accessors return copies, so callers can never mutate the underlying data.
type Config struct {
	data   map[string]any
	frozen bool
}

// NewConfig wraps an already resolved configuration map. The map is copied.
func NewConfig(data map[string]any) *Config {
	c := cloneMap(data)
	if c == nil {
		c = make(map[string]any)
	}
	return &Config{data: c}
}

// Raw returns a deep copy of the full configuration.
func (c *Config) Raw() map[string]any {
	return cloneMap(c.data)
}

// Get retrieves a value by dot-separated path. Mappings and sequences are copies.
func (c *Config) Get(path string) (any, bool) {
	v, ok := GetByPath(c.data, path)
	if !ok {
		return nil, false
	}
	return cloneValue(v), true
}

// GetString retrieves a string value, or "" if absent or not a string.
func (c *Config) GetString(path string) string {
	v, _ := GetByPath(c.data, path)
	s, _ := v.(string)
	return s
}

// GetBool retrieves a boolean value, or false if absent or not a boolean.
func (c *Config) GetBool(path string) bool {
	v, _ := GetByPath(c.data, path)
	b, _ := v.(bool)
	return b
}

// Set stores a value by dot-separated path.
func (c *Config) Set(path string, value any) error {
	if c.frozen {
		return ErrFrozen
	}
	SetByPath(c.data, path, cloneValue(value))
	return nil
}

// Freeze makes the configuration immutable.
func (c *Config) Freeze() { c.frozen = true }

// Frozen reports whether the configuration rejects mutation.
func (c *Config) Frozen() bool { return c.frozen }

// SiteDir returns the directory the configuration was resolved from.
func (c *Config) SiteDir() string { return c.GetString(KeySiteDir) }

// TextExtensions returns the extensions treated as text content.
func (c *Config) TextExtensions() []string {
	v, _ := GetByPath(c.data, KeyTextExtensions)
	return StringSlice(v)
}

// LibDirs returns the code snippet directories, in load order.
func (c *Config) LibDirs() []string {
	v, _ := GetByPath(c.data, KeyLibDirs)
	return StringSlice(v)
}

// OutputDir returns the compiled output directory.
func (c *Config) OutputDir() string { return c.GetString(KeyOutputDir) }

// IndexFilenames returns the filenames used for directory-style routes.
func (c *Config) IndexFilenames() []string {
	v, _ := GetByPath(c.data, KeyIndexFilenames)
	return StringSlice(v)
}

// EnableOutputDiff reports whether output diffs were requested.
func (c *Config) EnableOutputDiff() bool { return c.GetBool(KeyEnableOutputDiff) }

// AutoPrune reports whether stale output files are removed after compiling.
func (c *Config) AutoPrune() bool { return c.GetBool(KeyPrune + ".auto_prune") }

// PruneExclude returns the output names that pruning never removes.
func (c *Config) PruneExclude() []string {
	v, _ := GetByPath(c.data, KeyPrune+".exclude")
	return StringSlice(v)
}

// DataSourceConfig is one configured data source mount.
type DataSourceConfig struct {
	// Type names the registered data source implementation.
	Type string

	// ItemsRoot prefixes every item identifier the source contributes.
	ItemsRoot string

	// LayoutsRoot prefixes every layout identifier the source contributes.
	LayoutsRoot string

	// Config is the nested "config" mapping of the entry.
	Config map[string]any

	// Entry is the full entry, including Type, roots and Config.
	Entry map[string]any
}

// DataSources returns the configured data source mounts in declaration order.
func (c *Config) DataSources() []DataSourceConfig {
	v, _ := GetByPath(c.data, KeyDataSources)
	entries := MapSlice(v)
	result := make([]DataSourceConfig, 0, len(entries))
	for _, entry := range entries {
		dsc := DataSourceConfig{Entry: cloneMap(entry)}
		dsc.Type, _ = entry[KeyType].(string)
		dsc.ItemsRoot, _ = entry[KeyItemsRoot].(string)
		dsc.LayoutsRoot, _ = entry[KeyLayoutsRoot].(string)
		if nested, ok := entry[KeyConfig].(map[string]any); ok {
			dsc.Config = cloneMap(nested)
		} else {
			dsc.Config = make(map[string]any)
		}
		result = append(result, dsc)
	}
	return result
}
