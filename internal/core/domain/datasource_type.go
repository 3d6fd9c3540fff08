package domain

// DataSourceType describes a registered data source implementation.
type DataSourceType struct {
	// ID is the type name used in data_sources entries (e.g., "filesystem").
	ID string
	// Name is the human-readable display name.
	Name string
	// Description provides a brief explanation of the data source.
	Description string
	// ConfigKeys lists the configuration fields understood by this data source.
	ConfigKeys []ConfigKey
}

// ConfigKey describes a configuration field for a data source.
type ConfigKey struct {
	// Key is the configuration key name.
	Key string
	// Description explains what this field is for.
	Description string
	// Default is the value used when the key is absent.
	Default string
	// Required indicates whether this field must be provided.
	Required bool
}
