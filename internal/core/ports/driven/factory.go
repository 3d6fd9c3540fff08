package driven

import (
	"github.com/custodia-labs/folio/internal/core/domain"
)

// DataSourceParams are the construction parameters handed to a DataSourceBuilder.
type DataSourceParams struct {
	// Site is the owning site. Data sources may read its configuration but
	// must not hold on to its content collections.
	Site domain.SiteRef

	// ItemsRoot is the mount root for items (default "/").
	ItemsRoot string

	// LayoutsRoot is the mount root for layouts (default "/").
	LayoutsRoot string

	// Config is the data source entry merged with its nested "config" mapping.
	Config map[string]any
}

// DataSourceBuilder creates a DataSource for one configured mount.
type DataSourceBuilder func(params DataSourceParams) (DataSource, error)

// DataSourceFactory creates data sources from site configuration.
// It maintains a registry of data source types and their builders.
type DataSourceFactory interface {
	// Register adds a data source builder for the given type.
	Register(info domain.DataSourceType, builder DataSourceBuilder)

	// Instantiate creates one data source per data_sources entry, in
	// declaration order. Returns an UnknownDataSourceError for unregistered types.
	Instantiate(site domain.SiteRef, cfg *domain.Config) ([]MountedDataSource, error)

	// SupportedTypes returns all registered data source types, sorted by ID.
	SupportedTypes() []domain.DataSourceType
}
