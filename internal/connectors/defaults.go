package connectors

import (
	"github.com/custodia-labs/folio/internal/connectors/filesystem"
	"github.com/custodia-labs/folio/internal/connectors/github"
	"github.com/custodia-labs/folio/internal/connectors/sqlite"
	"github.com/custodia-labs/folio/internal/connectors/static"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
)

// RegisterDefaults registers all built-in data sources with the factory.
// Call this during application initialisation.
func RegisterDefaults(f driven.DataSourceFactory) {
	f.Register(filesystem.Info(), filesystem.Build)
	f.Register(static.Info(), static.Build)
	f.Register(sqlite.Info(), sqlite.Build)
	f.Register(github.Info(), github.Build)
}
