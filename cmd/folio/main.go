// Command folio loads, checks and compiles static sites.
package main

import (
	"os"

	"github.com/custodia-labs/folio/internal/adapters/driven/compiler/passthrough"
	configfile "github.com/custodia-labs/folio/internal/adapters/driven/config/file"
	snippetfile "github.com/custodia-labs/folio/internal/adapters/driven/snippets/file"
	"github.com/custodia-labs/folio/internal/adapters/driven/snippets/lua"
	"github.com/custodia-labs/folio/internal/adapters/driving/cli"
	"github.com/custodia-labs/folio/internal/connectors"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
	"github.com/custodia-labs/folio/internal/core/services"
	"github.com/custodia-labs/folio/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	registry := services.NewDataSourceRegistry()
	connectors.RegisterDefaults(registry)

	runner := lua.NewRunner()
	defer runner.Close()
	loader := snippetfile.NewLoader(runner.Extensions()...)

	cli.SetVersion(version)
	cli.Configure(func(dir, configFile string) (driving.Site, error) {
		resolver := services.NewConfigResolver(
			configfile.NewYAMLReader(),
			configfile.NewTOMLReader(),
		)
		if configFile != "" {
			resolver = resolver.WithFilenames(configFile)
		}
		site, err := services.OpenSite(dir, nil, resolver, registry, loader, runner, passthrough.New)
		if err != nil {
			return nil, err
		}
		return site, nil
	}, registry.SupportedTypes())

	if err := cli.Execute(); err != nil {
		logger.Error("%v", err)
		runner.Close()
		os.Exit(1)
	}
}
