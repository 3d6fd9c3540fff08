// Package cli provides the folio command-line interface.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
	"github.com/custodia-labs/folio/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// SiteOpener resolves the configuration of the site in dir and returns the
// unloaded site. configFile, when set, replaces the default configuration
// filenames looked up in dir.
type SiteOpener func(dir, configFile string) (driving.Site, error)

// Services wired in by main.
var (
	openSite        SiteOpener
	dataSourceTypes []domain.DataSourceType
)

// Global flags.
var (
	verbose    bool
	siteDir    string
	configFile string
)

var errSiteNotConfigured = errors.New("site loading not configured")

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Aggregate static site content from many data sources",
	Long: `folio loads the items and layouts of a static site from its configured
data sources (local files, inline data, SQLite databases, GitHub
repositories), checks that every identifier is unique and compiles the
result into the output directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
	rootCmd.PersistentFlags().StringVarP(&siteDir, "site", "s", ".", "site directory")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "configuration filename inside the site directory")
}

// Configure wires the services used by the commands.
func Configure(opener SiteOpener, types []domain.DataSourceType) {
	openSite = opener
	dataSourceTypes = types
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadSite() (driving.Site, error) {
	if openSite == nil {
		return nil, errSiteNotConfigured
	}
	return openSite(siteDir, configFile)
}
