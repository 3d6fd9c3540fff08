package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Load the site and write its output",
	Long: `Loads every configured data source, validates the content graph and
writes each item to the output directory. Stale output files are pruned
when prune.auto_prune is enabled.`,
	Args: cobra.NoArgs,
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, _ []string) error {
	site, err := loadSite()
	if err != nil {
		return err
	}
	return compileSite(cmd.Context(), cmd, site)
}

func compileSite(ctx context.Context, cmd *cobra.Command, site driving.Site) error {
	if ctx == nil {
		ctx = context.Background()
	}
	result, err := site.Compile(ctx)
	if err != nil {
		return fmt.Errorf("compile failed: %w", err)
	}

	cmd.Println(newStyles().success.Render(fmt.Sprintf("Compiled site: %d written, %d unchanged, %d pruned",
		len(result.Written), len(result.Unchanged), len(result.Pruned))))
	if verbose {
		for _, path := range result.Written {
			cmd.Printf("  write  %s\n", path)
		}
		for _, path := range result.Pruned {
			cmd.Printf("  prune  %s\n", path)
		}
	}
	return nil
}
