package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Load the site and report problems",
	Long: `Loads the site without compiling it. Fails when the configuration cannot
be resolved, a data source cannot be read or two items or two layouts share
an identifier.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	site, err := loadSite()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := site.Load(ctx); err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	items, err := site.Items(ctx)
	if err != nil {
		return err
	}
	layouts, err := site.Layouts(ctx)
	if err != nil {
		return err
	}
	snippets, err := site.CodeSnippets(ctx)
	if err != nil {
		return err
	}

	cmd.Println(newStyles().success.Render(fmt.Sprintf("Site OK: %d items, %d layouts, %d code snippets",
		items.Len(), layouts.Len(), len(snippets))))
	return nil
}
