package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio/internal/core/domain"
)

var showAttributes bool

var showDataCmd = &cobra.Command{
	Use:   "show-data",
	Short: "Print the loaded items and layouts",
	Long: `Loads the site and prints the item hierarchy followed by the layouts.
Use --attributes to include each node's attributes.`,
	Args: cobra.NoArgs,
	RunE: runShowData,
}

func init() {
	showDataCmd.Flags().BoolVarP(&showAttributes, "attributes", "a", false, "print node attributes")
	rootCmd.AddCommand(showDataCmd)
}

func runShowData(cmd *cobra.Command, _ []string) error {
	site, err := loadSite()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	items, err := site.Items(ctx)
	if err != nil {
		return fmt.Errorf("failed to load items: %w", err)
	}
	layouts, err := site.Layouts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load layouts: %w", err)
	}

	st := newStyles()
	cmd.Println(st.title.Render(fmt.Sprintf("Items (%d)", items.Len())))
	if items.Len() == 0 {
		cmd.Println(st.warning.Render("  no items"))
	}
	for _, root := range items.Roots() {
		printTree(cmd, st, items, root, 1)
	}

	cmd.Println()
	cmd.Println(st.title.Render(fmt.Sprintf("Layouts (%d)", layouts.Len())))
	for _, layout := range layouts.All() {
		printNode(cmd, st, layout, 1)
	}
	return nil
}

func printTree(cmd *cobra.Command, st *styles, c *domain.Collection, n *domain.Node, depth int) {
	printNode(cmd, st, n, depth)
	for _, child := range c.Children(n) {
		printTree(cmd, st, c, child, depth+1)
	}
}

func printNode(cmd *cobra.Command, st *styles, n *domain.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	line := indent + st.identifier.Render(n.Identifier().String())
	if n.Binary() {
		line += " " + st.muted.Render("(binary)")
	}
	cmd.Println(line)

	if !showAttributes {
		return
	}
	attrs := n.Attributes()
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		cmd.Printf("%s  %s %v\n", indent, st.muted.Render(k+":"), attrs[k])
	}
}
