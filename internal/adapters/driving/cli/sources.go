package cli

import (
	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the available data source types",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		if len(dataSourceTypes) == 0 {
			cmd.Println("No data source types registered.")
			return
		}

		st := newStyles()
		for _, info := range dataSourceTypes {
			cmd.Printf("%s  %s\n", st.title.Render(info.ID), info.Name)
			cmd.Printf("    %s\n", st.muted.Render(info.Description))
			for _, key := range info.ConfigKeys {
				line := "    - " + key.Key + ": " + key.Description
				if key.Required {
					line += " (required)"
				} else if key.Default != "" {
					line += " (default: " + key.Default + ")"
				}
				cmd.Println(line)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
