package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the lattice: node, edge, alias, and path counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		stats, err := d.GetStats()
		if err != nil {
			return err
		}

		if statsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		}

		fmt.Printf("Nodes:   %d (%d tags, %d categories)\n", stats.Nodes, stats.Tags, stats.Nodes-stats.Tags)
		fmt.Printf("Edges:   %d\n", stats.Edges)
		fmt.Printf("Aliases: %d\n", stats.Aliases)
		fmt.Printf("Paths:   %d\n", stats.Paths)
		if stats.SearchIndex {
			fmt.Println("Search index: present")
		} else {
			fmt.Println("Search index: missing (run 'taglattice reindex')")
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(statsCmd)
}
