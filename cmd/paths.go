package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pathsCmd = &cobra.Command{
	Use:   "paths <ref>",
	Short: "List every root-to-node path, shortest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		node, err := ResolveNode(d, args[0])
		if err != nil {
			return err
		}
		paths, err := d.GetAllPaths(node.ID)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			fmt.Println("No paths. Run 'taglattice reindex' after changing edges.")
			return nil
		}
		for _, p := range paths {
			fmt.Println(p)
		}
		return nil
	},
}

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the path cache and the full-text search index",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.RebuildPathIndex(); err != nil {
			return fmt.Errorf("rebuilding path index: %w", err)
		}
		if err := d.RebuildSearchIndex(); err != nil {
			return fmt.Errorf("rebuilding search index: %w", err)
		}
		stats, err := d.GetStats()
		if err != nil {
			return err
		}
		fmt.Printf("Reindexed %d nodes: %d paths\n", stats.Nodes, stats.Paths)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pathsCmd)
	rootCmd.AddCommand(reindexCmd)
}
