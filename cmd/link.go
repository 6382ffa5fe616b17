package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"taglattice/internal/db"
)

var linkCmd = &cobra.Command{
	Use:   "link <parent> <child>",
	Short: "Add an edge from a parent node to a child node",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		parent, err := ResolveNode(d, args[0])
		if err != nil {
			return err
		}
		child, err := ResolveNode(d, args[1])
		if err != nil {
			return err
		}

		outcome, err := d.AddEdge(parent.ID, child.ID)
		if err != nil {
			return err
		}
		fmt.Printf("%s -> %s: %s\n", parent.Slug, child.Slug, outcome)
		if outcome == db.EdgeAdded {
			return d.RebuildPathIndex()
		}
		return nil
	},
}

var unlinkCmd = &cobra.Command{
	Use:   "unlink <parent> <child>",
	Short: "Remove the edge from a parent node to a child node",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		parent, err := ResolveNode(d, args[0])
		if err != nil {
			return err
		}
		child, err := ResolveNode(d, args[1])
		if err != nil {
			return err
		}

		if err := d.RemoveEdge(parent.ID, child.ID); err != nil {
			return err
		}
		fmt.Printf("%s -/-> %s\n", parent.Slug, child.Slug)
		return d.RebuildPathIndex()
	},
}

func init() {
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(unlinkCmd)
}
