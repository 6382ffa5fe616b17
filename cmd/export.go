package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taglattice/internal/db"
	"taglattice/internal/graph"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the lattice as a compressed archive",
	Long: `Export all nodes, edges, and aliases as a zstd-compressed JSON
stream. The path cache and search index are derived data and are not
exported; reimporting rebuilds them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		out := os.Stdout
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("creating archive: %w", err)
			}
			defer f.Close()
			out = f
		}

		if err := graph.WriteArchive(out, d); err != nil {
			return fmt.Errorf("writing archive: %w", err)
		}
		if exportOut != "" {
			fmt.Fprintf(os.Stderr, "Exported to %s\n", exportOut)
		}
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <archive>",
	Short: "Load an exported archive into the lattice",
	Long: `Restore nodes, edges, and aliases from a zstd archive produced by
'taglattice export'. Node IDs are reassigned; slugs carry identity. The
path cache and search index are rebuilt afterwards.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening archive: %w", err)
		}
		defer f.Close()

		arch, err := graph.ReadArchive(f)
		if err != nil {
			return fmt.Errorf("reading archive: %w", err)
		}

		d, err := db.OpenDB(DatabasePath())
		if err != nil {
			return err
		}
		defer d.Close()

		ids := make(map[int64]int64, len(arch.Nodes))
		for _, n := range arch.Nodes {
			node, err := d.UpsertNodeSlug(n.Slug, n.Text, n.IsTag)
			if err != nil {
				return fmt.Errorf("restoring node %s: %w", n.Slug, err)
			}
			ids[n.ID] = node.ID
		}
		edges := 0
		for _, e := range arch.Edges {
			parent, pok := ids[e.ParentID]
			child, cok := ids[e.ChildID]
			if !pok || !cok {
				continue
			}
			outcome, err := d.AddEdge(parent, child)
			if err != nil {
				return err
			}
			if outcome == db.EdgeAdded {
				edges++
			}
		}
		for _, a := range arch.Aliases {
			node, ok := ids[a.NodeID]
			if !ok {
				continue
			}
			if _, err := d.AddAlias(node, a.Text); err != nil {
				return err
			}
		}

		if err := d.RebuildPathIndex(); err != nil {
			return err
		}
		if err := d.RebuildSearchIndex(); err != nil {
			return err
		}
		fmt.Printf("Restored %d nodes, %d edges, %d aliases\n", len(arch.Nodes), edges, len(arch.Aliases))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Archive file to write (default stdout)")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(restoreCmd)
}
