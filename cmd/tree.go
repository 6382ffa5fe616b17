package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"taglattice/internal/db"
)

var (
	treeDepth int
	treeFlat  bool
)

var treeCmd = &cobra.Command{
	Use:   "tree [node]",
	Short: "Display the lattice as a tree, from the roots or a given node",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		if treeFlat {
			if len(args) != 1 {
				return fmt.Errorf("--flat needs a starting node")
			}
			node, err := ResolveNode(d, args[0])
			if err != nil {
				return err
			}
			descendants, err := d.GetSubtree(node.ID, treeDepth)
			if err != nil {
				return err
			}
			for _, n := range descendants {
				marker := ""
				if n.IsTag {
					marker = " #"
				}
				fmt.Printf("%s%s\n", n.Text, marker)
			}
			return nil
		}

		var start []db.Node
		if len(args) == 1 {
			node, err := ResolveNode(d, args[0])
			if err != nil {
				return err
			}
			start = []db.Node{*node}
		} else {
			start, err = d.GetRoots(-1)
			if err != nil {
				return err
			}
		}

		seen := make(map[int64]bool)
		for _, n := range start {
			if err := renderTree(d, n, "", 0, seen); err != nil {
				return err
			}
		}
		return nil
	},
}

// renderTree prints one node and recurses into its children. Nodes with
// more than one parent print in full the first time and as a stub after.
func renderTree(d *db.DB, n db.Node, prefix string, depth int, seen map[int64]bool) error {
	marker := ""
	if n.IsTag {
		marker = " #"
	}
	if seen[n.ID] {
		fmt.Printf("%s%s%s (…)\n", prefix, n.Text, marker)
		return nil
	}
	seen[n.ID] = true
	fmt.Printf("%s%s%s\n", prefix, n.Text, marker)

	if treeDepth > 0 && depth+1 >= treeDepth {
		return nil
	}
	children, err := d.GetChildren(n.ID)
	if err != nil {
		return err
	}
	for _, c := range children {
		if err := renderTree(d, c, prefix+"  ", depth+1, seen); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	treeCmd.Flags().IntVar(&treeDepth, "depth", 0, "Limit the tree to this many levels (0 = unlimited)")
	treeCmd.Flags().BoolVar(&treeFlat, "flat", false, "List every descendant once, sorted, instead of drawing a tree")
	rootCmd.AddCommand(treeCmd)
}
