package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var nodeCmd = &cobra.Command{
	Use:   "node <ref>",
	Short: "Show one node: text, kind, aliases, parents, children, paths",
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

		kind := "category"
		if node.IsTag {
			kind = "tag"
		}
		fmt.Printf("%s  (%s, id %d)\n", node.Text, kind, node.ID)
		fmt.Printf("slug: %s\n", node.Slug)

		aliases, err := d.AliasesForNode(node.ID)
		if err != nil {
			return err
		}
		for _, a := range aliases {
			fmt.Printf("alias: %s\n", a.Text)
		}

		parents, err := d.GetParents(node.ID)
		if err != nil {
			return err
		}
		for _, p := range parents {
			fmt.Printf("parent: %s\n", p.Text)
		}

		children, err := d.GetChildren(node.ID)
		if err != nil {
			return err
		}
		for _, c := range children {
			fmt.Printf("child: %s\n", c.Text)
		}

		paths, err := d.GetAllPaths(node.ID)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Printf("path: %s\n", p)
		}
		return nil
	},
}

var (
	addTag    bool
	addParent string
)

var addCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a tag or category, optionally under a parent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		node, err := d.UpsertNode(args[0], addTag)
		if err != nil {
			return err
		}
		fmt.Printf("%s (id %d)\n", node.Slug, node.ID)

		if addParent != "" {
			parent, err := ResolveNode(d, addParent)
			if err != nil {
				return err
			}
			outcome, err := d.AddEdge(parent.ID, node.ID)
			if err != nil {
				return err
			}
			fmt.Printf("%s -> %s: %s\n", parent.Slug, node.Slug, outcome)
		}
		return d.RebuildPathIndex()
	},
}

var aliasCmd = &cobra.Command{
	Use:   "alias <ref> <alias text>",
	Short: "Add an alternate spelling for a node",
	Args:  cobra.ExactArgs(2),
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
		alias, err := d.AddAlias(node.ID, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("%s -> %s\n", alias.Slug, node.Slug)
		return nil
	},
}

func init() {
	addCmd.Flags().BoolVar(&addTag, "tag", false, "Create a tag instead of a category")
	addCmd.Flags().StringVar(&addParent, "parent", "", "Link the node under this parent")
	rootCmd.AddCommand(nodeCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(aliasCmd)
}
