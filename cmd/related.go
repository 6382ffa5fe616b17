package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var relatedLimit int

var relatedCmd = &cobra.Command{
	Use:   "related <ref>",
	Short: "Show nodes near a node: siblings and close cousins",
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
		related, err := d.GetRelatedSimple(node.ID, relatedLimit)
		if err != nil {
			return err
		}
		if len(related) == 0 {
			fmt.Println("No related nodes.")
			return nil
		}
		for _, r := range related {
			marker := ""
			if r.IsTag {
				marker = "  #"
			}
			fmt.Printf("%s%s\n", r.Text, marker)
		}
		return nil
	},
}

var siblingsCmd = &cobra.Command{
	Use:   "siblings <ref>",
	Short: "Show nodes sharing a parent with a node",
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
		siblings, err := d.GetSiblings(node.ID)
		if err != nil {
			return err
		}
		for _, s := range siblings {
			fmt.Println(s.Text)
		}
		return nil
	},
}

func init() {
	relatedCmd.Flags().IntVar(&relatedLimit, "limit", 20, "Maximum number of results")
	rootCmd.AddCommand(relatedCmd)
	rootCmd.AddCommand(siblingsCmd)
}
