package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var randomCount int

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Show a random sample of tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		tags, err := d.GetRandomTags(randomCount)
		if err != nil {
			return err
		}
		for _, t := range tags {
			path, err := d.GetBestPath(t.ID)
			if err != nil {
				return err
			}
			if path != "" {
				fmt.Printf("%-25s %s\n", t.Text, path)
			} else {
				fmt.Println(t.Text)
			}
		}
		return nil
	},
}

func init() {
	randomCmd.Flags().IntVarP(&randomCount, "count", "n", 10, "How many tags to show")
	rootCmd.AddCommand(randomCmd)
}
