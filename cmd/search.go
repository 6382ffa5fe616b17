package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search tags and categories by name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		limit := searchLimit
		if limit <= 0 {
			if cfg, err := LoadConfig(); err == nil {
				limit = cfg.SearchLimit
			}
		}

		hits, err := d.Search(strings.Join(args, " "), limit)
		if err != nil {
			return err
		}

		if searchJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(hits)
		}

		if len(hits) == 0 {
			fmt.Println("No results.")
			return nil
		}
		for _, h := range hits {
			kind := " "
			if h.IsTag {
				kind = "#"
			}
			line := fmt.Sprintf("%3.0f %s %-30s", h.Score, kind, h.Text)
			if h.BestPath != "" {
				line += "  " + h.BestPath
			}
			fmt.Println(line)
		}
		return nil
	},
}

var typeaheadCmd = &cobra.Command{
	Use:   "typeahead <prefix>",
	Short: "Complete a partial tag name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		nodes, err := d.Typeahead(args[0], 10)
		if err != nil {
			return err
		}
		for _, n := range nodes {
			fmt.Printf("%s  %s\n", n.Slug, n.Text)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "Maximum number of hits (default from config)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(typeaheadCmd)
}
