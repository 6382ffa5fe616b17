package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"taglattice/internal/db"
	"taglattice/internal/importer"
)

var (
	importSource string
	importForce  bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import CSV tag sources into the lattice",
	Long: `Import each CSV row as an ancestry chain, most general first.
A completed import is remembered; re-running is a no-op unless --force
is given, which wipes everything and imports from scratch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig()
		if err != nil {
			return err
		}
		source := importSource
		if source == "" {
			source = cfg.Source
		}

		d, err := db.OpenDB(DatabasePath())
		if err != nil {
			return err
		}
		defer d.Close()

		var result *importer.Result
		if importForce {
			result, err = importer.ForceReimport(d, source)
		} else {
			result, err = importer.ImportIfNeeded(d, source)
		}
		if err != nil {
			return err
		}

		if result.Skipped {
			fmt.Println("Already imported. Use --force to reimport.")
			return nil
		}
		fmt.Printf("Imported %d rows from %d sources: %d edges added",
			result.Rows, result.Sources, result.EdgesAdded)
		if result.CyclesRejected > 0 {
			fmt.Printf(", %d cycles rejected", result.CyclesRejected)
		}
		if result.SelfLoopsSkipped > 0 {
			fmt.Printf(", %d self-loops skipped", result.SelfLoopsSkipped)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importSource, "source", "", "Glob matching CSV sources (default from config)")
	importCmd.Flags().BoolVar(&importForce, "force", false, "Wipe the lattice and reimport")
	rootCmd.AddCommand(importCmd)
}
