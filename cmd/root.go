package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"taglattice/internal/config"
	"taglattice/internal/db"
)

var (
	dbPath     string
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "taglattice",
	Short: "Local tag lattice: import, search, and browse classification tags",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the lattice database")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to taglattice.yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose diagnostics")
}

// LoadConfig reads the settings file: the --config flag wins, otherwise
// normal discovery applies.
func LoadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	return config.Discover()
}

// DiscoverDB finds an existing database using priority: env > flag >
// config > walk-up > XDG fallback.
func DiscoverDB() (string, error) {
	// 1. Environment variable
	if envPath := os.Getenv("TAGLATTICE_DB"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}

	// 2. CLI flag
	if dbPath != "" {
		if _, err := os.Stat(dbPath); err == nil {
			return dbPath, nil
		}
		return "", fmt.Errorf("database not found at --db path: %s", dbPath)
	}

	// 3. Configured path
	cfg, err := LoadConfig()
	if err == nil && cfg.Database != "" {
		if _, err := os.Stat(cfg.Database); err == nil {
			return cfg.Database, nil
		}
	}

	// 4. Walk up from CWD
	dir, err := os.Getwd()
	if err == nil {
		for {
			candidate := filepath.Join(dir, "taglattice.db")
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	// 5. XDG fallback
	home, err := os.UserHomeDir()
	if err == nil {
		xdgPath := filepath.Join(home, ".local", "share", "taglattice", "taglattice.db")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath, nil
		}
	}

	return "", fmt.Errorf("no taglattice.db found (set TAGLATTICE_DB, use --db, or run 'taglattice import' first)")
}

// DatabasePath picks where the database should live for commands that
// may create it. Same priority as DiscoverDB but without requiring the
// file to exist.
func DatabasePath() string {
	if envPath := os.Getenv("TAGLATTICE_DB"); envPath != "" {
		return envPath
	}
	if dbPath != "" {
		return dbPath
	}
	if cfg, err := LoadConfig(); err == nil && cfg.Database != "" {
		return cfg.Database
	}
	return "taglattice.db"
}

// OpenDatabase discovers and opens an existing database.
func OpenDatabase() (*db.DB, error) {
	path, err := DiscoverDB()
	if err != nil {
		return nil, err
	}
	return db.OpenDB(path)
}

// ResolveNode finds a node by numeric ID, exact slug, or name prefix.
func ResolveNode(d *db.DB, reference string) (*db.Node, error) {
	// 1. Numeric ID
	if id, err := strconv.ParseInt(reference, 10, 64); err == nil {
		node, err := d.GetNodeByID(id)
		if err != nil {
			return nil, err
		}
		if node != nil {
			return node, nil
		}
	}

	// 2. Exact slug
	node, err := d.GetNodeBySlug(reference)
	if err != nil {
		return nil, err
	}
	if node != nil {
		return node, nil
	}

	// 3. Prefix completion
	matches, err := d.Typeahead(reference, 10)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 1:
		return &matches[0], nil
	case 0:
		return nil, fmt.Errorf("node not found: %s", reference)
	default:
		lines := make([]string, len(matches))
		for i, m := range matches {
			lines[i] = fmt.Sprintf("  %s  %s", m.Slug, m.Text)
		}
		return nil, fmt.Errorf("ambiguous reference '%s'. %d matches:\n%s\nUse an exact slug or numeric ID instead.",
			reference, len(matches), strings.Join(lines, "\n"))
	}
}
