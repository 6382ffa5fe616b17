// Package importer loads classification lattices from CSV sources.
//
// Each CSV row is an ancestry chain, most general segment first and the
// tag itself last. Categories that share a display name with another
// category elsewhere in the corpus, or with a tag, get their slug
// prefixed with their parent chain so distinct concepts stay distinct
// nodes.
package importer

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"lukechampine.com/blake3"

	"taglattice/internal/db"
	"taglattice/internal/slug"
)

// markerKey is the meta key holding the fingerprint of the last
// completed import.
const markerKey = "import_fingerprint"

// Result summarizes one import run.
type Result struct {
	Sources          int
	Rows             int
	EdgesAdded       int
	SelfLoopsSkipped int
	CyclesRejected   int
	Skipped          bool // marker was present, nothing was imported
}

// DiscoverSources expands a doublestar glob into a sorted list of CSV
// source files.
func DiscoverSources(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("expanding source pattern %q: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// ImportIfNeeded runs an import unless one has already completed against
// this database. Presence of the marker wins even when the sources have
// changed since; a changed fingerprint is logged so the operator knows a
// force run would pick up new data.
func ImportIfNeeded(d *db.DB, pattern string) (*Result, error) {
	marker, err := d.GetMeta(markerKey)
	if err != nil {
		return nil, fmt.Errorf("reading import marker: %w", err)
	}
	if marker == "" {
		return runImport(d, pattern)
	}

	paths, err := DiscoverSources(pattern)
	if err != nil {
		return nil, err
	}
	current, err := fingerprintSources(paths)
	if err != nil {
		slog.Warn("could not fingerprint sources", "error", err)
	} else if current != marker {
		slog.Warn("sources changed since last import; use force to reimport",
			"imported", marker, "current", current)
	}
	return &Result{Skipped: true}, nil
}

func fingerprintSources(paths []string) (string, error) {
	hasher := blake3.New(32, nil)
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		hasher.Write(data)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// ForceReimport wipes all lattice data and runs a fresh import.
func ForceReimport(d *db.DB, pattern string) (*Result, error) {
	if err := wipe(d); err != nil {
		return nil, err
	}
	return runImport(d, pattern)
}

func wipe(d *db.DB) error {
	// Clear the marker before touching data: if the wipe dies halfway the
	// next import re-runs instead of trusting a marker over gutted tables.
	if err := d.DeleteMeta(markerKey); err != nil {
		return fmt.Errorf("clearing import marker: %w", err)
	}

	tx, err := d.Conn().Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM edges`,
		`DELETE FROM aliases`,
		`DELETE FROM paths`,
		`DELETE FROM nodes`,
		`DELETE FROM sqlite_sequence WHERE name = 'nodes'`,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("wiping lattice: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	return d.DropSearchIndex()
}

func runImport(d *db.DB, pattern string) (*Result, error) {
	paths, err := DiscoverSources(pattern)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no sources match %q", pattern)
	}

	hasher := blake3.New(32, nil)
	var rows [][]string
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading source %s: %w", path, err)
		}
		hasher.Write(data)
		fileRows, err := ReadRows(strings.NewReader(string(data)))
		if err != nil {
			return nil, fmt.Errorf("parsing source %s: %w", path, err)
		}
		rows = append(rows, fileRows...)
	}

	result := &Result{Sources: len(paths), Rows: len(rows)}
	if err := ingest(d, rows, result); err != nil {
		return nil, err
	}

	if err := d.RebuildPathIndex(); err != nil {
		return nil, fmt.Errorf("rebuilding path index: %w", err)
	}
	if err := d.RebuildSearchIndex(); err != nil {
		return nil, fmt.Errorf("rebuilding search index: %w", err)
	}

	fingerprint := hex.EncodeToString(hasher.Sum(nil))
	if err := d.SetMeta(markerKey, fingerprint); err != nil {
		return nil, fmt.Errorf("writing import marker: %w", err)
	}

	slog.Info("import complete",
		"sources", result.Sources,
		"rows", result.Rows,
		"edges", result.EdgesAdded,
		"cycles_rejected", result.CyclesRejected)
	return result, nil
}

// segment is one field of a row after slugging. Fields whose slug comes
// out empty (pure punctuation) are dropped before the passes run.
type segment struct {
	text string
	slug string
}

func ingest(d *db.DB, rows [][]string, result *Result) error {
	chains := make([][]segment, 0, len(rows))
	for _, row := range rows {
		var chain []segment
		for _, text := range row {
			s := slug.Make(text)
			if s == "" {
				continue
			}
			chain = append(chain, segment{text: text, slug: s})
		}
		if len(chain) > 0 {
			chains = append(chains, chain)
		}
	}

	// Pass 1: which slugs name tags, and under which parent chains each
	// category name occurs. A category whose name is also a tag name, or
	// which occurs under more than one parent chain, is a distinct
	// concept per occurrence and needs a qualified slug.
	tagSlugs := make(map[string]bool)
	catPaths := make(map[string]map[string]bool)
	for _, chain := range chains {
		last := len(chain) - 1
		tagSlugs[chain[last].slug] = true
		for i := 0; i < last; i++ {
			prefix := joinSlugs(chain[:i])
			if catPaths[chain[i].slug] == nil {
				catPaths[chain[i].slug] = make(map[string]bool)
			}
			catPaths[chain[i].slug][prefix] = true
		}
	}

	// Pass 2: upsert every segment under its effective slug and wire the
	// chain's edges.
	for _, chain := range chains {
		last := len(chain) - 1
		var prev *db.Node
		for i, seg := range chain {
			effective := seg.slug
			isLast := i == last
			if !isLast && i > 0 && (tagSlugs[seg.slug] || len(catPaths[seg.slug]) > 1) {
				effective = joinSlugs(chain[:i]) + "_" + seg.slug
			}

			node, err := d.UpsertNodeSlug(effective, seg.text, isLast)
			if err != nil {
				return fmt.Errorf("upserting %q: %w", effective, err)
			}

			if prev != nil {
				outcome, err := d.AddEdge(prev.ID, node.ID)
				if err != nil {
					return fmt.Errorf("linking %s -> %s: %w", prev.Slug, node.Slug, err)
				}
				switch outcome {
				case db.EdgeAdded:
					result.EdgesAdded++
				case db.EdgeSelfLoop:
					result.SelfLoopsSkipped++
				case db.EdgeCycleRejected:
					result.CyclesRejected++
					slog.Warn("edge would create a cycle, skipped",
						"parent", prev.Slug, "child", node.Slug)
				}
			}
			prev = node
		}
	}
	return nil
}

func joinSlugs(segs []segment) string {
	parts := make([]string, len(segs))
	for i, seg := range segs {
		parts[i] = seg.slug
	}
	return strings.Join(parts, "_")
}
