package db

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"taglattice/internal/slug"
)

// Scores are tiered so strategies never interleave: exact beats prefix beats
// full text. Full-text bm25 ranks map monotonically into [0, ftsScoreCeiling).
const (
	scoreExact      = 100.0
	scorePrefix     = 80.0
	ftsScoreCeiling = 60.0

	defaultSearchLimit    = 20
	defaultTypeaheadLimit = 10
)

var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "in": true, "on": true,
	"at": true, "to": true, "for": true, "of": true, "is": true,
	"it": true, "and": true, "or": true, "with": true, "from": true,
	"by": true, "this": true, "that": true, "as": true, "be": true,
}

// BuildFTSQuery preprocesses a natural language query for FTS5.
// Splits on whitespace, removes stopwords and words < 3 chars, trims punctuation,
// joins with " OR ".
func BuildFTSQuery(query string) string {
	words := strings.Fields(query)
	var filtered []string
	for _, w := range words {
		trimmed := strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
		})
		if len(trimmed) < 3 {
			continue
		}
		if stopwords[strings.ToLower(trimmed)] {
			continue
		}
		filtered = append(filtered, trimmed)
	}
	return strings.Join(filtered, " OR ")
}

// escapeLike escapes LIKE wildcards so slug prefixes containing underscores
// match literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Typeahead returns nodes whose slug starts with the slugified prefix,
// ordered by text.
func (d *DB) Typeahead(prefix string, limit int) ([]Node, error) {
	p := slug.Make(prefix)
	if p == "" {
		return []Node{}, nil
	}
	if limit <= 0 {
		limit = defaultTypeaheadLimit
	}
	rows, err := d.conn.Query(`
		SELECT `+nodeColumns+` FROM nodes
		WHERE slug LIKE ? ESCAPE '\'
		ORDER BY text LIMIT ?
	`, escapeLike(p)+"%", limit)
	if err != nil {
		return nil, err
	}
	return collectNodes(rows)
}

// Search merges three retrieval strategies — exact slug/text equality, slug
// prefix, and full-text rank over text, aliases, and cached path tokens —
// keeping only the best score per node. Each hit carries the node's best
// cached path for display. The full-text strategy is skipped while the index
// has not been built.
func (d *DB) Search(query string, limit int) ([]SearchHit, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	q := slug.Make(query)
	text := strings.ToLower(strings.TrimSpace(query))

	hits := make(map[int64]*SearchHit)
	merge := func(n Node, score float64, match string) {
		if h, ok := hits[n.ID]; ok {
			if score > h.Score {
				h.Score = score
				h.Match = match
			}
			return
		}
		hits[n.ID] = &SearchHit{Node: n, Score: score, Match: match}
	}

	if q != "" || text != "" {
		exact, err := d.queryNodes(
			`SELECT `+nodeColumns+` FROM nodes WHERE slug = ?1 OR text = ?2`, q, text)
		if err != nil {
			return nil, fmt.Errorf("exact search: %w", err)
		}
		for _, n := range exact {
			merge(n, scoreExact, "exact")
		}
	}

	if q != "" {
		prefixed, err := d.queryNodes(
			`SELECT `+nodeColumns+` FROM nodes WHERE slug LIKE ? ESCAPE '\'`,
			escapeLike(q)+"%")
		if err != nil {
			return nil, fmt.Errorf("prefix search: %w", err)
		}
		for _, n := range prefixed {
			merge(n, scorePrefix, "prefix")
		}
	}

	has, err := d.HasSearchIndex()
	if err != nil {
		return nil, err
	}
	if has {
		if err := d.searchFullText(query, merge); err != nil {
			return nil, err
		}
	}

	out := make([]SearchHit, 0, len(hits))
	for _, h := range hits {
		best, err := d.GetBestPath(h.Node.ID)
		if err != nil {
			return nil, err
		}
		h.BestPath = best
		out = append(out, *h)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Node.Text < out[j].Node.Text
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (d *DB) searchFullText(query string, merge func(Node, float64, string)) error {
	fts := BuildFTSQuery(query)
	if fts == "" {
		return nil
	}
	rows, err := d.conn.Query(`
		SELECT n.id, n.slug, n.text, n.is_tag, n.extra, bm25(node_search)
		FROM node_search
		JOIN nodes n ON n.id = node_search.rowid
		WHERE node_search MATCH ?
		ORDER BY rank
	`, fts)
	if err != nil {
		// the index can vanish between the probe and the query (force reimport)
		if strings.Contains(err.Error(), "no such table") {
			return nil
		}
		return fmt.Errorf("full-text search: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var n Node
		var rank float64
		if err := rows.Scan(&n.ID, &n.Slug, &n.Text, &n.IsTag, &n.Extra, &rank); err != nil {
			return err
		}
		// bm25 is negative, more negative = more relevant
		rel := -rank
		if rel < 0 {
			rel = 0
		}
		merge(n, ftsScoreCeiling*rel/(rel+1), "fts")
	}
	return rows.Err()
}

func (d *DB) queryNodes(query string, args ...any) ([]Node, error) {
	rows, err := d.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	return collectNodes(rows)
}

// RebuildSearchIndex regenerates the full-text index from node text, alias
// text, and cached path text. The index table is created on the first
// rebuild; until then Search degrades to exact/prefix matching. Rebuild the
// path index first so path tokens are current.
func (d *DB) RebuildSearchIndex() error {
	_, err := d.conn.Exec(
		`CREATE VIRTUAL TABLE IF NOT EXISTS node_search USING fts5(slug, text, alias_text, path_text)`)
	if err != nil {
		return fmt.Errorf("creating search index: %w", err)
	}

	tx, err := d.conn.Begin()
	if err != nil {
		return fmt.Errorf("starting index rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM node_search`); err != nil {
		return fmt.Errorf("clearing search index: %w", err)
	}
	_, err = tx.Exec(`
		INSERT INTO node_search (rowid, slug, text, alias_text, path_text)
		SELECT n.id, n.slug, n.text,
			COALESCE((SELECT group_concat(a.alias_text, ' ') FROM aliases a WHERE a.node_id = n.id), ''),
			COALESCE((SELECT group_concat(p.path_text, ' ') FROM paths p WHERE p.node_id = n.id), '')
		FROM nodes n
	`)
	if err != nil {
		return fmt.Errorf("populating search index: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing index rebuild: %w", err)
	}
	return nil
}

// DropSearchIndex removes the full-text index table entirely. Search degrades
// gracefully until the next rebuild.
func (d *DB) DropSearchIndex() error {
	if _, err := d.conn.Exec(`DROP TABLE IF EXISTS node_search`); err != nil {
		return fmt.Errorf("dropping search index: %w", err)
	}
	return nil
}
