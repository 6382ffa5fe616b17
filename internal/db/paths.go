package db

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
)

const (
	// maxPathDepth bounds each ascent chain during a path rebuild.
	maxPathDepth = 50
	// maxPathsPerNode caps the cached chains for one node; a dense lattice
	// can otherwise produce combinatorially many ascents.
	maxPathsPerNode = 32
)

// GetBestPath returns the shortest cached root-to-node path string, or ""
// when none is cached. The cache is display-only and may lag the live edges
// until the next rebuild.
func (d *DB) GetBestPath(id int64) (string, error) {
	var p string
	err := d.conn.QueryRow(`
		SELECT path_text FROM paths WHERE node_id = ?
		ORDER BY length(path_text), path_text LIMIT 1
	`, id).Scan(&p)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return p, nil
}

// GetAllPaths returns every cached path string for a node, shortest first
func (d *DB) GetAllPaths(id int64) ([]string, error) {
	rows, err := d.conn.Query(`
		SELECT path_text FROM paths WHERE node_id = ?
		ORDER BY length(path_text), path_text
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

// RebuildPathIndex regenerates every cached root-to-node path string from the
// live edge set. This is the only writer of path records; run it after
// structural changes (the importer does).
func (d *DB) RebuildPathIndex() error {
	nodes, err := d.AllNodes()
	if err != nil {
		return fmt.Errorf("loading nodes: %w", err)
	}
	edges, err := d.AllEdges()
	if err != nil {
		return fmt.Errorf("loading edges: %w", err)
	}

	texts := make(map[int64]string, len(nodes))
	for _, n := range nodes {
		texts[n.ID] = n.Text
	}
	parents := make(map[int64][]int64)
	for _, e := range edges {
		parents[e.ChildID] = append(parents[e.ChildID], e.ParentID)
	}
	// deterministic ascent order
	for id := range parents {
		ps := parents[id]
		sort.Slice(ps, func(i, j int) bool {
			if texts[ps[i]] != texts[ps[j]] {
				return texts[ps[i]] < texts[ps[j]]
			}
			return ps[i] < ps[j]
		})
	}

	tx, err := d.conn.Begin()
	if err != nil {
		return fmt.Errorf("starting path rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM paths`); err != nil {
		return fmt.Errorf("clearing path cache: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO paths (node_id, path_text) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing path insert: %w", err)
	}
	defer stmt.Close()

	for _, n := range nodes {
		for _, p := range ascentPaths(n.ID, texts, parents) {
			if _, err := stmt.Exec(n.ID, p); err != nil {
				return fmt.Errorf("caching path for node %d: %w", n.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing path rebuild: %w", err)
	}
	return nil
}

// ascentPaths enumerates root-first slash-joined path strings for one node by
// walking every parent chain. The on-chain visited set keeps a diamond
// ancestry from looping; depth and fan-out are bounded.
func ascentPaths(id int64, texts map[int64]string, parents map[int64][]int64) []string {
	var out []string
	chain := []int64{id}
	onChain := map[int64]bool{id: true}

	var walk func(depth int)
	walk = func(depth int) {
		if len(out) >= maxPathsPerNode {
			return
		}
		cur := chain[len(chain)-1]

		var next []int64
		if depth < maxPathDepth {
			for _, p := range parents[cur] {
				if !onChain[p] {
					next = append(next, p)
				}
			}
		}
		if len(next) == 0 {
			segs := make([]string, len(chain))
			for i, nid := range chain {
				segs[len(chain)-1-i] = texts[nid]
			}
			out = append(out, strings.Join(segs, "/"))
			return
		}
		for _, p := range next {
			onChain[p] = true
			chain = append(chain, p)
			walk(depth + 1)
			chain = chain[:len(chain)-1]
			delete(onChain, p)
			if len(out) >= maxPathsPerNode {
				return
			}
		}
	}
	walk(0)
	return out
}
