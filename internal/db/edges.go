package db

import (
	"database/sql"
	"fmt"
)

// maxAncestorDepth bounds the cycle guard's walk up the ancestor chain.
const maxAncestorDepth = 20

// EdgeOutcome is the typed result of AddEdge. Rejections preserve the graph
// unchanged instead of surfacing as errors.
type EdgeOutcome int

const (
	EdgeAdded EdgeOutcome = iota
	EdgeDuplicate
	EdgeSelfLoop
	EdgeCycleRejected
)

func (o EdgeOutcome) String() string {
	switch o {
	case EdgeAdded:
		return "added"
	case EdgeDuplicate:
		return "duplicate"
	case EdgeSelfLoop:
		return "self-loop"
	case EdgeCycleRejected:
		return "cycle-rejected"
	default:
		return fmt.Sprintf("EdgeOutcome(%d)", int(o))
	}
}

// AddEdge inserts parent -> child unless it would corrupt the lattice.
// Self-loops and cycle-forming edges are refused with a typed outcome, and
// duplicates are ignored. The ancestor check and the insert share one
// transaction, so two concurrent callers cannot jointly close a cycle.
// On a non-nil error no edge has been inserted (the guard fails closed).
func (d *DB) AddEdge(parentID, childID int64) (EdgeOutcome, error) {
	if parentID == childID {
		return EdgeSelfLoop, nil
	}

	tx, err := d.conn.Begin()
	if err != nil {
		return EdgeCycleRejected, fmt.Errorf("starting edge transaction: %w", err)
	}
	defer tx.Rollback()

	// Walk the existing ancestor chain above parent, bounded in depth. If
	// child appears there, the new edge would close a cycle.
	var hit int
	err = tx.QueryRow(`
		WITH RECURSIVE ancestors(id, depth) AS (
			SELECT parent_id, 1 FROM edges WHERE child_id = ?1
			UNION
			SELECT e.parent_id, a.depth + 1
			FROM edges e JOIN ancestors a ON e.child_id = a.id
			WHERE a.depth < ?3
		)
		SELECT 1 FROM ancestors WHERE id = ?2 LIMIT 1
	`, parentID, childID, maxAncestorDepth).Scan(&hit)
	switch {
	case err == sql.ErrNoRows:
		// no cycle
	case err != nil:
		return EdgeCycleRejected, fmt.Errorf("ancestor check for %d -> %d: %w", parentID, childID, err)
	default:
		return EdgeCycleRejected, nil
	}

	res, err := tx.Exec(`INSERT OR IGNORE INTO edges (parent_id, child_id) VALUES (?, ?)`,
		parentID, childID)
	if err != nil {
		return EdgeCycleRejected, fmt.Errorf("inserting edge %d -> %d: %w", parentID, childID, err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return EdgeCycleRejected, fmt.Errorf("inserting edge %d -> %d: %w", parentID, childID, err)
	}

	if err := tx.Commit(); err != nil {
		return EdgeCycleRejected, fmt.Errorf("committing edge %d -> %d: %w", parentID, childID, err)
	}
	if inserted == 0 {
		return EdgeDuplicate, nil
	}
	return EdgeAdded, nil
}

// RemoveEdge deletes the parent -> child relation if present
func (d *DB) RemoveEdge(parentID, childID int64) error {
	_, err := d.conn.Exec(`DELETE FROM edges WHERE parent_id = ? AND child_id = ?`,
		parentID, childID)
	if err != nil {
		return fmt.Errorf("removing edge %d -> %d: %w", parentID, childID, err)
	}
	return nil
}

// AllEdges returns every edge
func (d *DB) AllEdges() ([]Edge, error) {
	rows, err := d.conn.Query(`SELECT parent_id, child_id FROM edges`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var edges []Edge
	for rows.Next() {
		var e Edge
		if err := rows.Scan(&e.ParentID, &e.ChildID); err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}
