package db

import (
	"fmt"
	"strings"

	"taglattice/internal/slug"
)

// AddAlias binds an alternate spelling to a node. Idempotent on the alias
// slug: re-adding the same spelling (to any node) is a no-op.
func (d *DB) AddAlias(nodeID int64, aliasText string) (*Alias, error) {
	s := slug.Make(aliasText)
	if s == "" {
		return nil, fmt.Errorf("no usable slug for alias %q", aliasText)
	}
	text := strings.ToLower(strings.TrimSpace(aliasText))

	_, err := d.conn.Exec(
		`INSERT OR IGNORE INTO aliases (node_id, alias_slug, alias_text) VALUES (?, ?, ?)`,
		nodeID, s, text)
	if err != nil {
		return nil, fmt.Errorf("adding alias %q to node %d: %w", s, nodeID, err)
	}
	return &Alias{NodeID: nodeID, Slug: s, Text: text}, nil
}

// AliasesForNode returns all aliases bound to a node, ordered by alias text
func (d *DB) AliasesForNode(nodeID int64) ([]Alias, error) {
	rows, err := d.conn.Query(
		`SELECT node_id, alias_slug, alias_text FROM aliases WHERE node_id = ? ORDER BY alias_text`,
		nodeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var aliases []Alias
	for rows.Next() {
		var a Alias
		if err := rows.Scan(&a.NodeID, &a.Slug, &a.Text); err != nil {
			return nil, err
		}
		aliases = append(aliases, a)
	}
	return aliases, rows.Err()
}

// AllAliases returns every alias
func (d *DB) AllAliases() ([]Alias, error) {
	rows, err := d.conn.Query(`SELECT node_id, alias_slug, alias_text FROM aliases`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var aliases []Alias
	for rows.Next() {
		var a Alias
		if err := rows.Scan(&a.NodeID, &a.Slug, &a.Text); err != nil {
			return nil, err
		}
		aliases = append(aliases, a)
	}
	return aliases, rows.Err()
}
