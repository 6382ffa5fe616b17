package db

import (
	"database/sql"
	"fmt"
	"strings"

	"taglattice/internal/slug"
)

const nodeColumns = "id, slug, text, is_tag, extra"

// scanNode scans a row into a Node. The row must have all 5 columns in standard order.
func scanNode(scanner interface{ Scan(dest ...any) error }) (Node, error) {
	var n Node
	err := scanner.Scan(&n.ID, &n.Slug, &n.Text, &n.IsTag, &n.Extra)
	return n, err
}

func collectNodes(rows *sql.Rows) ([]Node, error) {
	defer rows.Close()
	var nodes []Node
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}

// UpsertNode creates or updates the node keyed by the slug of text.
// IsTag only ever promotes from false to true.
func (d *DB) UpsertNode(text string, isTag bool) (*Node, error) {
	return d.UpsertNodeSlug(slug.Make(text), text, isTag)
}

// UpsertNodeSlug upserts a node under an explicit slug. The bulk importer uses
// this to store disambiguated category slugs whose slug differs from the
// slug of the display text.
func (d *DB) UpsertNodeSlug(s, text string, isTag bool) (*Node, error) {
	if s == "" {
		return nil, fmt.Errorf("no usable slug for text %q", text)
	}
	text = strings.ToLower(strings.TrimSpace(text))

	row := d.conn.QueryRow(`
		INSERT INTO nodes (slug, text, is_tag) VALUES (?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			text = excluded.text,
			is_tag = max(nodes.is_tag, excluded.is_tag)
		RETURNING `+nodeColumns, s, text, isTag)

	n, err := scanNode(row)
	if err != nil {
		return nil, fmt.Errorf("upserting node %q: %w", s, err)
	}
	return &n, nil
}

// GetNodeByID returns a node, or nil if not found
func (d *DB) GetNodeByID(id int64) (*Node, error) {
	row := d.conn.QueryRow(`SELECT `+nodeColumns+` FROM nodes WHERE id = ?`, id)
	n, err := scanNode(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// GetNodeBySlug returns the node with the given slug, or nil if not found
func (d *DB) GetNodeBySlug(s string) (*Node, error) {
	row := d.conn.QueryRow(`SELECT `+nodeColumns+` FROM nodes WHERE slug = ?`, s)
	n, err := scanNode(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// AllNodes returns every node ordered by id
func (d *DB) AllNodes() ([]Node, error) {
	rows, err := d.conn.Query(`SELECT ` + nodeColumns + ` FROM nodes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectNodes(rows)
}

// GetRandomTags returns a uniform random sample of usable tags
func (d *DB) GetRandomTags(count int) ([]Node, error) {
	if count <= 0 {
		return []Node{}, nil
	}
	rows, err := d.conn.Query(
		`SELECT `+nodeColumns+` FROM nodes WHERE is_tag = 1 ORDER BY RANDOM() LIMIT ?`, count)
	if err != nil {
		return nil, err
	}
	return collectNodes(rows)
}

// DeleteNode removes a node administratively. Edges, aliases, and cached
// paths referencing it are cascade-deleted; its search index row is dropped.
func (d *DB) DeleteNode(id int64) error {
	if _, err := d.conn.Exec(`DELETE FROM nodes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting node %d: %w", id, err)
	}
	has, err := d.HasSearchIndex()
	if err != nil {
		return err
	}
	if has {
		if _, err := d.conn.Exec(`DELETE FROM node_search WHERE rowid = ?`, id); err != nil {
			return fmt.Errorf("deleting search row for node %d: %w", id, err)
		}
	}
	return nil
}
