// Package db is the SQLite-backed store for the tag lattice: nodes, edges,
// aliases, the path cache, and the full-text search index.
package db

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// DB wraps a SQLite database holding the tag lattice
type DB struct {
	conn *sql.DB
	Path string
}

// OpenDB opens (or creates) a lattice database with WAL mode and foreign keys
// enabled, applying the schema. WAL keeps browse/search reads unblocked while
// a bulk import is writing.
func OpenDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("applying %s: %w", pragma, err)
		}
	}

	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &DB{conn: conn, Path: path}, nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.conn.Close()
}

// Conn returns the underlying sql.DB for custom queries
func (d *DB) Conn() *sql.DB {
	return d.conn
}

// HasSearchIndex reports whether the full-text index table exists. Search
// skips the full-text strategy entirely until the first index rebuild.
func (d *DB) HasSearchIndex() (bool, error) {
	var name string
	err := d.conn.QueryRow(
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'node_search'`,
	).Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("probing search index: %w", err)
	}
	return true, nil
}

// Stats summarizes the store contents
type Stats struct {
	Nodes       int  `json:"nodes"`
	Edges       int  `json:"edges"`
	Tags        int  `json:"tags"`
	Aliases     int  `json:"aliases"`
	Paths       int  `json:"paths"`
	SearchIndex bool `json:"search_index"`
}

// GetStats returns node/edge/tag counts and whether the search index exists
func (d *DB) GetStats() (*Stats, error) {
	s := &Stats{}
	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM nodes`, &s.Nodes},
		{`SELECT COUNT(*) FROM nodes WHERE is_tag = 1`, &s.Tags},
		{`SELECT COUNT(*) FROM edges`, &s.Edges},
		{`SELECT COUNT(*) FROM aliases`, &s.Aliases},
		{`SELECT COUNT(*) FROM paths`, &s.Paths},
	}
	for _, c := range counts {
		if err := d.conn.QueryRow(c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("counting: %w", err)
		}
	}
	has, err := d.HasSearchIndex()
	if err != nil {
		return nil, err
	}
	s.SearchIndex = has
	return s, nil
}
