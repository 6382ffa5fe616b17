package db

import (
	"database/sql"
	"fmt"
)

// GetMeta returns the value stored under key, or "" when unset
func (d *DB) GetMeta(key string) (string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM meta WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading meta %q: %w", key, err)
	}
	return value, nil
}

// SetMeta stores value under key, replacing any previous value
func (d *DB) SetMeta(key, value string) error {
	_, err := d.conn.Exec(
		`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, key, value)
	if err != nil {
		return fmt.Errorf("writing meta %q: %w", key, err)
	}
	return nil
}

// DeleteMeta removes key if present
func (d *DB) DeleteMeta(key string) error {
	if _, err := d.conn.Exec(`DELETE FROM meta WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting meta %q: %w", key, err)
	}
	return nil
}
