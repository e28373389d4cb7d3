// Package catalog holds the product catalog index: the lightweight
// id/name list that backs autocomplete.
//
// The list is fetched from the service once per session and swapped in
// wholesale. A SQLite copy under ~/.recengine keeps the last known
// catalog around so autocomplete still works when the service is
// unreachable at startup.
package catalog

import (
	"database/sql"
	"fmt"

	"github.com/auchitya/recengine/internal/api"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// Store persists the catalog between sessions.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the catalog database at the given path.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL so a concurrent reader never sees a half-replaced catalog
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS products (
		product_id TEXT PRIMARY KEY,
		product_name TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_products_name ON products(product_name);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ReplaceAll swaps the stored catalog for the given entries in one
// transaction. The catalog is replaced wholesale, never patched.
func (s *Store) ReplaceAll(entries []api.CatalogEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM products"); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO products (product_id, product_name) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(e.ProductID, e.ProductName); err != nil {
			return fmt.Errorf("failed to insert %s: %w", e.ProductID, err)
		}
	}

	return tx.Commit()
}

// All returns every stored catalog entry.
func (s *Store) All() ([]api.CatalogEntry, error) {
	rows, err := s.db.Query("SELECT product_id, product_name FROM products ORDER BY product_name")
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	var entries []api.CatalogEntry
	for rows.Next() {
		var e api.CatalogEntry
		if err := rows.Scan(&e.ProductID, &e.ProductName); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of stored entries.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM products").Scan(&n)
	return n, err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
