package geocode

import (
	"database/sql"
	"fmt"
)

// SQLiteStore persists geocode results in a geocache table so repeat
// analyses skip the network entirely
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates the store and its schema if needed
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	schema := `
		CREATE TABLE IF NOT EXISTS geocache (
			coord_key TEXT PRIMARY KEY,
			place_name TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create geocache table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Lookup returns the cached place name for a coordinate key
func (s *SQLiteStore) Lookup(key string) (string, bool, error) {
	var name string
	err := s.db.QueryRow(`SELECT place_name FROM geocache WHERE coord_key = ?`, key).Scan(&name)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query geocache: %w", err)
	}
	return name, true, nil
}

// Insert stores a geocode result
func (s *SQLiteStore) Insert(key, name string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO geocache (coord_key, place_name) VALUES (?, ?)`, key, name)
	if err != nil {
		return fmt.Errorf("failed to insert geocache entry: %w", err)
	}
	return nil
}
