// Package duckdb persists extracted regions and run metadata in DuckDB so
// results from many runs can be queried together.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection holding extraction results.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Path returns the database path, empty for in-memory databases.
func (s *Store) Path() string { return s.path }

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS regions (
		run_id BIGINT,
		ordinal BIGINT,
		region_id VARCHAR,
		record_id VARCHAR,
		record_index BIGINT,
		region_name VARCHAR,
		start_pos BIGINT,
		end_pos BIGINT,
		strand VARCHAR,
		forward_primer VARCHAR,
		reverse_primer VARCHAR,
		forward_mismatches BIGINT,
		reverse_mismatches BIGINT,
		sequence VARCHAR
	)`); err != nil {
		return err
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		run_id BIGINT PRIMARY KEY,
		input_path VARCHAR,
		input_size BIGINT,
		input_mtime TIMESTAMP,
		started_at TIMESTAMP,
		finished_at TIMESTAMP,
		max_mismatches BIGINT,
		strategy VARCHAR,
		definitions VARCHAR,
		records BIGINT,
		regions BIGINT,
		failures BIGINT
	)`)
	return err
}
