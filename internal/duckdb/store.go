// Package duckdb writes extracted variant rows into DuckDB tables and
// exports them to Parquet.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
)

// VariantTable is the name of the table rows are appended to.
const VariantTable = "variants"

// Store manages a DuckDB connection.
type Store struct {
	db *sql.DB
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ExportParquet copies the variant table to a Parquet file.
func (s *Store) ExportParquet(path string) error {
	query := fmt.Sprintf("COPY %s TO %s (FORMAT PARQUET)", quoteIdent(VariantTable), quoteLiteral(path))
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("export parquet: %w", err)
	}
	return nil
}

// quoteIdent quotes a SQL identifier. Column names come from sample and
// field names, which may hold any character.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
