package output

import (
	"errors"
	"fmt"
	"os"

	"github.com/inodb/vcf-to-data/internal/duckdb"
	"github.com/inodb/vcf-to-data/internal/extract"
)

// DuckDBWriter streams rows into the variants table of a DuckDB database.
// With a Parquet path set, the table lives in memory and is exported to
// that file on Close.
type DuckDBWriter struct {
	store       *duckdb.Store
	table       *duckdb.TableWriter
	parquetPath string
}

// NewDuckDBWriter creates a writer for a DuckDB database file. An existing
// database at path is removed first.
func NewDuckDBWriter(path string) (*DuckDBWriter, error) {
	if err := removeExisting(path); err != nil {
		return nil, err
	}
	store, err := duckdb.Open(path)
	if err != nil {
		return nil, err
	}
	return &DuckDBWriter{store: store}, nil
}

// NewParquetWriter creates a writer that produces a Parquet file.
func NewParquetWriter(path string) (*DuckDBWriter, error) {
	if err := removeExisting(path); err != nil {
		return nil, err
	}
	store, err := duckdb.Open("")
	if err != nil {
		return nil, err
	}
	return &DuckDBWriter{store: store, parquetPath: path}, nil
}

// WriteHeader creates the variant table.
func (dw *DuckDBWriter) WriteHeader(schema *extract.Schema) error {
	table, err := dw.store.CreateVariantTable(schema)
	if err != nil {
		return err
	}
	dw.table = table
	return nil
}

// Write appends a single row.
func (dw *DuckDBWriter) Write(row extract.Row) error {
	if dw.table == nil {
		return errors.New("duckdb writer: header not written")
	}
	return dw.table.Append(row)
}

// Close flushes the table, exports Parquet if requested and closes the database.
func (dw *DuckDBWriter) Close() error {
	var err error
	if dw.table != nil {
		err = dw.table.Close()
		if err == nil && dw.parquetPath != "" {
			err = dw.store.ExportParquet(dw.parquetPath)
		}
	}
	if cerr := dw.store.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close duckdb: %w", cerr)
	}
	return err
}

func removeExisting(path string) error {
	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove existing output: %w", err)
		}
	}
	return nil
}
