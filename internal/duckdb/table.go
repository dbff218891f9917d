package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/vcf-to-data/internal/extract"
)

// TableWriter appends rows to the variant table using the Appender API.
type TableWriter struct {
	conn     *sql.Conn
	appender *goduckdb.Appender
	posIdx   int
}

// CreateVariantTable (re)creates the variant table for the given schema and
// returns a writer appending to it. POS is stored as BIGINT, every other
// column as VARCHAR.
func (s *Store) CreateVariantTable(schema *extract.Schema) (*TableWriter, error) {
	posIdx, hasPos := schema.Index(extract.ColPos)
	if !hasPos {
		posIdx = -1
	}

	defs := make([]string, schema.Len())
	for i, col := range schema.Columns() {
		typ := "VARCHAR"
		if i == posIdx {
			typ = "BIGINT"
		}
		defs[i] = quoteIdent(col) + " " + typ
	}

	if _, err := s.db.Exec("DROP TABLE IF EXISTS " + quoteIdent(VariantTable)); err != nil {
		return nil, fmt.Errorf("drop variant table: %w", err)
	}
	ddl := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(VariantTable), strings.Join(defs, ", "))
	if _, err := s.db.Exec(ddl); err != nil {
		return nil, fmt.Errorf("create variant table: %w", err)
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return nil, fmt.Errorf("get connection: %w", err)
	}

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", VariantTable)
		return err
	}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create appender: %w", err)
	}

	return &TableWriter{conn: conn, appender: appender, posIdx: posIdx}, nil
}

// Append appends a single row.
func (tw *TableWriter) Append(row extract.Row) error {
	vals := row.Values()
	args := make([]driver.Value, len(vals))
	for i, v := range vals {
		if i == tw.posIdx {
			args[i] = row.Pos
		} else {
			args[i] = v
		}
	}
	if err := tw.appender.AppendRow(args...); err != nil {
		return fmt.Errorf("append variant row: %w", err)
	}
	return nil
}

// Close flushes pending rows and releases the connection.
func (tw *TableWriter) Close() error {
	flushErr := tw.appender.Flush()
	closeErr := tw.appender.Close()
	connErr := tw.conn.Close()

	switch {
	case flushErr != nil:
		return fmt.Errorf("flush appender: %w", flushErr)
	case closeErr != nil:
		return fmt.Errorf("close appender: %w", closeErr)
	case connErr != nil:
		return fmt.Errorf("close connection: %w", connErr)
	}
	return nil
}
