package output

import (
	"encoding/csv"
	"io"

	"github.com/inodb/vcf-to-data/internal/extract"
)

// DelimitedWriter writes rows as delimiter-separated lines. Fields that
// contain the delimiter, quotes or line breaks are quoted.
type DelimitedWriter struct {
	w *csv.Writer
}

// NewDelimitedWriter creates a writer using the given field delimiter.
func NewDelimitedWriter(w io.Writer, comma rune) *DelimitedWriter {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	return &DelimitedWriter{w: cw}
}

// NewTSVWriter creates a tab-delimited writer.
func NewTSVWriter(w io.Writer) *DelimitedWriter {
	return NewDelimitedWriter(w, '\t')
}

// NewCSVWriter creates a comma-delimited writer.
func NewCSVWriter(w io.Writer) *DelimitedWriter {
	return NewDelimitedWriter(w, ',')
}

// WriteHeader writes the header line.
func (dw *DelimitedWriter) WriteHeader(schema *extract.Schema) error {
	return dw.w.Write(schema.Columns())
}

// Write writes a single row.
func (dw *DelimitedWriter) Write(row extract.Row) error {
	return dw.w.Write(row.Values())
}

// Close flushes any buffered data to the underlying writer.
func (dw *DelimitedWriter) Close() error {
	dw.w.Flush()
	return dw.w.Error()
}
