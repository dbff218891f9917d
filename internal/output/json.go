package output

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/inodb/vcf-to-data/internal/extract"
)

const jsonIndent = "    "

// JSONWriter buffers rows and writes them as a single JSON array of objects
// on Close. Object keys follow the column order; POS is written as a number.
// Strings are not HTML-escaped, so values like "<DEL>" or "a&b" stay as is.
type JSONWriter struct {
	w    io.Writer
	rows []extract.Row
}

// NewJSONWriter creates a new JSON writer.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

// WriteHeader is a no-op: keys are taken from each row's schema.
func (jw *JSONWriter) WriteHeader(*extract.Schema) error {
	return nil
}

// Write buffers a single row.
func (jw *JSONWriter) Write(row extract.Row) error {
	jw.rows = append(jw.rows, row)
	return nil
}

// Close writes the buffered rows with four-space indentation.
func (jw *JSONWriter) Close() error {
	bw := bufio.NewWriter(jw.w)
	se := newStringEncoder()

	if len(jw.rows) == 0 {
		bw.WriteString("[]\n")
		return jw.flush(bw)
	}

	bw.WriteString("[\n")
	for i, row := range jw.rows {
		if err := writeJSONObject(bw, se, row); err != nil {
			return fmt.Errorf("encode json row %d: %w", i+1, err)
		}
		if i < len(jw.rows)-1 {
			bw.WriteByte(',')
		}
		bw.WriteByte('\n')
	}
	bw.WriteString("]\n")

	return jw.flush(bw)
}

func (jw *JSONWriter) flush(bw *bufio.Writer) error {
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// writeJSONObject writes one row as an indented object, keys in column order.
func writeJSONObject(bw *bufio.Writer, se *stringEncoder, row extract.Row) error {
	cols := row.Schema().Columns()
	vals := row.Values()
	posIdx, _ := row.Schema().Index(extract.ColPos)

	bw.WriteString(jsonIndent + "{\n")
	for i, col := range cols {
		key, err := se.encode(col)
		if err != nil {
			return err
		}
		bw.WriteString(jsonIndent + jsonIndent)
		bw.Write(key)
		bw.WriteString(": ")

		if i == posIdx {
			bw.WriteString(strconv.FormatInt(row.Pos, 10))
		} else {
			val, err := se.encode(vals[i])
			if err != nil {
				return err
			}
			bw.Write(val)
		}

		if i < len(cols)-1 {
			bw.WriteByte(',')
		}
		bw.WriteByte('\n')
	}
	bw.WriteString(jsonIndent + "}")

	return nil
}

// stringEncoder quotes strings without HTML escaping.
type stringEncoder struct {
	buf bytes.Buffer
	enc *json.Encoder
}

func newStringEncoder() *stringEncoder {
	se := &stringEncoder{}
	se.enc = json.NewEncoder(&se.buf)
	se.enc.SetEscapeHTML(false)
	return se
}

// encode returns the quoted form of s. The slice is valid until the next call.
func (se *stringEncoder) encode(s string) ([]byte, error) {
	se.buf.Reset()
	if err := se.enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(se.buf.Bytes(), []byte("\n")), nil
}
