// Package output provides table serializers for extracted variant rows.
package output

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFormat is returned for output format names that are not supported.
var ErrUnknownFormat = errors.New("unknown output format")

// Format selects the serialization strategy.
type Format int

const (
	FormatTSV Format = iota
	FormatCSV
	FormatJSON
	FormatDuckDB
	FormatParquet
)

var formatNames = map[Format]string{
	FormatTSV:     "tsv",
	FormatCSV:     "csv",
	FormatJSON:    "json",
	FormatDuckDB:  "duckdb",
	FormatParquet: "parquet",
}

// Formats returns the supported format names.
func Formats() []string {
	return []string{"csv", "tsv", "json", "duckdb", "parquet"}
}

// ParseFormat converts a format name (case-insensitive) to a Format.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w %q: use one of %s", ErrUnknownFormat, name, strings.Join(Formats(), ", "))
}

func (f Format) String() string {
	if n, ok := formatNames[f]; ok {
		return n
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Streaming returns true if rows are written as they arrive rather than
// buffered until Close.
func (f Format) Streaming() bool {
	switch f {
	case FormatTSV, FormatCSV, FormatDuckDB:
		return true
	}
	return false
}
