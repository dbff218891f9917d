package output

import (
	"fmt"
	"os"

	"github.com/inodb/vcf-to-data/internal/extract"
)

// Writer serializes rows. WriteHeader is called once before any row; Close
// finalizes the output and must be called exactly once.
type Writer interface {
	WriteHeader(schema *extract.Schema) error
	Write(row extract.Row) error
	Close() error
}

// Create opens path and returns a writer for the given format.
// An existing file at path is replaced.
func Create(format Format, path string) (Writer, error) {
	switch format {
	case FormatTSV, FormatCSV, FormatJSON:
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("create output file: %w", err)
		}
		var w Writer
		switch format {
		case FormatCSV:
			w = NewCSVWriter(f)
		case FormatJSON:
			w = NewJSONWriter(f)
		default:
			w = NewTSVWriter(f)
		}
		return &fileWriter{Writer: w, f: f}, nil
	case FormatDuckDB:
		return NewDuckDBWriter(path)
	case FormatParquet:
		return NewParquetWriter(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// fileWriter closes the underlying file after the wrapped writer finalizes.
type fileWriter struct {
	Writer
	f *os.File
}

func (fw *fileWriter) Close() error {
	werr := fw.Writer.Close()
	ferr := fw.f.Close()
	if werr != nil {
		return werr
	}
	if ferr != nil {
		return fmt.Errorf("close output file: %w", ferr)
	}
	return nil
}
