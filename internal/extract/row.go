// Package extract flattens variant records into table rows.
package extract

// Fixed column names.
const (
	ColChrom    = "CHROM"
	ColPos      = "POS"
	ColID       = "ID"
	ColRef      = "REF"
	ColAlt      = "ALT"
	ColGnomadAF = "GNOMAD_AF"
)

// Missing is the value written for absent fields and frequency lookup misses.
const Missing = "NA"

// Schema is the ordered column layout shared by every row of a run.
type Schema struct {
	columns   []string
	index     map[string]int
	duplicate string
}

// NewSchema builds the column layout: the fixed site columns, GNOMAD_AF when
// withFrequencies is set, one column per INFO field and one per
// sample × FORMAT field pair, sample-major.
func NewSchema(withFrequencies bool, infoFields, formatFields, samples []string) *Schema {
	cols := []string{ColChrom, ColPos, ColID, ColRef, ColAlt}
	if withFrequencies {
		cols = append(cols, ColGnomadAF)
	}
	cols = append(cols, infoFields...)
	for _, s := range samples {
		for _, f := range formatFields {
			cols = append(cols, SampleColumn(s, f))
		}
	}

	s := &Schema{columns: cols, index: make(map[string]int, len(cols))}
	for i, c := range cols {
		if _, dup := s.index[c]; dup {
			if s.duplicate == "" {
				s.duplicate = c
			}
			continue
		}
		s.index[c] = i
	}

	return s
}

// SampleColumn returns the column name for a sample's FORMAT field.
func SampleColumn(sample, field string) string {
	return sample + "_" + field
}

// Columns returns the column names in order. The slice must not be modified.
func (s *Schema) Columns() []string {
	return s.columns
}

// Duplicate returns the first column name that occurs more than once, such
// as an INFO field named like a fixed column. Tables with a duplicate cannot
// be stored in DuckDB or written as JSON objects.
func (s *Schema) Duplicate() (string, bool) {
	return s.duplicate, s.duplicate != ""
}

// Len returns the number of columns.
func (s *Schema) Len() int {
	return len(s.columns)
}

// Index returns the position of the first column with the given name.
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Row is one flattened variant. Values are aligned with the schema columns.
type Row struct {
	schema *Schema
	values []string

	// Pos is the numeric position, kept alongside its string form for
	// formats that write POS as a number.
	Pos int64
}

// Schema returns the row's column layout.
func (r Row) Schema() *Schema {
	return r.schema
}

// Values returns the row values in column order.
func (r Row) Values() []string {
	return r.values
}
