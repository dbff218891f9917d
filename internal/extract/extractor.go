package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/inodb/vcf-to-data/internal/vcf"
)

// FrequencyLookup defines the interface for finding the population
// frequency of an allele.
type FrequencyLookup interface {
	Lookup(chrom, pos, allele string) (string, bool)
}

// Options configures an Extractor.
type Options struct {
	InfoFields   []string // INFO keys, one column each, in order
	FormatFields []string // FORMAT keys, one column per sample each, in order
	Samples      []string // sample names in header order

	// Frequencies adds the GNOMAD_AF column when set. Leave it nil (not a
	// typed nil pointer) to omit the column.
	Frequencies FrequencyLookup
}

// Extractor turns variant records into rows with a fixed schema.
type Extractor struct {
	opts   Options
	schema *Schema
}

// New creates an extractor. The schema is fixed at construction. Repeated
// INFO or FORMAT field names are kept once, at their first position.
func New(opts Options) *Extractor {
	opts.InfoFields = uniqueFields(opts.InfoFields)
	opts.FormatFields = uniqueFields(opts.FormatFields)
	return &Extractor{
		opts:   opts,
		schema: NewSchema(opts.Frequencies != nil, opts.InfoFields, opts.FormatFields, opts.Samples),
	}
}

// Schema returns the column layout of every row this extractor produces.
func (e *Extractor) Schema() *Schema {
	return e.schema
}

// Extract produces exactly one row for the variant.
func (e *Extractor) Extract(v *vcf.Variant) Row {
	pos := strconv.FormatInt(v.Pos, 10)

	id := v.ID
	if id == "" {
		id = "."
	}

	alts := v.Alts
	if len(alts) == 0 {
		alts = []string{"."}
	}

	values := make([]string, 0, e.schema.Len())
	values = append(values, v.Chrom, pos, id, v.Ref, v.AltString())

	if e.opts.Frequencies != nil {
		values = append(values, e.frequencies(v.Chrom, pos, alts))
	}

	for _, field := range e.opts.InfoFields {
		val, ok := v.Info[field]
		if !ok {
			values = append(values, Missing)
			continue
		}
		values = append(values, FormatInfoValue(val))
	}

	for i := range e.opts.Samples {
		sample := v.Sample(i)
		for _, field := range e.opts.FormatFields {
			fv, ok := sample[field]
			if !ok {
				values = append(values, Missing)
				continue
			}
			values = append(values, FormatFieldValue(fv))
		}
	}

	return Row{schema: e.schema, values: values, Pos: v.Pos}
}

func uniqueFields(fields []string) []string {
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// frequencies joins the per-allele frequency lookups in ALT order.
func (e *Extractor) frequencies(chrom, pos string, alts []string) string {
	freqs := make([]string, len(alts))
	for i, alt := range alts {
		freq, ok := e.opts.Frequencies.Lookup(chrom, pos, alt)
		if !ok {
			freq = Missing
		}
		freqs[i] = freq
	}
	return strings.Join(freqs, ",")
}

// FormatFieldValue renders a FORMAT value: sequences are joined with "/".
func FormatFieldValue(fv vcf.FieldValue) string {
	switch x := fv.(type) {
	case vcf.Scalar:
		return string(x)
	case vcf.Sequence:
		return strings.Join(x, "/")
	default:
		return Missing
	}
}

// FormatInfoValue renders an INFO value as a string. Strings pass through
// unchanged, flags render as "True" and lists are comma-joined.
func FormatInfoValue(val interface{}) string {
	switch x := val.(type) {
	case string:
		return x
	case bool:
		if x {
			return "True"
		}
		return "False"
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case []string:
		return strings.Join(x, ",")
	case []interface{}:
		parts := make([]string, len(x))
		for i, p := range x {
			parts[i] = FormatInfoValue(p)
		}
		return strings.Join(parts, ",")
	case nil:
		return Missing
	default:
		return fmt.Sprint(x)
	}
}
