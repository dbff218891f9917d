// Package vcf provides VCF file parsing functionality.
package vcf

import "strings"

// Variant represents a single variant record from a VCF file.
type Variant struct {
	Chrom   string                 // Chromosome name as written in the file (e.g., "1", "chr1")
	Pos     int64                  // 1-based genomic position
	ID      string                 // Variant identifier, empty when the column is "."
	Ref     string                 // Reference allele
	Alts    []string               // Alternate alleles in file order
	Info    map[string]interface{} // INFO key-value pairs; flags map to true
	Samples []SampleData           // Per-sample FORMAT data, aligned with SampleNames
}

// SampleData maps FORMAT keys to the values recorded for one sample.
// Keys absent from the record's FORMAT column, or dropped from the
// sample column, are absent from the map.
type SampleData map[string]FieldValue

// FieldValue is a FORMAT value: either a Scalar or a Sequence.
type FieldValue interface {
	fieldValue()
}

// Scalar is a single-valued FORMAT entry, kept as written.
type Scalar string

// Sequence is a multi-valued FORMAT entry such as a genotype call or
// per-allele depths.
type Sequence []string

func (Scalar) fieldValue()   {}
func (Sequence) fieldValue() {}

// AltString returns the alternate alleles joined with commas, or "." for a
// site without alternate alleles.
func (v *Variant) AltString() string {
	if len(v.Alts) == 0 {
		return "."
	}
	return strings.Join(v.Alts, ",")
}

// Sample returns the FORMAT data of the i-th sample, or nil when the
// record carries no column for it.
func (v *Variant) Sample(i int) SampleData {
	if i < 0 || i >= len(v.Samples) {
		return nil
	}
	return v.Samples[i]
}
