// Package vcf provides VCF file parsing functionality.
package vcf

// VariantParser is the interface for sources that stream variant records.
type VariantParser interface {
	// Next reads the next variant.
	// Returns nil, nil when there are no more variants.
	Next() (*Variant, error)

	// SampleNames returns the sample identifiers in header order.
	SampleNames() []string

	// Close closes the parser and releases resources.
	Close() error

	// LineNumber returns the current line number being processed.
	LineNumber() int
}
