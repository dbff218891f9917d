// Package vcf provides VCF file parsing functionality.
package vcf

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/brentp/vcfgo"
	"github.com/brentp/xopen"
)

const genotypeKey = "GT"

// Parser reads variants from a VCF file.
type Parser struct {
	rdr    *vcfgo.Reader
	closer io.Closer
}

// NewParser creates a new VCF parser for the given file.
// Supports plain, gzipped and bgzipped VCF files, and '-' for stdin,
// which may be compressed too.
func NewParser(path string) (*Parser, error) {
	f, err := xopen.Ropen(path)
	if err != nil {
		return nil, fmt.Errorf("open vcf file: %w", err)
	}

	p, err := NewParserFromReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	p.closer = f

	return p, nil
}

// NewParserFromReader creates a parser from an io.Reader (e.g., stdin).
// Sample columns are parsed eagerly so every record exposes its FORMAT data.
func NewParserFromReader(r io.Reader) (*Parser, error) {
	rdr, err := vcfgo.NewReader(r, false)
	if err != nil {
		return nil, fmt.Errorf("read vcf header: %w", err)
	}
	return &Parser{rdr: rdr}, nil
}

// Next reads the next variant from the VCF file.
// Returns nil, nil when there are no more variants.
func (p *Parser) Next() (v *Variant, err error) {
	// vcfgo indexes columns without bounds checks; a truncated line panics.
	defer func() {
		if r := recover(); r != nil {
			v = nil
			err = &ParseError{
				Line:    p.LineNumber(),
				Message: fmt.Sprintf("malformed record: %v", r),
			}
		}
	}()

	rec := p.rdr.Read()
	if verr := p.rdr.Error(); verr != nil {
		p.rdr.Clear()
		return nil, &ParseError{
			Line:    p.LineNumber(),
			Message: strings.TrimSpace(verr.Error()),
		}
	}
	if rec == nil {
		return nil, nil
	}

	return p.convert(rec), nil
}

// convert copies a vcfgo record into a Variant, resolving every sample's
// FORMAT values into scalars or sequences.
func (p *Parser) convert(rec *vcfgo.Variant) *Variant {
	id := rec.Id()
	if id == "." {
		id = ""
	}

	alts := rec.Alt()
	if len(alts) == 1 && alts[0] == "." {
		alts = nil
	}

	v := &Variant{
		Chrom: rec.Chrom(),
		Pos:   int64(rec.Pos),
		ID:    id,
		Ref:   rec.Ref(),
		Alts:  alts,
		Info:  parseInfo(string(rec.Info().Bytes())),
	}

	if len(rec.Samples) > 0 {
		hasGT := false
		for _, key := range rec.Format {
			if key == genotypeKey {
				hasGT = true
				break
			}
		}

		v.Samples = make([]SampleData, len(rec.Samples))
		for i, s := range rec.Samples {
			v.Samples[i] = sampleData(s, hasGT)
		}
	}

	return v
}

// sampleData converts one parsed sample column.
func sampleData(s *vcfgo.SampleGenotype, hasGT bool) SampleData {
	if s == nil {
		return nil
	}

	data := make(SampleData, len(s.Fields)+1)
	for key, raw := range s.Fields {
		data[key] = fieldValue(raw)
	}

	if hasGT && len(s.GT) > 0 {
		alleles := make(Sequence, len(s.GT))
		for i, a := range s.GT {
			if a < 0 {
				alleles[i] = "."
			} else {
				alleles[i] = strconv.Itoa(a)
			}
		}
		data[genotypeKey] = alleles
	}

	return data
}

// fieldValue classifies a raw FORMAT value: comma-separated values are
// sequences, anything else is kept as a scalar.
func fieldValue(raw string) FieldValue {
	if strings.Contains(raw, ",") {
		return Sequence(strings.Split(raw, ","))
	}
	return Scalar(raw)
}

// parseInfo parses the INFO field into a map.
func parseInfo(info string) map[string]interface{} {
	result := make(map[string]interface{})
	if info == "" || info == "." {
		return result
	}

	for _, kv := range strings.Split(info, ";") {
		if kv == "" {
			continue
		}
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) == 2 {
			result[parts[0]] = parts[1]
		} else {
			// Flag-type INFO field
			result[parts[0]] = true
		}
	}

	return result
}

// SampleNames returns sample names from the #CHROM header line.
// Returns nil if no sample columns are present.
func (p *Parser) SampleNames() []string {
	return p.rdr.Header.SampleNames
}

// LineNumber returns the current line number being processed.
func (p *Parser) LineNumber() int {
	return int(p.rdr.LineNumber)
}

// Close closes the parser and underlying file.
func (p *Parser) Close() error {
	if p.closer != nil {
		return p.closer.Close()
	}
	return nil
}

// ParseError represents an error during VCF parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("vcf parse error at line %d: %s", e.Line, e.Message)
}
