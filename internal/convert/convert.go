// Package convert drives a VCF-to-table run: records are read, filtered,
// flattened and handed to an output writer in source order.
package convert

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/inodb/vcf-to-data/internal/extract"
	"github.com/inodb/vcf-to-data/internal/output"
	"github.com/inodb/vcf-to-data/internal/vcf"
)

// GeneFilter decides whether an INFO value names a gene of interest.
type GeneFilter interface {
	MatchAny(value string) bool
}

// Stats summarizes a run.
type Stats struct {
	Variants int // records read
	Written  int // rows written
	Filtered int // records dropped by the gene filter
}

// Converter moves records from a parser to a writer.
type Converter struct {
	extractor *extract.Extractor
	genes     GeneFilter
	geneField string
	logger    *zap.Logger
}

// New creates a converter that flattens records with ex.
func New(ex *extract.Extractor) *Converter {
	return &Converter{
		extractor: ex,
		logger:    zap.NewNop(),
	}
}

// SetGeneFilter restricts output to records whose INFO field matches genes.
// Records without the field are dropped while a filter is set.
func (c *Converter) SetGeneFilter(genes GeneFilter, field string) {
	c.genes = genes
	c.geneField = field
}

// SetLogger sets the logger for progress and warning messages.
func (c *Converter) SetLogger(l *zap.Logger) {
	c.logger = l
}

// Run writes the header, then one row per kept record, and closes w.
// The writer is closed even when reading fails so partial text output is
// flushed; the first error wins.
func (c *Converter) Run(ctx context.Context, parser vcf.VariantParser, w output.Writer) (stats Stats, err error) {
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()

	if err := w.WriteHeader(c.extractor.Schema()); err != nil {
		return stats, fmt.Errorf("write header: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		v, err := parser.Next()
		if err != nil {
			return stats, fmt.Errorf("read variant: %w", err)
		}
		if v == nil {
			break
		}
		stats.Variants++

		if !c.keep(v) {
			stats.Filtered++
			c.logger.Debug("variant filtered",
				zap.String("chrom", v.Chrom),
				zap.Int64("pos", v.Pos))
			continue
		}

		if err := w.Write(c.extractor.Extract(v)); err != nil {
			return stats, fmt.Errorf("write row %s:%d: %w", v.Chrom, v.Pos, err)
		}
		stats.Written++
	}

	if stats.Variants == 0 {
		c.logger.Info("0 variants processed")
	} else {
		c.logger.Info("variants processed",
			zap.Int("read", stats.Variants),
			zap.Int("written", stats.Written),
			zap.Int("filtered", stats.Filtered))
	}

	return stats, nil
}

func (c *Converter) keep(v *vcf.Variant) bool {
	if c.genes == nil {
		return true
	}
	val, ok := v.Info[c.geneField]
	if !ok {
		return false
	}
	return c.genes.MatchAny(extract.FormatInfoValue(val))
}
