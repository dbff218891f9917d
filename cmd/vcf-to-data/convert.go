package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vcf-to-data/internal/convert"
	"github.com/inodb/vcf-to-data/internal/datasource/genelist"
	"github.com/inodb/vcf-to-data/internal/datasource/gnomad"
	"github.com/inodb/vcf-to-data/internal/extract"
	"github.com/inodb/vcf-to-data/internal/output"
	"github.com/inodb/vcf-to-data/internal/vcf"
)

var defaultInfoFields = []string{
	"RankScore",
	"most_severe_consequence",
	"most_severe_pli",
	"Annotation",
	"RankResult",
	"GeneticModels",
	"GNOMADAF_popmax",
}

var defaultFormatFields = []string{"GT"}

// convertOptions holds the resolved settings of a convert run.
type convertOptions struct {
	VCFFile      string
	Output       string
	OutputFormat string
	GnomadAF     string
	GeneListFile string
	GeneField    string
	InfoFields   []string
	FormatFields []string
}

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a VCF file to a table",
		Long: `Convert a VCF file to a table with one row per variant record.

Columns are CHROM, POS, ID, REF and ALT, then GNOMAD_AF when --gnomad-af is
given, then one column per INFO field and one per sample and FORMAT field
(named <sample>_<field>). Missing values are written as NA.

Every flag can also be set in ~/.vcf-to-data.yaml or as a VCF_TO_DATA_*
environment variable (e.g. VCF_TO_DATA_OUTPUT_FORMAT=json).`,
		Example: `  vcf-to-data convert --vcf-file in.vcf.gz -o out.tsv
  vcf-to-data convert --vcf-file in.vcf --gnomad-af gnomad.tab.gz -f json -o out.json
  vcf-to-data convert --vcf-file in.vcf --gene-list-file genes.txt -f parquet -o out.parquet
  cat in.vcf | vcf-to-data convert --vcf-file - --info-fields Annotation,RankScore -o out.csv -f csv`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return &usageError{err: err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(viper.GetBool("verbose"))
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck

			return runConvert(cmd.Context(), optionsFromConfig(), cmd.OutOrStdout(), logger)
		},
	}

	flags := cmd.Flags()
	flags.String("vcf-file", "", "Input VCF file, plain or gzipped ('-' for stdin)")
	flags.StringP("output", "o", "", "Output file path")
	flags.StringP("output-format", "f", "tsv", "Output format: "+strings.Join(output.Formats(), ", "))
	flags.String("gnomad-af", "", "gnomAD allele frequency table (CHROM, POS, alleles, AF; optionally .gz)")
	flags.String("gene-list-file", "", "Only keep variants annotated with a gene from this file")
	flags.String("gene-field", "Annotation", "INFO field holding gene symbols for --gene-list-file")
	flags.StringSlice("info-fields", defaultInfoFields, "INFO fields to extract")
	flags.StringSlice("format-fields", defaultFormatFields, "FORMAT fields to extract for every sample")

	_ = viper.BindPFlags(flags)

	return cmd
}

func optionsFromConfig() convertOptions {
	return convertOptions{
		VCFFile:      viper.GetString("vcf-file"),
		Output:       viper.GetString("output"),
		OutputFormat: viper.GetString("output-format"),
		GnomadAF:     viper.GetString("gnomad-af"),
		GeneListFile: viper.GetString("gene-list-file"),
		GeneField:    viper.GetString("gene-field"),
		InfoFields:   getList("info-fields"),
		FormatFields: getList("format-fields"),
	}
}

func runConvert(ctx context.Context, opts convertOptions, stdout io.Writer, logger *zap.Logger) error {
	if opts.VCFFile == "" {
		return &usageError{err: errors.New("--vcf-file is required")}
	}
	if opts.Output == "" {
		return &usageError{err: errors.New("--output is required")}
	}
	format, err := output.ParseFormat(opts.OutputFormat)
	if err != nil {
		return &usageError{err: err}
	}

	var table *gnomad.Table
	if opts.GnomadAF != "" {
		table, err = gnomad.Load(opts.GnomadAF)
		if err != nil {
			return err
		}
		logger.Info("loaded gnomAD allele frequencies",
			zap.String("path", opts.GnomadAF),
			zap.Int("alleles", table.Len()))
		if table.Skipped() > 0 {
			logger.Debug("skipped malformed allele frequency lines",
				zap.Int("count", table.Skipped()))
		}
	}

	var genes genelist.GeneSet
	if opts.GeneListFile != "" {
		genes, err = genelist.Load(opts.GeneListFile)
		if err != nil {
			return err
		}
		if genes.Len() == 0 {
			logger.Warn("gene list is empty, every variant will be filtered out",
				zap.String("path", opts.GeneListFile))
		} else {
			logger.Info("loaded gene list",
				zap.String("path", opts.GeneListFile),
				zap.Int("genes", genes.Len()))
		}
	}

	parser, err := vcf.NewParser(opts.VCFFile)
	if err != nil {
		return err
	}
	defer parser.Close()

	exOpts := extract.Options{
		InfoFields:   opts.InfoFields,
		FormatFields: opts.FormatFields,
		Samples:      parser.SampleNames(),
	}
	if table != nil {
		exOpts.Frequencies = table
	}

	ex := extract.New(exOpts)
	if col, dup := ex.Schema().Duplicate(); dup {
		return &usageError{err: fmt.Errorf("duplicate output column %q: rename or drop the conflicting INFO/FORMAT field", col)}
	}

	conv := convert.New(ex)
	conv.SetLogger(logger)
	if genes != nil {
		conv.SetGeneFilter(genes, opts.GeneField)
	}

	w, err := output.Create(format, opts.Output)
	if err != nil {
		return err
	}
	if !format.Streaming() {
		logger.Debug("rows are held in memory until the input is read",
			zap.String("format", format.String()))
	}
	if _, err := conv.Run(ctx, parser, w); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s file saved: %s\n", strings.ToUpper(format.String()), opts.Output)
	return nil
}
