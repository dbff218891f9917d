// Package gnomad loads population allele-frequency tables keyed by
// chromosome, position and alternate allele.
package gnomad

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/pgzip"
)

// Key identifies one alternate allele at a site. Matching is exact: no
// chromosome-name normalization is applied.
type Key struct {
	Chrom  string
	Pos    string
	Allele string
}

// Table maps allele keys to frequency values. It is immutable once loaded.
type Table struct {
	entries map[Key]string
	skipped int
}

// Load reads an allele-frequency table from a tab-delimited file.
// Files ending in ".gz" are decompressed.
//
// Each line holds chromosome, position, a comma-separated list of alternate
// alleles and a frequency value:
//
//	1	12198	G,C	0.005
//
// Lines with fewer than four fields are skipped.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open allele frequency file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip allele frequency file: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	return Parse(r)
}

// Parse reads an allele-frequency table from r.
func Parse(r io.Reader) (*Table, error) {
	t := &Table{entries: make(map[Key]string)}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Split(strings.TrimSpace(scanner.Text()), "\t")
		if len(fields) < 4 {
			t.skipped++
			continue
		}

		chrom, pos, freq := fields[0], fields[1], fields[3]
		for _, allele := range strings.Split(fields[2], ",") {
			// Later lines overwrite earlier ones for the same key.
			t.entries[Key{Chrom: chrom, Pos: pos, Allele: allele}] = freq
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading allele frequency file: %w", err)
	}

	return t, nil
}

// Lookup returns the frequency recorded for an allele at a site.
func (t *Table) Lookup(chrom, pos, allele string) (string, bool) {
	freq, ok := t.entries[Key{Chrom: chrom, Pos: pos, Allele: allele}]
	return freq, ok
}

// Len returns the number of allele entries in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Skipped returns the number of lines dropped for having fewer than four fields.
func (t *Table) Skipped() int {
	return t.skipped
}
