// Package genelist provides gene-of-interest list loading and matching.
package genelist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// GeneSet holds gene symbols of interest.
type GeneSet map[string]struct{}

// Load loads a newline-delimited gene list. Each non-empty line, with
// surrounding whitespace trimmed, is one gene symbol.
func Load(path string) (GeneSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gene list: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a gene list from r.
func Parse(r io.Reader) (GeneSet, error) {
	genes := make(GeneSet)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		gene := strings.TrimSpace(scanner.Text())
		if gene == "" {
			continue
		}
		genes[gene] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading gene list: %w", err)
	}

	return genes, nil
}

// Contains returns true if the gene is in the set.
func (g GeneSet) Contains(gene string) bool {
	_, ok := g[gene]
	return ok
}

// Len returns the number of genes in the set.
func (g GeneSet) Len() int {
	return len(g)
}

// MatchAny returns true if any gene token in value is in the set.
// Annotation fields pack several genes into one value, so value is split
// on commas, pipes, ampersands, semicolons, colons and whitespace.
func (g GeneSet) MatchAny(value string) bool {
	for _, token := range strings.FieldsFunc(value, isGeneSeparator) {
		if g.Contains(token) {
			return true
		}
	}
	return false
}

func isGeneSeparator(r rune) bool {
	switch r {
	case ',', '|', '&', ';', ':':
		return true
	}
	return unicode.IsSpace(r)
}
