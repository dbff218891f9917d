package output

import (
	"github.com/inodb/vcf-to-data/internal/extract"
	"github.com/inodb/vcf-to-data/internal/vcf"
)

type mapLookup map[string]string

func (m mapLookup) Lookup(chrom, pos, allele string) (string, bool) {
	v, ok := m[chrom+":"+pos+":"+allele]
	return v, ok
}

// testRows returns the rows of a small two-variant run with a frequency table.
func testRows() (*extract.Schema, []extract.Row) {
	ex := extract.New(extract.Options{
		InfoFields:   []string{"RankScore", "Annotation"},
		FormatFields: []string{"GT"},
		Samples:      []string{"Sample1"},
		Frequencies:  mapLookup{"1:12198:C": "0.005"},
	})

	variants := []*vcf.Variant{
		{
			Chrom: "1", Pos: 12198, Ref: "G", Alts: []string{"C"},
			Info:    map[string]interface{}{"RankScore": "5", "Annotation": "GENE1"},
			Samples: []vcf.SampleData{{"GT": vcf.Sequence{"0", "1"}}},
		},
		{
			Chrom: "1", Pos: 12237, ID: "rs62635284", Ref: "G", Alts: []string{"A", "T"},
			Info:    map[string]interface{}{"Annotation": "GENE2,<GENE3>"},
			Samples: []vcf.SampleData{{"GT": vcf.Sequence{"1", "2"}}},
		},
	}

	rows := make([]extract.Row, len(variants))
	for i, v := range variants {
		rows[i] = ex.Extract(v)
	}
	return ex.Schema(), rows
}

func writeAll(w Writer, schema *extract.Schema, rows []extract.Row) error {
	if err := w.WriteHeader(schema); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return w.Close()
}
