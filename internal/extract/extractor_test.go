package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vcf-to-data/internal/vcf"
)

// mapLookup is an in-memory FrequencyLookup keyed by "chrom:pos:allele".
type mapLookup map[string]string

func (m mapLookup) Lookup(chrom, pos, allele string) (string, bool) {
	v, ok := m[chrom+":"+pos+":"+allele]
	return v, ok
}

func singleSampleVariant() *vcf.Variant {
	return &vcf.Variant{
		Chrom: "1",
		Pos:   12198,
		Ref:   "G",
		Alts:  []string{"C"},
		Info:  map[string]interface{}{"RankScore": "5", "Annotation": "GENE1"},
		Samples: []vcf.SampleData{
			{"GT": vcf.Sequence{"0", "1"}},
		},
	}
}

func rowMap(r Row) map[string]string {
	m := make(map[string]string)
	for i, c := range r.Schema().Columns() {
		m[c] = r.Values()[i]
	}
	return m
}

func TestExtract_WithFrequencies(t *testing.T) {
	ex := New(Options{
		InfoFields:   []string{"RankScore", "Annotation"},
		FormatFields: []string{"GT"},
		Samples:      []string{"Sample1"},
		Frequencies:  mapLookup{"1:12198:G": "0.005", "1:12198:C": "0.005"},
	})

	row := ex.Extract(singleSampleVariant())

	assert.Equal(t,
		[]string{"CHROM", "POS", "ID", "REF", "ALT", "GNOMAD_AF", "RankScore", "Annotation", "Sample1_GT"},
		row.Schema().Columns())
	assert.Equal(t,
		[]string{"1", "12198", ".", "G", "C", "0.005", "5", "GENE1", "0/1"},
		row.Values())
	assert.Equal(t, int64(12198), row.Pos)
}

func TestExtract_WithoutFrequencies(t *testing.T) {
	ex := New(Options{
		InfoFields:   []string{"RankScore", "Annotation"},
		FormatFields: []string{"GT"},
		Samples:      []string{"Sample1"},
	})

	row := ex.Extract(singleSampleVariant())

	_, ok := row.Schema().Index(ColGnomadAF)
	assert.False(t, ok)
	assert.Equal(t, []string{"1", "12198", ".", "G", "C", "5", "GENE1", "0/1"}, row.Values())
}

func TestExtract_MissingInfoField(t *testing.T) {
	ex := New(Options{InfoFields: []string{"RankScore", "most_severe_pli"}})

	row := ex.Extract(singleSampleVariant())

	got, ok := rowMap(row)["most_severe_pli"]
	require.True(t, ok)
	assert.Equal(t, Missing, got)
}

func TestExtract_FrequencyMiss(t *testing.T) {
	ex := New(Options{Frequencies: mapLookup{}})

	row := ex.Extract(singleSampleVariant())

	assert.Equal(t, "NA", rowMap(row)[ColGnomadAF])
}

func TestExtract_MultiAllelicFrequencies(t *testing.T) {
	ex := New(Options{Frequencies: mapLookup{"1:12237:T": "0.0002"}})

	v := &vcf.Variant{Chrom: "1", Pos: 12237, ID: "rs62635284", Ref: "G", Alts: []string{"A", "T", "C"}}
	row := ex.Extract(v)
	m := rowMap(row)

	assert.Equal(t, "rs62635284", m[ColID])
	assert.Equal(t, "A,T,C", m[ColAlt])
	assert.Equal(t, "NA,0.0002,NA", m[ColGnomadAF])
	assert.Equal(t,
		len(strings.Split(m[ColAlt], ",")),
		len(strings.Split(m[ColGnomadAF], ",")),
		"ALT and GNOMAD_AF must have the same number of elements")
}

func TestExtract_ReferenceOnlySite(t *testing.T) {
	ex := New(Options{Frequencies: mapLookup{"2:5000:.": "0.5"}})

	row := ex.Extract(&vcf.Variant{Chrom: "2", Pos: 5000, Ref: "A"})
	m := rowMap(row)

	assert.Equal(t, ".", m[ColID])
	assert.Equal(t, ".", m[ColAlt])
	assert.Equal(t, "0.5", m[ColGnomadAF], "'.' is looked up like any other allele")
}

func TestExtract_MultiSampleFormat(t *testing.T) {
	ex := New(Options{
		FormatFields: []string{"GT", "AD", "DP"},
		Samples:      []string{"Sample1", "Sample2"},
	})

	v := &vcf.Variant{
		Chrom: "1", Pos: 100, Ref: "A", Alts: []string{"T"},
		Samples: []vcf.SampleData{
			{"GT": vcf.Sequence{"0", "1"}, "AD": vcf.Sequence{"10", "5"}, "DP": vcf.Scalar("15")},
			{"GT": vcf.Sequence{".", "."}},
		},
	}
	row := ex.Extract(v)

	assert.Equal(t,
		[]string{"CHROM", "POS", "ID", "REF", "ALT",
			"Sample1_GT", "Sample1_AD", "Sample1_DP",
			"Sample2_GT", "Sample2_AD", "Sample2_DP"},
		row.Schema().Columns())
	assert.Equal(t,
		[]string{"1", "100", ".", "A", "T", "0/1", "10/5", "15", "./.", "NA", "NA"},
		row.Values())
}

func TestExtract_SampleColumnMissing(t *testing.T) {
	ex := New(Options{FormatFields: []string{"GT"}, Samples: []string{"S1", "S2"}})

	v := &vcf.Variant{Chrom: "1", Pos: 1, Ref: "A", Alts: []string{"T"},
		Samples: []vcf.SampleData{{"GT": vcf.Sequence{"1", "1"}}}}
	row := ex.Extract(v)

	assert.Equal(t, []string{"1", "1", ".", "A", "T", "1/1", "NA"}, row.Values())
}

func TestExtract_SchemaStableAcrossRows(t *testing.T) {
	ex := New(Options{
		InfoFields:   []string{"Annotation"},
		FormatFields: []string{"GT"},
		Samples:      []string{"Sample1"},
		Frequencies:  mapLookup{},
	})

	variants := []*vcf.Variant{
		singleSampleVariant(),
		{Chrom: "2", Pos: 1, Ref: "A"},
		{Chrom: "X", Pos: 2, Ref: "C", Alts: []string{"G", "T"}, Info: map[string]interface{}{"Annotation": "G"}},
	}

	for _, v := range variants {
		row := ex.Extract(v)
		assert.Same(t, ex.Schema(), row.Schema())
		assert.Len(t, row.Values(), ex.Schema().Len())
	}
}

func TestFormatFieldValue_RoundTrip(t *testing.T) {
	tests := []vcf.Sequence{
		{"0", "1"},
		{"1", "2"},
		{".", "."},
		{"0", "1", "2"},
	}

	for _, seq := range tests {
		got := FormatFieldValue(seq)
		assert.Equal(t, []string(seq), strings.Split(got, "/"))
	}

	assert.Equal(t, "35", FormatFieldValue(vcf.Scalar("35")))
	assert.Equal(t, Missing, FormatFieldValue(nil))
}

func TestFormatInfoValue(t *testing.T) {
	tests := []struct {
		name string
		val  interface{}
		want string
	}{
		{"string", "GENE1", "GENE1"},
		{"string with commas", "a,b", "a,b"},
		{"flag", true, "True"},
		{"false", false, "False"},
		{"int", 5, "5"},
		{"int64", int64(12198), "12198"},
		{"float", 0.005, "0.005"},
		{"small float", 1e-05, "1e-05"},
		{"list", []interface{}{1, "x", 0.5}, "1,x,0.5"},
		{"string list", []string{"a", "b"}, "a,b"},
		{"nil", nil, "NA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatInfoValue(tt.val))
		})
	}
}

func TestSchema_Index(t *testing.T) {
	s := NewSchema(true, []string{"RankScore"}, []string{"GT"}, []string{"S1"})

	i, ok := s.Index("GNOMAD_AF")
	require.True(t, ok)
	assert.Equal(t, 5, i)

	i, ok = s.Index("S1_GT")
	require.True(t, ok)
	assert.Equal(t, 7, i)

	_, ok = s.Index("nope")
	assert.False(t, ok)
}

func TestNew_RepeatedFieldsKeptOnce(t *testing.T) {
	ex := New(Options{
		InfoFields:   []string{"Annotation", "RankScore", "Annotation"},
		FormatFields: []string{"GT", "GT"},
		Samples:      []string{"Sample1"},
	})

	assert.Equal(t,
		[]string{"CHROM", "POS", "ID", "REF", "ALT", "Annotation", "RankScore", "Sample1_GT"},
		ex.Schema().Columns())
	_, dup := ex.Schema().Duplicate()
	assert.False(t, dup)

	row := ex.Extract(singleSampleVariant())
	assert.Equal(t, []string{"1", "12198", ".", "G", "C", "GENE1", "5", "0/1"}, row.Values())
}

func TestSchema_Duplicate(t *testing.T) {
	tests := []struct {
		name    string
		schema  *Schema
		want    string
		wantDup bool
	}{
		{"distinct", NewSchema(true, []string{"RankScore"}, []string{"GT"}, []string{"S1"}), "", false},
		{"info named like fixed column", NewSchema(false, []string{"ID"}, nil, nil), "ID", true},
		{"info named like frequency column", NewSchema(true, []string{"GNOMAD_AF"}, nil, nil), "GNOMAD_AF", true},
		{"sample columns collide", NewSchema(false, nil, []string{"B_C", "C"}, []string{"A", "A_B"}), "A_B_C", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, dup := tt.schema.Duplicate()
			assert.Equal(t, tt.wantDup, dup)
			assert.Equal(t, tt.want, got)
		})
	}
}
