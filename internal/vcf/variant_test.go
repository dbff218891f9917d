package vcf

import "testing"

func TestVariant_AltString(t *testing.T) {
	tests := []struct {
		name string
		alts []string
		want string
	}{
		{"no alt", nil, "."},
		{"single allele", []string{"C"}, "C"},
		{"multi-allelic", []string{"A", "T"}, "A,T"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &Variant{Alts: tt.alts}
			if got := v.AltString(); got != tt.want {
				t.Errorf("AltString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVariant_Sample(t *testing.T) {
	v := &Variant{
		Samples: []SampleData{
			{"GT": Sequence{"0", "1"}},
			nil,
		},
	}

	if got := v.Sample(0); got == nil {
		t.Error("Sample(0) should not be nil")
	}
	if got := v.Sample(1); got != nil {
		t.Error("Sample(1) should be nil for an empty column")
	}
	if got := v.Sample(5); got != nil {
		t.Error("Sample(5) should be nil when out of range")
	}
	if got := v.Sample(-1); got != nil {
		t.Error("Sample(-1) should be nil")
	}
}
