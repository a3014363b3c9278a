package hhi

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		shares   MarketShareSet
		expected []float64
	}{
		{
			name:     "Partial coverage scales up",
			shares:   MarketShareSet{{"A", 20}, {"B", 20}, {"C", 10}},
			expected: []float64{40, 40, 20},
		},
		{
			name:     "Oversubscribed set scales down",
			shares:   MarketShareSet{{"A", 60}, {"B", 60}},
			expected: []float64{50, 50},
		},
		{
			name:     "Already normalized is unchanged",
			shares:   MarketShareSet{{"A", 40}, {"B", 30}, {"C", 30}},
			expected: []float64{40, 30, 30},
		},
		{
			name:     "Single firm",
			shares:   MarketShareSet{{"A", 12.5}},
			expected: []float64{100},
		},
		{
			name:     "Zero sum is a no-op",
			shares:   MarketShareSet{{"A", 0}, {"B", 0}},
			expected: []float64{0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize(tt.shares)
			if len(result) != len(tt.expected) {
				t.Fatalf("Normalize() returned %d entries, expected %d", len(result), len(tt.expected))
			}
			for i, want := range tt.expected {
				if math.Abs(result[i].Share-want) > 1e-9 {
					t.Errorf("Normalize()[%d] = %v, expected %v", i, result[i].Share, want)
				}
				if result[i].Name != tt.shares[i].Name {
					t.Errorf("Normalize()[%d] name = %q, expected %q (order must be preserved)", i, result[i].Name, tt.shares[i].Name)
				}
			}
		})
	}
}

func TestNormalizeSumsToHundred(t *testing.T) {
	shares := MarketShareSet{{"A", 13.7}, {"B", 21.9}, {"C", 8.4}, {"D", 2.2}}

	normalized := Normalize(shares)
	if sum := normalized.Sum(); math.Abs(sum-100) > 1e-9 {
		t.Errorf("Normalize() sum = %v, expected 100", sum)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	shares := MarketShareSet{{"A", 55}, {"B", 25}, {"C", 11}}

	once := Normalize(shares)
	twice := Normalize(once)
	for i := range once {
		if math.Abs(once[i].Share-twice[i].Share) > 1e-9 {
			t.Errorf("Normalize() not idempotent at %d: %v vs %v", i, once[i].Share, twice[i].Share)
		}
	}
}

func TestNormalizePreservesProportions(t *testing.T) {
	shares := MarketShareSet{{"A", 30}, {"B", 15}}

	normalized := Normalize(shares)
	if ratio := normalized[0].Share / normalized[1].Share; math.Abs(ratio-2.0) > 1e-9 {
		t.Errorf("Normalize() changed proportions: ratio = %v, expected 2", ratio)
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	shares := MarketShareSet{{"A", 20}, {"B", 30}}
	Normalize(shares)

	if shares[0].Share != 20 || shares[1].Share != 30 {
		t.Errorf("Normalize() mutated its input: %+v", shares)
	}
}
