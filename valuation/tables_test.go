package valuation

import "testing"

func TestQualityRating(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"Luxury estate", 2},
		{"custom built", 3},
		{"above average finishes", 3}, // must win over plain "average"
		{"average tract home", 4},
		{"economy", 5},
		{"basic", 6},
		{"Q3", 3},
		{"ranch", 4}, // no keyword → mid-scale default
		{"", 4},
	}

	for _, tt := range tests {
		if got := QualityRating(tt.in); got != tt.want {
			t.Errorf("QualityRating(%q) = %d; want %d", tt.in, got, tt.want)
		}
	}
}

func TestConditionRating(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"New construction", 2},
		{"fully renovated", 3},
		{"recently updated", 3},
		{"average condition", 4},
		{"typical for age", 4},
		{"outdated kitchen", 5},
		{"fair", 5},
		{"poor / as-is", 6},
		{"C2", 2},
		{"lived in", 4}, // no keyword → mid-scale default
		{"", 4},
	}

	for _, tt := range tests {
		if got := ConditionRating(tt.in); got != tt.want {
			t.Errorf("ConditionRating(%q) = %d; want %d", tt.in, got, tt.want)
		}
	}
}

func TestOrdinalTablesFirstMatchWins(t *testing.T) {
	// "excellent" precedes "average" in the condition table, so text
	// containing both resolves to the earlier entry.
	if got := ConditionRating("excellent for an average street"); got != 2 {
		t.Errorf("ConditionRating(mixed) = %d; want 2", got)
	}
}
