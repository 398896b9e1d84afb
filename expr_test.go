package networth

import "testing"

func TestEvalExpression(t *testing.T) {
	testCases := []struct {
		name string
		text string
		want float64
		ok   bool
	}{
		{"bare number", "1234.56", 1234.56, true},
		{"sum", "4000 + 1500", 5500, true},
		{"difference", "4000 - 1500", 2500, true},
		{"parentheses", "(4000 + 1500) - (200 + 300)", 5000, true},
		{"thousands separators", "12,000 + 3,500", 15500, true},
		{"average", "average(4100, 4000, 4300)", 4133.333333333333, true},
		{"median odd", "median(4100, 4000, 4300)", 4100, true},
		{"median even", "median(1, 2, 3, 4)", 2.5, true},
		{"nested function", "1000 + median(100, 200, 300)", 1200, true},
		{"dollar sign is not an expression", "$1,234.56", 0, false},
		{"mortgage descriptor is not an expression", "principal=-100000 date=2020-01-01 payment=1500 rate=4%", 0, false},
		{"words are not an expression", "twelve hundred", 0, false},
		{"unknown function", "mode(1, 2, 2)", 0, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := EvalExpression(tc.text)
			if ok != tc.ok {
				t.Fatalf("EvalExpression(%q) ok = %v, want %v", tc.text, ok, tc.ok)
			}
			if !ok {
				return
			}
			if diff := got - tc.want; diff < -1e-9 || diff > 1e-9 {
				t.Errorf("EvalExpression(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestStripThousands(t *testing.T) {
	testCases := []struct {
		text string
		want string
	}{
		{"1,234", "1234"},
		{"1,234,567", "1234567"},
		{"median(1,234, 5)", "median(1234, 5)"},
		{"12,34", "12,34"}, // not a thousands separator
	}
	for _, tc := range testCases {
		if got := stripThousands(tc.text); got != tc.want {
			t.Errorf("stripThousands(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestCollapseSpaces(t *testing.T) {
	if got := CollapseSpaces("  principal=1   date=2020-01-01  "); got != "principal=1 date=2020-01-01" {
		t.Errorf("CollapseSpaces = %q", got)
	}
}
