package networth

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/PaesslerAG/gval"
)

// Account fields may hold small arithmetic expressions instead of a
// bare number, like "4000 + 1500" or "median(4100, 4000, 4300)". The
// language is a sandboxed expression evaluator: arithmetic operators,
// parentheses, numeric literals, and a fixed registered function set.
// There are no variables and no access to anything outside the text.
var exprLang = gval.NewLanguage(
	gval.Arithmetic(),
	gval.Function("median", median),
	gval.Function("average", average),
)

func average(args ...float64) (float64, error) {
	if len(args) == 0 {
		return 0, nil
	}
	var sum float64
	for _, a := range args {
		sum += a
	}
	return sum / float64(len(args)), nil
}

func median(args ...float64) (float64, error) {
	if len(args) == 0 {
		return 0, nil
	}
	sorted := append([]float64(nil), args...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2], nil
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2, nil
}

var thousandsRE = regexp.MustCompile(`(\d),(\d\d\d)`)

// stripThousands removes thousands separators: a comma between a digit
// and a group of exactly three digits.
func stripThousands(s string) string {
	for {
		stripped := thousandsRE.ReplaceAllString(s, "$1$2")
		if stripped == s {
			return s
		}
		s = stripped
	}
}

// EvalExpression evaluates text as an arithmetic expression, with
// thousands separators stripped first. ok is false when the text is
// not an expression (the caller then treats it as a literal).
func EvalExpression(text string) (value float64, ok bool) {
	v, err := exprLang.EvaluateWithContext(context.Background(), stripThousands(text), nil)
	if err != nil {
		return 0, false
	}
	f, isNum := v.(float64)
	if !isNum {
		return 0, false
	}
	return f, true
}

var spacesRE = regexp.MustCompile(`\s+`)

// CollapseSpaces normalizes internal whitespace runs to single spaces.
func CollapseSpaces(text string) string {
	return spacesRE.ReplaceAllString(strings.TrimSpace(text), " ")
}
