package networth

import (
	"context"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// Metals prices precious metals in dollars per troy ounce using the
// metals.live spot feed. Tokens are metal names: gold, silver,
// platinum, palladium.
type Metals struct {
	base string // test hook
}

func (*Metals) Name() string { return "metals" }

func (c *Metals) addr() string {
	if c.base != "" {
		return c.base
	}
	return "https://api.metals.live/v1/spot"
}

// Fetch reads the whole spot list in one request. The response is an
// irregular array where each element keys a different metal, e.g.
//
//	[{"gold": 2650.2, "timestamp": ...}, {"silver": 30.9, ...}, ...]
//
// so instead of a typed struct each requested metal is extracted with a
// jsonpath query.
func (c *Metals) Fetch(ctx context.Context, tokens []string) (map[string]decimal.Decimal, error) {
	var jobj any
	if err := jwget(ctx, c.addr(), &jobj); err != nil {
		return nil, err
	}

	prices := make(map[string]decimal.Decimal)
	for _, token := range tokens {
		path := "$.." + strings.ToLower(token)
		jval, err := jsonpath.Get(path, jobj)
		if err != nil {
			return nil, fmt.Errorf("no spot price for %q: %w", token, errGarbled)
		}
		// jsonpath is never clear about whether it returns a list of one
		// answer or a single answer; keep the first one if any.
		if jlist, ok := jval.([]any); ok {
			if len(jlist) == 0 {
				return nil, fmt.Errorf("no spot price for %q: %w", token, errGarbled)
			}
			jval = jlist[0]
		}
		spot, ok := jval.(float64)
		if !ok {
			return nil, fmt.Errorf("unexpected spot price %v for %q: %w", jval, token, errGarbled)
		}
		prices[token] = decimal.NewFromFloat(spot)
	}
	return prices, nil
}
