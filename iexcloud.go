package networth

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// IEXCloud prices securities by ticker symbol using the IEX Cloud
// last-trade endpoint. It requires an API token, typically resolved by
// name through the secret store.
type IEXCloud struct {
	Token string

	base string // test hook
}

func (c *IEXCloud) Name() string { return "iexcloud" }

func (c *IEXCloud) addr() string {
	if c.base != "" {
		return c.base
	}
	return "https://cloud.iexapis.com/v1/tops/last"
}

// iexLast is one element of the tops/last response array.
type iexLast struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
	Size   int64   `json:"size"`
	Time   int64   `json:"time"`
}

// Fetch asks for all symbols in a single request:
//
//	GET /v1/tops/last?symbols=AAPL,GOOG&token=...
func (c *IEXCloud) Fetch(ctx context.Context, tokens []string) (map[string]decimal.Decimal, error) {
	if c.Token == "" {
		return nil, fmt.Errorf("IEX Cloud API token is not set")
	}
	v := url.Values{}
	v.Set("symbols", strings.Join(tokens, ","))
	v.Set("token", c.Token)
	addr := c.addr() + "?" + v.Encode()

	var body []iexLast
	if err := jwget(ctx, addr, &body); err != nil {
		return nil, err
	}

	prices := make(map[string]decimal.Decimal)
	for _, last := range body {
		prices[last.Symbol] = decimal.NewFromFloat(last.Price)
	}
	for _, token := range tokens {
		if _, ok := prices[token]; !ok {
			return nil, fmt.Errorf("no price for %q: %w", token, errGarbled)
		}
	}
	return prices, nil
}
