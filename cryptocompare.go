package networth

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// CryptoCompare prices crypto tokens against USD using the
// cryptocompare.com multi-price endpoint. The endpoint works without a
// key for modest request volumes; an API key, when available, raises
// the rate limit.
type CryptoCompare struct {
	APIKey string

	base string // test hook
}

func (c *CryptoCompare) Name() string { return "cryptocompare" }

func (c *CryptoCompare) addr() string {
	if c.base != "" {
		return c.base
	}
	return "https://min-api.cryptocompare.com/data/pricemulti"
}

// Fetch asks for all tokens in a single request:
//
//	GET /data/pricemulti?fsyms=BTC,ETH&tsyms=USD
//
// and the response is a regular two-level object:
//
//	{"BTC": {"USD": 67000.12}, "ETH": {"USD": 3200.4}}
func (c *CryptoCompare) Fetch(ctx context.Context, tokens []string) (map[string]decimal.Decimal, error) {
	v := url.Values{}
	v.Set("fsyms", strings.Join(tokens, ","))
	v.Set("tsyms", "USD")
	if c.APIKey != "" {
		v.Set("api_key", c.APIKey)
	}
	addr := c.addr() + "?" + v.Encode()

	var body map[string]map[string]float64
	if err := jwget(ctx, addr, &body); err != nil {
		return nil, err
	}

	prices := make(map[string]decimal.Decimal)
	for _, token := range tokens {
		usd, ok := body[token]["USD"]
		if !ok {
			return nil, fmt.Errorf("no USD price for %q: %w", token, errGarbled)
		}
		prices[token] = decimal.NewFromFloat(usd)
	}
	return prices, nil
}
