package networth

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// Yahoo prices securities by ticker symbol using the keyless Yahoo
// Finance quote endpoint. It is the fallback securities service for
// profiles without an IEX Cloud token.
type Yahoo struct {
	base string // test hook
}

func (*Yahoo) Name() string { return "yahoo" }

func (c *Yahoo) addr() string {
	if c.base != "" {
		return c.base
	}
	return "https://query1.finance.yahoo.com/v7/finance/quote"
}

// yahooQuoteResponse maps the part of the quote response we use.
type yahooQuoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol             string  `json:"symbol"`
			RegularMarketPrice float64 `json:"regularMarketPrice"`
			Currency           string  `json:"currency"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteResponse"`
}

// Fetch asks for all symbols in a single request:
//
//	GET /v7/finance/quote?symbols=AAPL,GOOG
func (c *Yahoo) Fetch(ctx context.Context, tokens []string) (map[string]decimal.Decimal, error) {
	v := url.Values{}
	v.Set("symbols", strings.Join(tokens, ","))
	addr := c.addr() + "?" + v.Encode()

	var body yahooQuoteResponse
	if err := jwget(ctx, addr, &body); err != nil {
		return nil, err
	}
	if e := body.QuoteResponse.Error; e != nil {
		return nil, fmt.Errorf("%s: %s", e.Code, e.Description)
	}

	prices := make(map[string]decimal.Decimal)
	for _, quote := range body.QuoteResponse.Result {
		if quote.Currency != "" && quote.Currency != "USD" {
			return nil, fmt.Errorf("%q is quoted in %s, not USD", quote.Symbol, quote.Currency)
		}
		prices[quote.Symbol] = decimal.NewFromFloat(quote.RegularMarketPrice)
	}
	for _, token := range tokens {
		if _, ok := prices[token]; !ok {
			return nil, fmt.Errorf("no quote for %q: %w", token, errGarbled)
		}
	}
	return prices, nil
}
