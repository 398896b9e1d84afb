package networth

import (
	"context"
	"sort"
	"time"
)

// PriceRow is one line of the price-table report: a priced token, the
// native magnitude held across accounts, and its unit price.
type PriceRow struct {
	Token    string
	Native   Quantity // total native magnitude held
	Price    Quantity // dollars per unit
	Provider string
	Age      time.Duration // of the price, since its fetch
}

// Report is the complete result of one valuation run, consumed by the
// renderer.
type Report struct {
	Profile string
	Date    Date
	Totals  *Totals
	Prices  []PriceRow
	// ProviderErrors are the per-provider failures of the run. They
	// are non-fatal: affected tokens appear without dollar values.
	ProviderErrors []error
}

// NewReport runs the whole engine once: it determines which tokens the
// accounts hold, fetches their prices (through the per-provider
// caches), resolves every raw field, and aggregates the totals.
//
// Provider failures degrade the report; configuration problems and
// cancellation abort it.
func NewReport(ctx context.Context, cfg *Config, accounts []*Account, secrets SecretStore, cache *PriceCache, order Order) (*Report, error) {
	byProvider := Tokens(cfg, accounts)
	names := make([]string, 0, len(byProvider))
	for name := range byProvider {
		names = append(names, name)
	}
	sort.Strings(names)

	registry := NewRegistry()
	for _, name := range names {
		provider, err := cfg.Provider(name, secrets)
		if err != nil {
			// Credentials are resolved only for providers whose
			// tokens are requested, so this is a real config error.
			return nil, err
		}
		registry.Register(provider)
		for _, token := range byProvider[name] {
			registry.Request(name, token)
		}
	}

	prices, errs := registry.FetchAll(ctx, cache)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := Today()
	resolver := NewResolver(cfg, prices, now)
	agg := NewAggregation(cfg, resolver, now)
	for _, account := range accounts {
		agg.Add(account)
	}

	report := &Report{
		Profile:        cfg.Profile,
		Date:           now,
		Totals:         agg.Totals(order),
		ProviderErrors: errs,
	}

	tokens := make([]string, 0, len(cfg.Tokens))
	for token := range cfg.Tokens {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	for _, token := range tokens {
		native, held := resolver.NativeTotal(token)
		price, priced := resolver.Price(token)
		if !held && !priced {
			continue
		}
		row := PriceRow{Token: token, Native: native}
		if priced {
			row.Price = price.Quantity()
			row.Provider = price.Provider
			row.Age = price.Age(time.Now())
		}
		report.Prices = append(report.Prices, row)
	}
	return report, nil
}
