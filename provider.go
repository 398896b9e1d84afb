package networth

import (
	"context"
	"errors"
	"log"
	"slices"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// A PriceProvider translates a set of requested tokens into a request
// to one external price service, and its response into a token→price
// mapping in dollars per unit.
type PriceProvider interface {
	// Name identifies the provider; it also names its cache file.
	Name() string
	// Fetch retrieves current dollar prices for the given tokens.
	// It is never called with an empty token set.
	Fetch(ctx context.Context, tokens []string) (map[string]decimal.Decimal, error)
}

// GetPrices returns prices for the given tokens from one provider,
// consulting the cache first. With an empty token set it returns an
// empty mapping without any I/O. A valid cache is returned unchanged
// and no network access occurs. Otherwise the provider is asked once;
// on success the full price set is written back to the cache.
//
// Failures are wrapped in a *ServiceError carrying the provider name.
func GetPrices(ctx context.Context, p PriceProvider, tokens []string, cache *PriceCache) (map[string]Price, error) {
	if len(tokens) == 0 {
		return map[string]Price{}, nil
	}
	if prices, ok := cache.Load(p.Name()); ok {
		return prices, nil
	}

	raw, err := p.Fetch(ctx, tokens)
	if err != nil {
		if errors.Is(err, errGarbled) {
			return nil, &ServiceError{Provider: p.Name(), Msg: "garbled response"}
		}
		return nil, &ServiceError{Provider: p.Name(), Msg: "request failed", Err: err}
	}

	if err := cache.Store(p.Name(), raw); err != nil {
		// A cache write failure costs a refetch next run, nothing more.
		log.Printf("%s: cache write err (ignored): %v", p.Name(), err)
	}

	now := time.Now()
	prices := make(map[string]Price, len(raw))
	for token, value := range raw {
		prices[token] = Price{Value: value, Provider: p.Name(), FetchedAt: now}
	}
	return prices, nil
}

// A Registry is an ordered list of providers together with the tokens
// requested from each.
type Registry struct {
	providers []PriceProvider
	tokens    map[string][]string // provider name -> requested tokens
}

// NewRegistry returns an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{tokens: make(map[string][]string)}
}

// Register adds a provider to the registry.
func (r *Registry) Register(p PriceProvider) {
	r.providers = append(r.providers, p)
}

// Request records that the given token should be priced by the named
// provider. Unknown provider names are rejected at fetch time.
func (r *Registry) Request(provider, token string) {
	r.tokens[provider] = append(r.tokens[provider], token)
}

// Tokens returns the sorted, deduplicated token list requested from a
// provider.
func (r *Registry) Tokens(provider string) []string {
	tokens := append([]string(nil), r.tokens[provider]...)
	sort.Strings(tokens)
	return slices.Compact(tokens)
}

// FetchAll fetches prices from every registered provider with pending
// requests, one task per provider, and merges the results. Providers
// are independent, so the fetches run concurrently; the merge into the
// returned mapping is serialized after all fetches complete, keeping
// totals identical to a sequential run. A provider failure does not
// stop the others: failed providers are reported in errs and their
// tokens are simply absent from the result.
func (r *Registry) FetchAll(ctx context.Context, cache *PriceCache) (prices map[string]Price, errs []error) {
	results := make([]map[string]Price, len(r.providers))
	ferrs := make([]error, len(r.providers))

	g, ctx := errgroup.WithContext(ctx)
	for i, p := range r.providers {
		tokens := r.Tokens(p.Name())
		if len(tokens) == 0 {
			continue
		}
		g.Go(func() error {
			results[i], ferrs[i] = GetPrices(ctx, p, tokens, cache)
			// Provider failures are non-fatal; only cancellation
			// aborts the remaining fetches.
			return context.Cause(ctx)
		})
	}
	interrupted := g.Wait()

	prices = make(map[string]Price)
	for i := range r.providers {
		if err := ferrs[i]; err != nil {
			errs = append(errs, err)
			continue
		}
		for token, price := range results[i] {
			prices[token] = price
		}
	}
	if interrupted != nil {
		errs = append(errs, interrupted)
	}
	return prices, errs
}
