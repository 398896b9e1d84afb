package networth

import (
	"fmt"
)

// Resolver converts one raw account field into a normalized (category,
// quantity) pair, consulting fetched prices for tokens and the
// mortgage calculator for loan descriptors. It also keeps per-token
// native running totals for the price-table and detail reports.
type Resolver struct {
	cfg    *Config
	prices map[string]Price
	asOf   Date

	// nativeTotals accumulates, per token, the native magnitude
	// resolved across all accounts.
	nativeTotals map[string]Quantity
}

// NewResolver returns a resolver over the given fetched prices.
// Tokens absent from prices degrade to native-unit-only reporting.
func NewResolver(cfg *Config, prices map[string]Price, asOf Date) *Resolver {
	return &Resolver{
		cfg:          cfg,
		prices:       prices,
		asOf:         asOf,
		nativeTotals: make(map[string]Quantity),
	}
}

// NativeTotal returns the accumulated native magnitude for a token,
// e.g. the total BTC held across accounts.
func (r *Resolver) NativeTotal(token string) (Quantity, bool) {
	q, ok := r.nativeTotals[token]
	return q, ok
}

// Price returns the fetched price for a token, if any.
func (r *Resolver) Price(token string) (Price, bool) {
	p, ok := r.prices[token]
	return p, ok
}

// Resolve classifies and normalizes one raw field value. In order it
// tries: arithmetic-expression evaluation, priced-token conversion,
// mortgage-descriptor parsing, and plain quantity parsing. The
// returned key is the field's final category; the quantity carries a
// magnitude and a unit, dollar or native.
//
// Failures are *InvalidValue errors attributed to the account and
// field; the caller skips the holding and continues.
func (r *Resolver) Resolve(key string, raw any, account string) (string, Quantity, error) {
	// The raw value is either a JSON number or a string; a string may
	// still be numeric once evaluated as an expression.
	var magnitude float64
	var text string
	numeric := false
	switch v := raw.(type) {
	case float64:
		magnitude, numeric = v, true
	case string:
		if m, ok := EvalExpression(v); ok {
			magnitude, numeric = m, true
		} else {
			text = CollapseSpaces(v)
		}
	default:
		return "", Quantity{}, &InvalidValue{Account: account, Field: key,
			Err: fmt.Errorf("unsupported value of type %T", raw)}
	}

	resolved := key
	if category, ok := r.cfg.Aliases[key]; ok {
		resolved = category
	}

	if info, isToken := r.cfg.Tokens[key]; isToken {
		if !numeric {
			q, err := ParseQuantity(text, "")
			if err != nil {
				return "", Quantity{}, &InvalidValue{Account: account, Field: key, Err: err}
			}
			magnitude = q.AsFloat()
		}
		unit := info.Unit
		if unit == "" {
			unit = key
		}
		native := Q(magnitude, unit)
		r.nativeTotals[key] = r.nativeTotals[key].Add(native)

		if price, ok := r.prices[key]; ok {
			return info.Category, native.Mul(price.Value), nil
		}
		// Unpriced: report the native quantity under the raw key.
		return key, native, nil
	}

	if !numeric {
		if m, ok := TryParseMortgage(text, r.cfg.DateFormats); ok {
			return resolved, m.Balance(r.asOf), nil
		}
		q, err := ParseQuantity(text, Dollar)
		if err != nil {
			return "", Quantity{}, &InvalidValue{Account: account, Field: key, Err: err}
		}
		return resolved, q, nil
	}
	return resolved, Q(magnitude, Dollar), nil
}

// Tokens returns the token symbols, grouped by provider name, that the
// given accounts actually hold. Only these provider/token pairs are
// fetched, so credentials of unused providers are never resolved.
func Tokens(cfg *Config, accounts []*Account) map[string][]string {
	byProvider := make(map[string][]string)
	seen := make(map[string]bool)
	for _, account := range accounts {
		for _, field := range composite(cfg, account) {
			info, ok := cfg.Tokens[field.Key]
			if !ok || seen[field.Key] {
				continue
			}
			seen[field.Key] = true
			byProvider[info.Provider] = append(byProvider[info.Provider], field.Key)
		}
	}
	return byProvider
}

// composite returns the account's raw holding list from the first
// configured value field it carries.
func composite(cfg *Config, account AccountRecord) []Field {
	for _, name := range cfg.ValueFields {
		if fields, ok := account.Composite(name); ok {
			return fields
		}
	}
	return nil
}
