package networth

import (
	"time"

	"github.com/shopspring/decimal"
)

// Price is a dollar amount for one unit of a token (coin, share, or
// ounce), together with where and when it was obtained.
type Price struct {
	Value     decimal.Decimal // dollars per unit
	Provider  string
	FetchedAt time.Time
}

// Age returns how old the price is at the given instant.
func (p Price) Age(now time.Time) time.Duration { return now.Sub(p.FetchedAt) }

// Quantity returns the price as a dollar quantity.
func (p Price) Quantity() Quantity { return Q(p.Value, Dollar) }
