package networth

import (
	"fmt"
	"math"
	"sort"
)

// A Holding is one resolved (category, quantity) pair of an account.
type Holding struct {
	Key   string
	Value Quantity
}

// AccountTotal is the aggregated view of one account.
type AccountTotal struct {
	Name     string
	Holdings []Holding // merged by final category, in field order
	Total    Quantity  // sum of dollar holdings only
	Remapped bool      // resolution changed at least one key; a detail breakdown is worth showing
	AgeDays  int       // days since the account's updated date; meaningful only when HasAge
	HasAge   bool
	Stale    bool // AgeDays exceeds the profile's max account age
}

// IsDebt classifies the account by the sign of its total: an account
// whose dollar total is zero or negative counts toward debt.
func (a *AccountTotal) IsDebt() bool { return !a.Total.IsPositive() }

// TypeTotal is the aggregated value of one category across accounts.
// Dollar and native-unit categories are kept separate: a category's
// quantity always has a single unit.
type TypeTotal struct {
	Key   string
	Value Quantity
	// Bar is the proportional bar width for dollar categories,
	// relative to the largest-magnitude dollar category. Sign is
	// carried by Value, never by the bar.
	Bar int
}

// Gross holds the three summary numbers.
type Gross struct {
	Assets Quantity // Σ account totals over accounts with total > 0
	Debt   Quantity // Σ |account total| over the rest; never negative
	Net    Quantity // Assets − Debt
}

// An Order is a secondary display ordering for account totals.
type Order int

const (
	// ByName orders accounts alphabetically.
	ByName Order = iota
	// ByValue orders accounts by descending dollar total.
	ByValue
)

// Totals is the result of one aggregation run.
type Totals struct {
	Accounts []AccountTotal
	ByType   []TypeTotal
	Gross    Gross
	// Warnings are the non-fatal problems met during the run: invalid
	// holdings (skipped), stale or future-dated accounts.
	Warnings []error
}

type typeKey struct{ key, unit string }

// AggregationContext folds resolved holdings into running totals. It
// is owned by a single run: create one, Add every account, then call
// Totals once.
type AggregationContext struct {
	cfg      *Config
	resolver *Resolver
	now      Date

	accounts []AccountTotal
	byType   map[typeKey]Quantity
	order    []typeKey // first-seen order, for stable sorting of ties
	warnings []error
}

// NewAggregation returns an empty aggregation context for one run.
func NewAggregation(cfg *Config, resolver *Resolver, now Date) *AggregationContext {
	return &AggregationContext{
		cfg:      cfg,
		resolver: resolver,
		now:      now,
		byType:   make(map[typeKey]Quantity),
	}
}

// Add resolves and accumulates all holdings of one account. Holdings
// that fail to resolve are reported as warnings and skipped; the rest
// of the account still counts.
func (a *AggregationContext) Add(account AccountRecord) {
	at := AccountTotal{Name: account.Name(), Total: Q(0, Dollar)}

	// Holdings merge by resolved key AND unit: two fields may map to
	// the same category with different units (one in dollars, one in
	// some native unit), and then they stay separate entries.
	merged := make(map[typeKey]int) // -> index in at.Holdings
	for _, field := range composite(a.cfg, account) {
		key, value, err := a.resolver.Resolve(field.Key, field.Raw, account.Name())
		if err != nil {
			a.warnings = append(a.warnings, err)
			continue
		}
		if key != field.Key {
			at.Remapped = true
		}
		if i, ok := merged[typeKey{key, value.Unit()}]; ok {
			at.Holdings[i].Value = at.Holdings[i].Value.Add(value)
		} else {
			merged[typeKey{key, value.Unit()}] = len(at.Holdings)
			at.Holdings = append(at.Holdings, Holding{Key: key, Value: value})
		}
		if value.IsDollar() {
			at.Total = at.Total.Add(value)
		}
	}

	a.staleness(&at, account.Updated())

	for _, h := range at.Holdings {
		k := typeKey{h.Key, h.Value.Unit()}
		if _, ok := a.byType[k]; !ok {
			a.order = append(a.order, k)
		}
		a.byType[k] = a.byType[k].Add(h.Value)
	}
	a.accounts = append(a.accounts, at)
}

// staleness annotates the account with its age. An unparseable or
// absent updated date is not an error; a future date is a warning, not
// an error.
func (a *AggregationContext) staleness(at *AccountTotal, updated string) {
	if updated == "" {
		return
	}
	on, err := ParseDate(updated, a.cfg.DateFormats...)
	if err != nil {
		a.warnings = append(a.warnings, fmt.Errorf("account %s: %w", at.Name, err))
		return
	}
	at.AgeDays = on.DaysUntil(a.now)
	at.HasAge = true
	if at.AgeDays < 0 {
		a.warnings = append(a.warnings, fmt.Errorf("account %s: updated date %s is in the future", at.Name, on))
		return
	}
	at.Stale = at.AgeDays > a.cfg.MaxAccountAge
}

// Totals closes the aggregation and returns display-ready totals with
// the requested account ordering. Type totals are always ordered by
// descending magnitude, with proportional bars scaled to the largest
// dollar category.
func (a *AggregationContext) Totals(order Order) *Totals {
	t := &Totals{
		Accounts: append([]AccountTotal(nil), a.accounts...),
		Gross:    Gross{Assets: Q(0, Dollar), Debt: Q(0, Dollar)},
		Warnings: a.warnings,
	}

	switch order {
	case ByValue:
		sort.SliceStable(t.Accounts, func(i, j int) bool {
			return t.Accounts[j].Total.Decimal().LessThan(t.Accounts[i].Total.Decimal())
		})
	default:
		sort.SliceStable(t.Accounts, func(i, j int) bool {
			return t.Accounts[i].Name < t.Accounts[j].Name
		})
	}

	for _, at := range t.Accounts {
		if at.IsDebt() {
			t.Gross.Debt = t.Gross.Debt.Add(at.Total.Abs())
		} else {
			t.Gross.Assets = t.Gross.Assets.Add(at.Total)
		}
	}
	t.Gross.Net = t.Gross.Assets.Sub(t.Gross.Debt)

	var maxDollar float64
	for _, k := range a.order {
		t.ByType = append(t.ByType, TypeTotal{Key: k.key, Value: a.byType[k]})
		if k.unit == Dollar {
			maxDollar = math.Max(maxDollar, math.Abs(a.byType[k].AsFloat()))
		}
	}
	sort.SliceStable(t.ByType, func(i, j int) bool {
		return math.Abs(t.ByType[j].Value.AsFloat()) < math.Abs(t.ByType[i].Value.AsFloat())
	})
	if maxDollar > 0 {
		for i := range t.ByType {
			if t.ByType[i].Value.IsDollar() {
				scaled := math.Abs(t.ByType[i].Value.AsFloat()) / maxDollar * float64(a.cfg.BarWidth)
				t.ByType[i].Bar = int(math.Round(scaled))
			}
		}
	}
	return t
}
