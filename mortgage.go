package networth

import (
	"strings"

	"github.com/shopspring/decimal"
)

// A Mortgage describes an amortized loan (or savings plan) compactly:
// the principal on a start date, the monthly payment, and the annual
// interest rate. An owed mortgage has a negative principal; a savings
// plan a positive one. An optional ownership share scales principal
// and payment before the balance computation.
type Mortgage struct {
	Principal decimal.Decimal // signed dollars; negative = owed
	Start     Date
	Payment   decimal.Decimal // monthly, dollars
	Rate      decimal.Decimal // annual, as a fraction
	Share     decimal.Decimal // ownership fraction, default 1
}

// TryParseMortgage parses text as whitespace-separated key=value
// tokens with keys principal, date, payment, rate and optionally
// share. Any missing required key, unknown key, or unparseable date or
// quantity means the text is not a mortgage descriptor: the caller
// falls through to plain quantity parsing, and no error surfaces.
//
// rate and share given with a % unit are divided by 100, so 4.375%
// and 0.04375 are equivalent.
func TryParseMortgage(text string, dateFormats []string) (*Mortgage, bool) {
	m := &Mortgage{Share: decimal.NewFromInt(1)}
	seen := make(map[string]bool)

	fields := strings.Fields(text)
	if len(fields) < 4 {
		return nil, false
	}
	for _, field := range fields {
		key, value, found := strings.Cut(field, "=")
		if !found {
			return nil, false
		}
		seen[key] = true
		switch key {
		case "date":
			start, err := ParseDate(value, dateFormats...)
			if err != nil {
				return nil, false
			}
			m.Start = start
		case "principal":
			q, err := ParseQuantity(value, Dollar)
			if err != nil || !q.IsDollar() {
				return nil, false
			}
			m.Principal = q.Decimal()
		case "payment":
			q, err := ParseQuantity(value, Dollar)
			if err != nil || !q.IsDollar() {
				return nil, false
			}
			m.Payment = q.Decimal()
		case "rate":
			rate, ok := parseFraction(value)
			if !ok {
				return nil, false
			}
			m.Rate = rate
		case "share":
			share, ok := parseFraction(value)
			if !ok {
				return nil, false
			}
			m.Share = share
		default:
			return nil, false
		}
	}
	for _, key := range []string{"principal", "date", "payment", "rate"} {
		if !seen[key] {
			return nil, false
		}
	}
	return m, true
}

// parseFraction reads a bare fraction ("0.04375") or a percentage
// ("4.375%"), which is divided by 100.
func parseFraction(value string) (decimal.Decimal, bool) {
	percent := strings.HasSuffix(value, "%")
	value = strings.TrimSuffix(value, "%")
	d, err := decimal.NewFromString(strings.ReplaceAll(value, ",", ""))
	if err != nil {
		return decimal.Decimal{}, false
	}
	if percent {
		d = d.Shift(-2)
	}
	return d, true
}

var (
	twelve = decimal.NewFromInt(12)
	one    = decimal.NewFromInt(1)
)

// Balance returns the amortized dollar balance as of the given date.
// Elapsed whole months ignore the day of the month. With monthly rate
// r and growth g = (1+r)^n over n months,
//
//	balance = principal*g + payment*(g-1)/r
//
// which for r = 0 degenerates to principal + payment*n. The share
// scales principal and payment once, before amortization.
func (m *Mortgage) Balance(asOf Date) Quantity {
	principal := m.Principal.Mul(m.Share)
	payment := m.Payment.Mul(m.Share)
	n := m.Start.MonthsUntil(asOf)

	r := m.Rate.Div(twelve)
	if r.IsZero() {
		return Q(principal.Add(payment.Mul(decimal.NewFromInt(int64(n)))), Dollar)
	}
	g := one.Add(r).Pow(decimal.NewFromInt(int64(n)))
	balance := principal.Mul(g).Add(payment.Mul(g.Sub(one)).Div(r))
	return Q(balance, Dollar)
}
