package networth

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Dollar is the unit of all monetary quantities. The engine reports in
// a single currency; non-dollar units are tracked but never summed into
// monetary totals.
const Dollar = "$"

// newDecimal is a convenient factory for decimal.Decimal.
func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Quantity is a numeric magnitude with a unit: dollars, a token symbol,
// "shares", "oz", or an arbitrary non-monetary unit such as "miles".
type Quantity struct {
	value decimal.Decimal
	unit  string
}

// Q returns a Quantity with the given magnitude and unit.
func Q[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T, unit string) Quantity {
	return Quantity{value: newDecimal(value), unit: unit}
}

func (q Quantity) Unit() string     { return q.unit }
func (q Quantity) IsDollar() bool   { return q.unit == Dollar }
func (q Quantity) IsZero() bool     { return q.value.IsZero() }
func (q Quantity) IsNegative() bool { return q.value.IsNegative() }
func (q Quantity) IsPositive() bool { return q.value.IsPositive() }
func (q Quantity) Neg() Quantity    { return Quantity{value: q.value.Neg(), unit: q.unit} }
func (q Quantity) Abs() Quantity    { return Quantity{value: q.value.Abs(), unit: q.unit} }

// Decimal returns the magnitude as a decimal.
func (q Quantity) Decimal() decimal.Decimal { return q.value }

// AsFloat returns the magnitude as a float64, for proportional display math only.
func (q Quantity) AsFloat() float64 { return q.value.InexactFloat64() }

// Equal reports whether two quantities have the same magnitude and unit.
func (q Quantity) Equal(p Quantity) bool {
	return q.unit == p.unit && q.value.Equal(p.value)
}

// Add sums two quantities. Units must agree; the empty unit is weak and
// takes the other operand's unit.
func (q Quantity) Add(p Quantity) Quantity {
	return Quantity{value: q.value.Add(p.value), unit: unit(q, p)}
}

// Sub subtracts p from q. Units must agree as for Add.
func (q Quantity) Sub(p Quantity) Quantity {
	return Quantity{value: q.value.Sub(p.value), unit: unit(q, p)}
}

// Mul multiplies a native magnitude by a per-unit dollar price,
// producing a dollar quantity.
func (q Quantity) Mul(price decimal.Decimal) Quantity {
	return Quantity{value: q.value.Mul(price), unit: Dollar}
}

// makes the "" unit totally weak.
func unit(a, b Quantity) string {
	if a.unit == "" {
		return b.unit
	}
	if b.unit == "" {
		return a.unit
	}
	if a.unit != b.unit {
		panic("unit mismatch " + a.unit + " != " + b.unit)
	}
	return a.unit
}

// String renders the quantity as it is written in account records:
// dollars with a leading $, everything else as "<magnitude> <unit>".
func (q Quantity) String() string {
	if q.unit == Dollar {
		if q.value.IsNegative() {
			return "-$" + q.value.Neg().String()
		}
		return "$" + q.value.String()
	}
	if q.unit == "" {
		return q.value.String()
	}
	return q.value.String() + " " + q.unit
}

// Display renders a dollar quantity with grouping and two decimals,
// e.g. "-$12,345.67". Non-dollar quantities fall back to String.
func (q Quantity) Display() string {
	if q.unit != Dollar {
		return q.String()
	}
	cur := money.GetCurrency(money.USD)
	cents := q.value.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return cur.Formatter().Format(cents)
}

// scale factors accepted on quantity magnitudes, as in "$100k".
var scaleFactors = map[byte]int32{'k': 3, 'K': 3, 'M': 6, 'G': 9}

// trailingAlpha returns the index where the trailing run of letters
// starts, or len(s) if there is none.
func trailingAlpha(s string) int {
	i := len(s)
	for i > 0 {
		c := s[i-1]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			break
		}
		i--
	}
	return i
}

// ParseQuantity parses a textual quantity: an optional sign, an
// optional leading $, a number with optional thousands separators, an
// optional scale factor (k, M, G), and an optional trailing unit word.
// defaultUnit applies when the text itself carries no unit.
func ParseQuantity(text, defaultUnit string) (Quantity, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Quantity{}, fmt.Errorf("empty quantity")
	}

	neg := false
	switch s[0] {
	case '-':
		neg, s = true, s[1:]
	case '+':
		s = s[1:]
	}

	u := defaultUnit
	if strings.HasPrefix(s, "$") {
		u, s = Dollar, s[1:]
		// allow "$-100" as well as "-$100"
		if strings.HasPrefix(s, "-") {
			neg, s = !neg, s[1:]
		}
	} else if i := strings.IndexAny(s, " \t"); i >= 0 {
		u, s = strings.TrimSpace(s[i:]), s[:i]
	} else if i := trailingAlpha(s); i < len(s)-1 {
		// an attached unit like "20oz"; a single trailing letter is
		// left in place so that scale factors like "100k" still work.
		u, s = s[i:], s[:i]
	}

	s = strings.ReplaceAll(s, ",", "")
	var shift int32
	if len(s) > 1 {
		if f, ok := scaleFactors[s[len(s)-1]]; ok {
			shift, s = f, s[:len(s)-1]
		}
	}

	value, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, fmt.Errorf("invalid quantity %q: %w", text, err)
	}
	value = value.Shift(shift)
	if neg {
		value = value.Neg()
	}
	return Quantity{value: value, unit: u}, nil
}
