package mononomics

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency used when none is configured.
const DefaultCurrency = "PHP"

// ErrInvalidAmountFormat is returned by ParseAmount for anything that is not
// a non-negative decimal number.
var ErrInvalidAmountFormat = errors.New("invalid amount")

// D is a convenient factory for decimal.Decimal.
func D[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// ParseAmount parses a user supplied amount. Both "12.34" and "12,34" are
// accepted. Negative values are rejected, zero is accepted: whether zero is
// meaningful is decided by the ledger operation.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "+")
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidAmountFormat)
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w %q", ErrInvalidAmountFormat, s)
	}
	if v.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w %q: cannot be negative", ErrInvalidAmountFormat, s)
	}
	return v, nil
}

// Money is an amount bound to a currency. The ledger computes on plain
// decimals, Money is only used to present them.
type Money struct {
	value decimal.Decimal
	cur   string
}

// M returns value expressed in currency.
func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: D(value), cur: currency}
}

// currency returns the go-money currency, never nil even for unknown codes.
func (m Money) currency() money.Currency {
	return *money.New(0, m.cur).Currency()
}

// String formats the amount with the currency symbol, e.g. "₱1,234.50".
func (m Money) String() string {
	cur := m.currency()
	minor := m.value.Shift(int32(cur.Fraction)).Round(0)
	if minor.Abs().LessThanOrEqual(maxMinor) {
		return cur.Formatter().Format(minor.IntPart())
	}
	return formatLarge(cur.Formatter(), minor)
}

// maxMinor is the largest amount of minor units go-money can format.
var maxMinor = decimal.NewFromInt(math.MaxInt64)

// formatLarge applies the layout of f to an amount of minor units beyond
// int64.
func formatLarge(f *money.Formatter, minor decimal.Decimal) string {
	sa := minor.Abs().String()
	if len(sa) <= f.Fraction {
		sa = strings.Repeat("0", f.Fraction-len(sa)+1) + sa
	}
	if f.Thousand != "" {
		for i := len(sa) - f.Fraction - 3; i > 0; i -= 3 {
			sa = sa[:i] + f.Thousand + sa[i:]
		}
	}
	if f.Fraction > 0 {
		sa = sa[:len(sa)-f.Fraction] + f.Decimal + sa[len(sa)-f.Fraction:]
	}
	sa = strings.Replace(f.Template, "1", sa, 1)
	sa = strings.Replace(sa, "$", f.Grapheme, 1)
	if minor.IsNegative() {
		sa = "-" + sa
	}
	return sa
}

// SignedString is like String but always carries a sign, "-" for zero.
func (m Money) SignedString() string {
	switch {
	case m.value.IsZero():
		return "-"
	case m.value.IsPositive():
		return "+" + m.String()
	default:
		return m.String()
	}
}

func (m Money) Currency() string       { return m.cur }
func (m Money) Value() decimal.Decimal { return m.value }
func (m Money) IsZero() bool           { return m.value.IsZero() }
func (m Money) IsNegative() bool       { return m.value.IsNegative() }
func (m Money) Equal(n Money) bool     { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) Add(n Money) Money      { return Money{value: m.value.Add(n.value), cur: m.cur} }
func (m Money) Sub(n Money) Money      { return Money{value: m.value.Sub(n.value), cur: m.cur} }
func (m Money) Neg() Money             { return Money{value: m.value.Neg(), cur: m.cur} }

type moneyJSON struct {
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

// MarshalJSON writes the amount rounded to the currency's minor unit.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{
		Currency: m.cur,
		Amount:   m.value.Round(int32(m.currency().Fraction)),
	})
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var v moneyJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid money %s: %w", data, err)
	}
	m.value, m.cur = v.Amount, v.Currency
	return nil
}
