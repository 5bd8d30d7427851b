package mononomics

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind tells whether a transaction brings money in or takes it out.
type Kind string

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// ParseKind parses a kind, case insensitive.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case Income, Expense:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q, want %q or %q", ErrInvalidKind, s, Income, Expense)
	}
}

// Effect returns the signed effect of amount on the balance.
func (k Kind) Effect(amount decimal.Decimal) decimal.Decimal {
	if k == Expense {
		return amount.Neg()
	}
	return amount
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Transaction is a single income or expense record.
type Transaction struct {
	Kind        Kind            `json:"transaction_type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Timestamp   Timestamp       `json:"timestamp"`
	ID          string          `json:"id,omitempty"`
}

// Effect returns the signed effect of the transaction on the balance.
func (t Transaction) Effect() decimal.Decimal { return t.Kind.Effect(t.Amount) }

// Equal reports whether both records carry the same kind, amount and description.
// ID and Timestamp are not compared.
func (t Transaction) Equal(o Transaction) bool {
	return t.Kind == o.Kind && t.Amount.Equal(o.Amount) && t.Description == o.Description
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s %s %s", strings.ToUpper(string(t.Kind)), t.Amount.StringFixed(2), t.Description)
}

// validate checks a decoded record.
func (t Transaction) validate() error {
	if t.Kind != Income && t.Kind != Expense {
		return fmt.Errorf("%w: %q", ErrInvalidKind, t.Kind)
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("%w: %s is negative", ErrInvalidAmount, t.Amount)
	}
	return nil
}
