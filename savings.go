package mononomics

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SavingsGoal is a named target whose progress is funded from the balance.
type SavingsGoal struct {
	Name        string          `json:"savings_goal"`
	Target      decimal.Decimal `json:"savings_amount"`
	Description string          `json:"savings_description"`
	Progress    decimal.Decimal `json:"savings_progress"`
	Timestamp   Timestamp       `json:"timestamp"`
	ID          string          `json:"id,omitempty"`
}

// Percent returns the progress as a percentage of the target, 0 when the
// target is not positive.
func (g SavingsGoal) Percent() decimal.Decimal {
	if !g.Target.IsPositive() {
		return decimal.Zero
	}
	return g.Progress.Div(g.Target).Mul(hundred)
}

// Remaining returns what is left to save, never negative.
func (g SavingsGoal) Remaining() decimal.Decimal {
	r := g.Target.Sub(g.Progress)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// Reached reports whether the progress covers the target.
func (g SavingsGoal) Reached() bool {
	return g.Target.IsPositive() && g.Progress.GreaterThanOrEqual(g.Target)
}

func (g SavingsGoal) validate() error {
	if g.Target.IsNegative() {
		return fmt.Errorf("%w: goal %q target %s is negative", ErrInvalidTarget, g.Name, g.Target)
	}
	if g.Progress.IsNegative() {
		return fmt.Errorf("%w: goal %q progress %s is negative", ErrInvalidAmount, g.Name, g.Progress)
	}
	return nil
}
