package mononomics

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount is returned when an amount must be positive and is not.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	// ErrInvalidTarget is returned for a savings target that is not positive.
	ErrInvalidTarget = errors.New("target amount must be greater than zero")
	// ErrInvalidKind is returned for a transaction type other than income or expense.
	ErrInvalidKind = errors.New("invalid transaction type")
	// ErrEmptyName is returned when a savings goal has no name.
	ErrEmptyName = errors.New("savings goal name cannot be empty")
	// ErrIndexOutOfRange is returned for a position outside the list.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNotFound is returned when a reference matches no record.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguous is returned when an ID prefix matches several records.
	ErrAmbiguous = errors.New("ambiguous reference")
	// ErrInsufficientBalance matches every *InsufficientBalanceError.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// InsufficientBalanceError reports a savings allocation larger than the balance.
type InsufficientBalanceError struct {
	Available decimal.Decimal
	Required  decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: need %s, available %s", e.Required.StringFixed(2), e.Available.StringFixed(2))
}

func (e *InsufficientBalanceError) Is(target error) bool { return target == ErrInsufficientBalance }

// AuditError reports a balance that disagrees with its transactions.
type AuditError struct {
	Expected decimal.Decimal // initial balance plus all transaction effects
	Actual   decimal.Decimal
}

func (e *AuditError) Error() string {
	return fmt.Sprintf("balance %s does not match transactions, expected %s (off by %s)",
		e.Actual.StringFixed(2), e.Expected.StringFixed(2), e.Actual.Sub(e.Expected).StringFixed(2))
}
