package mononomics

import (
	"fmt"
	"time"
)

// testClock returns a clock starting at 2025-01-02 10:00:00 and moving one
// minute per call.
func testClock() func() time.Time {
	t := time.Date(2025, time.January, 2, 10, 0, 0, 0, time.Local)
	return func() time.Time {
		now := t
		t = t.Add(time.Minute)
		return now
	}
}

// testIDs returns a deterministic ID generator: id-0001, id-0002…
func testIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%04d", n)
	}
}

// newTestLedger creates a ledger with a deterministic clock and IDs.
func newTestLedger(initial float64) *Ledger {
	l := NewLedgerWithBalance(D(initial))
	l.now = testClock()
	l.newID = testIDs()
	return l
}

// snapshot captures everything an operation may change.
type snapshot struct {
	balance      string
	transactions []Transaction
	goals        []SavingsGoal
}

func take(l *Ledger) snapshot {
	return snapshot{
		balance:      l.balance.String(),
		transactions: append([]Transaction(nil), l.transactions...),
		goals:        append([]SavingsGoal(nil), l.goals...),
	}
}
