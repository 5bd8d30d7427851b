package mononomics

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

// randomAmount returns amounts in cents between -5.00 and 200.00, zero and
// negative values included to exercise the guards.
func randomAmount(r *rand.Rand) decimal.Decimal {
	return decimal.New(r.Int64N(20500)-500, -2)
}

func TestLedger_RandomSequencesKeepBalanceInvariant(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		r := rand.New(rand.NewPCG(seed, 42))
		initial := decimal.New(r.Int64N(10000), -2)
		l := newTestLedger(initial.InexactFloat64())
		l.balance = initial

		for step := 0; step < 200; step++ {
			before := take(l)
			var err error
			switch op := r.IntN(7); op {
			case 0:
				_, err = l.AddIncome(randomAmount(r), "income")
			case 1:
				_, err = l.AddExpense(randomAmount(r), "expense")
			case 2:
				k := Income
				if r.IntN(2) == 0 {
					k = Expense
				}
				_, err = l.UpdateTransaction(r.IntN(l.Len()+2), k, randomAmount(r), "")
			case 3:
				_, err = l.RemoveTransaction(r.IntN(l.Len() + 2))
			case 4:
				_, err = l.AddSavingsGoal("goal", randomAmount(r), "", randomAmount(r))
			case 5:
				_, err = l.UpdateSavingsGoal(r.IntN(l.GoalsLen()+2), "", randomAmount(r), randomAmount(r), "")
			case 6:
				_, err = l.RemoveSavingsGoal(r.IntN(l.GoalsLen() + 2))
			}

			if err != nil {
				// a failed operation leaves everything untouched
				if diff := cmp.Diff(before, take(l), cmp.AllowUnexported(snapshot{})); diff != "" {
					t.Fatalf("seed %d step %d: failed operation (%v) changed the ledger:\n%s", seed, step, err, diff)
				}
				continue
			}
			if err := l.Audit(initial); err != nil {
				t.Fatalf("seed %d step %d: %v", seed, step, err)
			}
		}
	}
}
