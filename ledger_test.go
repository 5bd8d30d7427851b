package mononomics

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLedger_Scenario(t *testing.T) {
	l := newTestLedger(0)

	steps := []struct {
		name    string
		op      func() (string, error)
		balance float64
		txs     int
		goals   int
	}{
		{"add salary", func() (string, error) { b, err := l.AddIncome(D(100), "salary"); return b.String(), err }, 100, 1, 0},
		{"add food", func() (string, error) { b, err := l.AddExpense(D(30), "food"); return b.String(), err }, 70, 2, 0},
		{"add car goal", func() (string, error) {
			b, err := l.AddSavingsGoal("car", D(1000), "car fund", D(20))
			return b.String(), err
		}, 50, 3, 1},
		{"remove car goal", func() (string, error) { b, err := l.RemoveSavingsGoal(1); return b.String(), err }, 70, 4, 0},
	}

	for _, s := range steps {
		got, err := s.op()
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", s.name, err)
		}
		if want := D(s.balance).String(); got != want {
			t.Errorf("%s: balance = %s, want %s", s.name, got, want)
		}
		if l.Len() != s.txs {
			t.Errorf("%s: %d transactions, want %d", s.name, l.Len(), s.txs)
		}
		if l.GoalsLen() != s.goals {
			t.Errorf("%s: %d goals, want %d", s.name, l.GoalsLen(), s.goals)
		}
	}

	want := []Transaction{
		{Kind: Income, Amount: D(100), Description: "salary"},
		{Kind: Expense, Amount: D(30), Description: "food"},
		{Kind: Expense, Amount: D(20), Description: "Initial allocation to savings: car"},
		{Kind: Income, Amount: D(20), Description: "Refund from deleted savings: car"},
	}
	if diff := cmp.Diff(want, l.transactions); diff != "" {
		t.Errorf("transactions mismatch (-want +got):\n%s", diff)
	}
	if err := l.Audit(D(0)); err != nil {
		t.Errorf("Audit() = %v", err)
	}
}

func TestLedger_AddRejectsNonPositive(t *testing.T) {
	for _, amount := range []float64{0, -5} {
		l := newTestLedger(10)
		before := take(l)

		b, err := l.AddIncome(D(amount), "x")
		if !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("AddIncome(%v) error = %v, want ErrInvalidAmount", amount, err)
		}
		if !b.Equal(D(10)) {
			t.Errorf("AddIncome(%v) returned %s, want unchanged balance 10", amount, b)
		}
		if _, err := l.AddExpense(D(amount), "x"); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("AddExpense(%v) error = %v, want ErrInvalidAmount", amount, err)
		}
		if diff := cmp.Diff(before, take(l), cmp.AllowUnexported(snapshot{})); diff != "" {
			t.Errorf("ledger changed (-before +after):\n%s", diff)
		}
	}
}

func TestLedger_DefaultDescriptions(t *testing.T) {
	l := newTestLedger(0)
	l.AddIncome(D(5), "")
	l.AddExpense(D(1), "")
	l.AddSavingsGoal("bike", D(100), "", D(0))

	if got := l.transactions[0].Description; got != "Income" {
		t.Errorf("income description = %q, want %q", got, "Income")
	}
	if got := l.transactions[1].Description; got != "Expense" {
		t.Errorf("expense description = %q, want %q", got, "Expense")
	}
	if got := l.goals[0].Description; got != "bike" {
		t.Errorf("goal description = %q, want %q", got, "bike")
	}
	// no allocation, no synthetic transaction
	if l.Len() != 2 {
		t.Errorf("got %d transactions, want 2", l.Len())
	}
}

func TestLedger_UpdateTransaction(t *testing.T) {
	testCases := []struct {
		name        string
		kind        Kind
		amount      float64
		description string
		wantBalance float64
		wantErr     error
		wantTx      Transaction
	}{
		{
			name: "income to larger income", kind: Income, amount: 150, description: "bonus",
			wantBalance: 120, // 100 - 30 -> 150 - 30
			wantTx:      Transaction{Kind: Income, Amount: D(150), Description: "bonus"},
		},
		{
			name: "income to expense keeps description", kind: Expense, amount: 10,
			wantBalance: -40, // -10 - 30
			wantTx:      Transaction{Kind: Expense, Amount: D(10), Description: "salary"},
		},
		{
			name: "zero amount cancels", kind: Expense, amount: 0,
			wantBalance: 70, wantErr: ErrInvalidAmount,
			wantTx: Transaction{Kind: Income, Amount: D(100), Description: "salary"},
		},
		{
			name: "negative amount cancels", kind: Income, amount: -3,
			wantBalance: 70, wantErr: ErrInvalidAmount,
			wantTx: Transaction{Kind: Income, Amount: D(100), Description: "salary"},
		},
		{
			name: "unknown kind", kind: Kind("gift"), amount: 3,
			wantBalance: 70, wantErr: ErrInvalidKind,
			wantTx: Transaction{Kind: Income, Amount: D(100), Description: "salary"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := newTestLedger(0)
			l.AddIncome(D(100), "salary")
			l.AddExpense(D(30), "food")
			old := l.transactions[0]

			b, err := l.UpdateTransaction(1, tc.kind, D(tc.amount), tc.description)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("UpdateTransaction() error = %v, want %v", err, tc.wantErr)
			}
			if !b.Equal(D(tc.wantBalance)) || !l.Balance().Equal(D(tc.wantBalance)) {
				t.Errorf("balance = %s (returned %s), want %v", l.Balance(), b, tc.wantBalance)
			}
			got := l.transactions[0]
			if !got.Equal(tc.wantTx) {
				t.Errorf("transaction = %v, want %v", got, tc.wantTx)
			}
			if got.ID != old.ID {
				t.Errorf("ID changed from %q to %q", old.ID, got.ID)
			}
			if tc.wantErr == nil && !old.Timestamp.Before(got.Timestamp) {
				t.Errorf("timestamp not refreshed: %v then %v", old.Timestamp, got.Timestamp)
			}
			if tc.wantErr != nil && !got.Timestamp.Equal(old.Timestamp) {
				t.Errorf("cancelled update changed timestamp")
			}
		})
	}
}

func TestLedger_IndexOutOfRange(t *testing.T) {
	l := newTestLedger(0)
	l.AddIncome(D(10), "a")
	l.AddSavingsGoal("g", D(10), "", D(0))
	before := take(l)

	ops := map[string]func() error{
		"UpdateTransaction(0)": func() error { _, err := l.UpdateTransaction(0, Income, D(1), ""); return err },
		"UpdateTransaction(2)": func() error { _, err := l.UpdateTransaction(2, Income, D(1), ""); return err },
		"RemoveTransaction(0)": func() error { _, err := l.RemoveTransaction(0); return err },
		"RemoveTransaction(2)": func() error { _, err := l.RemoveTransaction(2); return err },
		"UpdateSavingsGoal(2)": func() error { _, err := l.UpdateSavingsGoal(2, "", D(1), D(0), ""); return err },
		"RemoveSavingsGoal(0)": func() error { _, err := l.RemoveSavingsGoal(0); return err },
		"RemoveSavingsGoal(9)": func() error { _, err := l.RemoveSavingsGoal(9); return err },
	}
	for name, op := range ops {
		if err := op(); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("%s error = %v, want ErrIndexOutOfRange", name, err)
		}
	}
	if diff := cmp.Diff(before, take(l), cmp.AllowUnexported(snapshot{})); diff != "" {
		t.Errorf("ledger changed (-before +after):\n%s", diff)
	}
}

func TestLedger_RemoveThenReAddRestoresBalance(t *testing.T) {
	l := newTestLedger(0)
	l.AddIncome(D(100), "salary")
	l.AddExpense(D(42.5), "groceries")
	l.AddIncome(D(7), "tip")

	for i := 1; i <= l.Len(); i++ {
		before := l.Balance()
		tx, _ := l.Transaction(i)
		if _, err := l.RemoveTransaction(i); err != nil {
			t.Fatalf("RemoveTransaction(%d): %v", i, err)
		}
		if tx.Kind == Income {
			l.AddIncome(tx.Amount, tx.Description)
		} else {
			l.AddExpense(tx.Amount, tx.Description)
		}
		if !l.Balance().Equal(before) {
			t.Errorf("after removing and re-adding %v balance = %s, want %s", tx, l.Balance(), before)
		}
	}
}

func TestLedger_AddSavingsGoal(t *testing.T) {
	testCases := []struct {
		name    string
		goal    string
		target  float64
		initial float64
		wantErr error
	}{
		{name: "more than balance", goal: "car", target: 1000, initial: 60, wantErr: ErrInsufficientBalance},
		{name: "zero target", goal: "car", target: 0, initial: 0, wantErr: ErrInvalidTarget},
		{name: "negative initial", goal: "car", target: 10, initial: -1, wantErr: ErrInvalidAmount},
		{name: "no name", goal: "  ", target: 10, initial: 0, wantErr: ErrEmptyName},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := newTestLedger(50)
			before := take(l)
			b, err := l.AddSavingsGoal(tc.goal, D(tc.target), "", D(tc.initial))
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("AddSavingsGoal() error = %v, want %v", err, tc.wantErr)
			}
			if !b.Equal(D(50)) {
				t.Errorf("returned balance %s, want 50", b)
			}
			if diff := cmp.Diff(before, take(l), cmp.AllowUnexported(snapshot{})); diff != "" {
				t.Errorf("ledger changed (-before +after):\n%s", diff)
			}
		})
	}

	t.Run("shortfall is reported", func(t *testing.T) {
		l := newTestLedger(50)
		_, err := l.AddSavingsGoal("car", D(1000), "", D(60))
		var ie *InsufficientBalanceError
		if !errors.As(err, &ie) {
			t.Fatalf("error = %v, want *InsufficientBalanceError", err)
		}
		if !ie.Available.Equal(D(50)) || !ie.Required.Equal(D(60)) {
			t.Errorf("got available %s required %s, want 50 and 60", ie.Available, ie.Required)
		}
	})

	t.Run("whole balance can be allocated", func(t *testing.T) {
		l := newTestLedger(50)
		b, err := l.AddSavingsGoal("car", D(1000), "", D(50))
		if err != nil || !b.IsZero() {
			t.Errorf("AddSavingsGoal() = %s, %v, want 0, nil", b, err)
		}
	})
}

func TestLedger_UpdateSavingsGoal(t *testing.T) {
	testCases := []struct {
		name        string
		progress    float64
		wantBalance float64
		wantErr     error
		wantTx      *Transaction
	}{
		{
			name: "increase", progress: 50, wantBalance: 50,
			wantTx: &Transaction{Kind: Expense, Amount: D(30), Description: "Progress update for: car"},
		},
		{
			name: "decrease", progress: 5, wantBalance: 95,
			wantTx: &Transaction{Kind: Income, Amount: D(15), Description: "Progress update for: car"},
		},
		{name: "unchanged", progress: 20, wantBalance: 80},
		{name: "increase beyond balance", progress: 101, wantBalance: 80, wantErr: ErrInsufficientBalance},
		{name: "negative progress", progress: -1, wantBalance: 80, wantErr: ErrInvalidAmount},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := newTestLedger(100)
			l.AddSavingsGoal("car", D(1000), "car fund", D(20))
			before := take(l)

			b, err := l.UpdateSavingsGoal(1, "", D(1000), D(tc.progress), "")
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("UpdateSavingsGoal() error = %v, want %v", err, tc.wantErr)
			}
			if !b.Equal(D(tc.wantBalance)) {
				t.Errorf("balance = %s, want %v", b, tc.wantBalance)
			}
			if tc.wantErr != nil {
				if diff := cmp.Diff(before, take(l), cmp.AllowUnexported(snapshot{})); diff != "" {
					t.Errorf("ledger changed (-before +after):\n%s", diff)
				}
				return
			}
			g, _ := l.Goal(1)
			if g.Name != "car" || g.Description != "car fund" || !g.Progress.Equal(D(tc.progress)) {
				t.Errorf("goal = %+v", g)
			}
			if g.ID != before.goals[0].ID {
				t.Errorf("goal ID changed")
			}
			switch {
			case tc.wantTx == nil && l.Len() != 1:
				t.Errorf("got %d transactions, want no synthetic one", l.Len())
			case tc.wantTx != nil:
				last, _ := l.Transaction(l.Len())
				if !last.Equal(*tc.wantTx) {
					t.Errorf("synthetic transaction = %v, want %v", last, *tc.wantTx)
				}
			}
			if err := l.Audit(D(100)); err != nil {
				t.Errorf("Audit() = %v", err)
			}
		})
	}

	t.Run("rename and retarget", func(t *testing.T) {
		l := newTestLedger(100)
		l.AddSavingsGoal("car", D(1000), "car fund", D(20))
		if _, err := l.UpdateSavingsGoal(1, "van", D(2000), D(20), "bigger"); err != nil {
			t.Fatal(err)
		}
		g, _ := l.Goal(1)
		if g.Name != "van" || !g.Target.Equal(D(2000)) || g.Description != "bigger" {
			t.Errorf("goal = %+v", g)
		}
	})
}

func TestLedger_RemoveSavingsGoalRefundsProgress(t *testing.T) {
	for _, progress := range []float64{0, 12.34, 80} {
		l := newTestLedger(80)
		l.AddSavingsGoal("a", D(10), "", D(0))
		l.AddSavingsGoal("b", D(100), "", D(progress))
		before := l.Balance()
		txs := l.Len()

		b, err := l.RemoveSavingsGoal(2)
		if err != nil {
			t.Fatal(err)
		}
		if want := before.Add(D(progress)); !b.Equal(want) {
			t.Errorf("progress %v: balance = %s, want %s", progress, b, want)
		}
		wantTxs := txs
		if progress > 0 {
			wantTxs++
		}
		if l.Len() != wantTxs {
			t.Errorf("progress %v: %d transactions, want %d", progress, l.Len(), wantTxs)
		}
		if g, _ := l.Goal(1); l.GoalsLen() != 1 || g.Name != "a" {
			t.Errorf("remaining goals wrong: %d, first %q", l.GoalsLen(), g.Name)
		}
	}
}

func TestLedger_Resolve(t *testing.T) {
	l := newTestLedger(0)
	l.AddIncome(D(1), "a") // id-0001
	l.AddIncome(D(2), "b") // id-0002
	l.transactions[1].ID = "abc123"

	testCases := []struct {
		ref     string
		want    int
		wantErr error
	}{
		{ref: "1", want: 1},
		{ref: " 2 ", want: 2},
		{ref: "3", wantErr: ErrIndexOutOfRange},
		{ref: "0", wantErr: ErrIndexOutOfRange},
		{ref: "ABC", want: 2},
		{ref: "id-0001", want: 1},
		{ref: "zzz", wantErr: ErrNotFound},
		{ref: "", wantErr: ErrNotFound},
	}
	for _, tc := range testCases {
		got, err := l.ResolveTransaction(tc.ref)
		if !errors.Is(err, tc.wantErr) {
			t.Errorf("ResolveTransaction(%q) error = %v, want %v", tc.ref, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ResolveTransaction(%q) = %d, want %d", tc.ref, got, tc.want)
		}
	}

	l.transactions[0].ID = "abd"
	if _, err := l.ResolveTransaction("ab"); !errors.Is(err, ErrAmbiguous) {
		t.Errorf("ResolveTransaction(ab) error = %v, want ErrAmbiguous", err)
	}
}

func TestLedger_TransactionsFilters(t *testing.T) {
	l := newTestLedger(0)
	l.AddIncome(D(1), "a")  // 10:00
	l.AddExpense(D(1), "b") // 10:01
	l.AddIncome(D(1), "c")  // 10:02

	var got []string
	for _, tx := range l.Transactions(ByKind(Income)) {
		got = append(got, tx.Description)
	}
	if diff := cmp.Diff([]string{"a", "c"}, got); diff != "" {
		t.Errorf("ByKind(Income) (-want +got):\n%s", diff)
	}

	from := time.Date(2025, time.January, 2, 10, 1, 0, 0, time.Local)
	to := time.Date(2025, time.January, 2, 10, 2, 0, 0, time.Local)
	got = nil
	for i, tx := range l.Transactions(Between(from, to)) {
		if i != 2 {
			t.Errorf("position = %d, want 2", i)
		}
		got = append(got, tx.Description)
	}
	if diff := cmp.Diff([]string{"b"}, got); diff != "" {
		t.Errorf("Between() (-want +got):\n%s", diff)
	}
}

func TestLedger_AuditDetectsDrift(t *testing.T) {
	l := newTestLedger(10)
	l.AddIncome(D(5), "x")
	if err := l.Audit(D(10)); err != nil {
		t.Fatalf("Audit() = %v", err)
	}
	l.balance = l.balance.Add(D(1))
	var ae *AuditError
	if err := l.Audit(D(10)); !errors.As(err, &ae) {
		t.Fatalf("Audit() = %v, want *AuditError", err)
	}
	if !ae.Expected.Equal(D(15)) || !ae.Actual.Equal(D(16)) {
		t.Errorf("AuditError = %+v", ae)
	}
}

func TestLedger_Summary(t *testing.T) {
	l := newTestLedger(0)
	l.AddIncome(D(100), "salary")
	l.AddExpense(D(30), "food")
	l.AddSavingsGoal("car", D(1000), "", D(20))
	l.AddSavingsGoal("phone", D(10), "", D(10))

	s := l.Summary()
	want := Summary{
		Balance:      D(40),
		Income:       D(100),
		Expense:      D(60),
		Saved:        D(30),
		Targeted:     D(1010),
		Transactions: 4,
		Goals:        2,
		GoalsReached: 1,
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("Summary() (-want +got):\n%s", diff)
	}
}
