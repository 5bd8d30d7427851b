package mononomics

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ledger holds the balance, the transactions and the savings goals.
//
// Every mutating operation either fully applies (balance and lists together)
// or leaves the ledger untouched and returns an error. Operations return the
// balance after the call, which is the unchanged balance on error.
//
// Positions are 1-based, as shown to the user.
type Ledger struct {
	balance      decimal.Decimal
	transactions []Transaction
	goals        []SavingsGoal

	now   func() time.Time
	newID func() string
}

// NewLedger creates an empty ledger with a zero balance.
func NewLedger() *Ledger {
	return &Ledger{
		transactions: make([]Transaction, 0),
		goals:        make([]SavingsGoal, 0),
		now:          Now,
		newID:        uuid.NewString,
	}
}

// NewLedgerWithBalance creates an empty ledger holding an opening balance.
func NewLedgerWithBalance(initial decimal.Decimal) *Ledger {
	l := NewLedger()
	l.balance = initial
	return l
}

// SetClock replaces the clock used to stamp new records.
func (l *Ledger) SetClock(now func() time.Time) { l.now = now }

func (l *Ledger) stamp() Timestamp { return NewTimestamp(l.now()) }

// Balance returns the current balance.
func (l *Ledger) Balance() decimal.Decimal { return l.balance }

// Len returns the number of transactions.
func (l *Ledger) Len() int { return len(l.transactions) }

// GoalsLen returns the number of savings goals.
func (l *Ledger) GoalsLen() int { return len(l.goals) }

// Transaction returns the transaction at 1-based position i.
func (l *Ledger) Transaction(i int) (Transaction, error) {
	if err := checkIndex("transaction", i, len(l.transactions)); err != nil {
		return Transaction{}, err
	}
	return l.transactions[i-1], nil
}

// Goal returns the savings goal at 1-based position i.
func (l *Ledger) Goal(i int) (SavingsGoal, error) {
	if err := checkIndex("savings goal", i, len(l.goals)); err != nil {
		return SavingsGoal{}, err
	}
	return l.goals[i-1], nil
}

// Transactions iterates over transactions in order with their 1-based position.
// Filters are combined with a logical AND.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
	next:
		for i, tx := range l.transactions {
			for _, accept := range filters {
				if !accept(tx) {
					continue next
				}
			}
			if !yield(i+1, tx) {
				return
			}
		}
	}
}

// Goals iterates over savings goals in order with their 1-based position.
func (l *Ledger) Goals() iter.Seq2[int, SavingsGoal] {
	return func(yield func(int, SavingsGoal) bool) {
		for i, g := range l.goals {
			if !yield(i+1, g) {
				return
			}
		}
	}
}

// ByKind returns a filter on the transaction kind.
func ByKind(k Kind) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Kind == k }
}

// Between returns a filter accepting transactions stamped in [from, to).
// A zero bound is open. Transactions without timestamp are only accepted
// when both bounds are open.
func Between(from, to time.Time) func(Transaction) bool {
	return func(tx Transaction) bool {
		if from.IsZero() && to.IsZero() {
			return true
		}
		if tx.Timestamp.IsZero() {
			return false
		}
		t := tx.Timestamp.Time()
		return (from.IsZero() || !t.Before(from)) && (to.IsZero() || t.Before(to))
	}
}

func checkIndex(what string, i, n int) error {
	if i < 1 || i > n {
		if n == 0 {
			return fmt.Errorf("%w: no %s recorded", ErrIndexOutOfRange, what)
		}
		return fmt.Errorf("%w: %s %d, want 1 to %d", ErrIndexOutOfRange, what, i, n)
	}
	return nil
}

// ResolveTransaction turns a user reference, a 1-based position or an ID
// prefix, into a position.
func (l *Ledger) ResolveTransaction(ref string) (int, error) {
	ids := make([]string, len(l.transactions))
	for i, tx := range l.transactions {
		ids[i] = tx.ID
	}
	return resolve("transaction", ref, ids)
}

// ResolveGoal is like ResolveTransaction for savings goals.
func (l *Ledger) ResolveGoal(ref string) (int, error) {
	ids := make([]string, len(l.goals))
	for i, g := range l.goals {
		ids[i] = g.ID
	}
	return resolve("savings goal", ref, ids)
}

func resolve(what, ref string, ids []string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return 0, fmt.Errorf("%w: empty %s reference", ErrNotFound, what)
	}
	if i, err := strconv.Atoi(ref); err == nil {
		if err := checkIndex(what, i, len(ids)); err != nil {
			return 0, err
		}
		return i, nil
	}
	found := 0
	ref = strings.ToLower(ref)
	for i, id := range ids {
		if strings.HasPrefix(strings.ToLower(id), ref) {
			if found != 0 {
				return 0, fmt.Errorf("%w: %q matches several %ss", ErrAmbiguous, ref, what)
			}
			found = i + 1
		}
	}
	if found == 0 {
		return 0, fmt.Errorf("%w: %s %q", ErrNotFound, what, ref)
	}
	return found, nil
}

func (l *Ledger) newTransaction(k Kind, amount decimal.Decimal, description string) Transaction {
	return Transaction{
		Kind:        k,
		Amount:      amount,
		Description: description,
		Timestamp:   l.stamp(),
		ID:          l.newID(),
	}
}

// AddIncome records money coming in.
func (l *Ledger) AddIncome(amount decimal.Decimal, description string) (decimal.Decimal, error) {
	return l.add(Income, amount, description, "Income")
}

// AddExpense records money going out.
func (l *Ledger) AddExpense(amount decimal.Decimal, description string) (decimal.Decimal, error) {
	return l.add(Expense, amount, description, "Expense")
}

func (l *Ledger) add(k Kind, amount decimal.Decimal, description, fallback string) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return l.balance, fmt.Errorf("%w: got %s", ErrInvalidAmount, amount)
	}
	if description == "" {
		description = fallback
	}
	l.transactions = append(l.transactions, l.newTransaction(k, amount, description))
	l.balance = l.balance.Add(k.Effect(amount))
	return l.balance, nil
}

// UpdateTransaction replaces the transaction at position i with a freshly
// stamped one. The old effect is reversed and the new one applied. An empty
// description keeps the old one. A non-positive amount cancels the update.
func (l *Ledger) UpdateTransaction(i int, k Kind, amount decimal.Decimal, description string) (decimal.Decimal, error) {
	if err := checkIndex("transaction", i, len(l.transactions)); err != nil {
		return l.balance, err
	}
	if k != Income && k != Expense {
		return l.balance, fmt.Errorf("%w: %q", ErrInvalidKind, k)
	}
	if !amount.IsPositive() {
		return l.balance, fmt.Errorf("update cancelled: %w: got %s", ErrInvalidAmount, amount)
	}
	old := l.transactions[i-1]
	if description == "" {
		description = old.Description
	}
	tx := l.newTransaction(k, amount, description)
	tx.ID = old.ID
	l.balance = l.balance.Sub(old.Effect()).Add(tx.Effect())
	l.transactions[i-1] = tx
	return l.balance, nil
}

// RemoveTransaction deletes the transaction at position i and reverses its effect.
func (l *Ledger) RemoveTransaction(i int) (decimal.Decimal, error) {
	if err := checkIndex("transaction", i, len(l.transactions)); err != nil {
		return l.balance, err
	}
	old := l.transactions[i-1]
	l.transactions = append(l.transactions[:i-1], l.transactions[i:]...)
	l.balance = l.balance.Sub(old.Effect())
	return l.balance, nil
}

// AddSavingsGoal creates a goal funded with initial progress taken from the
// balance. A positive initial progress is mirrored by an expense transaction.
// An empty description defaults to the name.
func (l *Ledger) AddSavingsGoal(name string, target decimal.Decimal, description string, initial decimal.Decimal) (decimal.Decimal, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return l.balance, ErrEmptyName
	case !target.IsPositive():
		return l.balance, fmt.Errorf("%w: got %s", ErrInvalidTarget, target)
	case initial.IsNegative():
		return l.balance, fmt.Errorf("%w: initial progress %s is negative", ErrInvalidAmount, initial)
	case initial.GreaterThan(l.balance):
		return l.balance, &InsufficientBalanceError{Available: l.balance, Required: initial}
	}
	if description == "" {
		description = name
	}
	l.goals = append(l.goals, SavingsGoal{
		Name:        name,
		Target:      target,
		Description: description,
		Progress:    initial,
		Timestamp:   l.stamp(),
		ID:          l.newID(),
	})
	if initial.IsPositive() {
		l.transactions = append(l.transactions, l.newTransaction(Expense, initial, "Initial allocation to savings: "+name))
	}
	l.balance = l.balance.Sub(initial)
	return l.balance, nil
}

// UpdateSavingsGoal replaces the goal at position i. The progress change is
// taken from (or given back to) the balance and mirrored by a transaction.
// Empty name or description keep the current ones.
func (l *Ledger) UpdateSavingsGoal(i int, name string, target, progress decimal.Decimal, description string) (decimal.Decimal, error) {
	if err := checkIndex("savings goal", i, len(l.goals)); err != nil {
		return l.balance, err
	}
	if !target.IsPositive() {
		return l.balance, fmt.Errorf("%w: got %s", ErrInvalidTarget, target)
	}
	if progress.IsNegative() {
		return l.balance, fmt.Errorf("%w: progress %s is negative", ErrInvalidAmount, progress)
	}
	old := l.goals[i-1]
	delta := progress.Sub(old.Progress)
	if delta.GreaterThan(l.balance) {
		return l.balance, &InsufficientBalanceError{Available: l.balance, Required: delta}
	}
	if name = strings.TrimSpace(name); name == "" {
		name = old.Name
	}
	if description == "" {
		description = old.Description
	}
	if !delta.IsZero() {
		k := Expense
		if delta.IsNegative() {
			k = Income
		}
		l.transactions = append(l.transactions, l.newTransaction(k, delta.Abs(), "Progress update for: "+old.Name))
	}
	l.goals[i-1] = SavingsGoal{
		Name:        name,
		Target:      target,
		Description: description,
		Progress:    progress,
		Timestamp:   l.stamp(),
		ID:          old.ID,
	}
	l.balance = l.balance.Sub(delta)
	return l.balance, nil
}

// RemoveSavingsGoal deletes the goal at position i and refunds its progress.
// A positive refund is mirrored by an income transaction.
func (l *Ledger) RemoveSavingsGoal(i int) (decimal.Decimal, error) {
	if err := checkIndex("savings goal", i, len(l.goals)); err != nil {
		return l.balance, err
	}
	old := l.goals[i-1]
	l.goals = append(l.goals[:i-1], l.goals[i:]...)
	if old.Progress.IsPositive() {
		l.transactions = append(l.transactions, l.newTransaction(Income, old.Progress, "Refund from deleted savings: "+old.Name))
	}
	l.balance = l.balance.Add(old.Progress)
	return l.balance, nil
}

// Audit checks that the balance equals initial plus the signed sum of all
// transactions.
func (l *Ledger) Audit(initial decimal.Decimal) error {
	expected := initial
	for _, tx := range l.transactions {
		expected = expected.Add(tx.Effect())
	}
	if !expected.Equal(l.balance) {
		return &AuditError{Expected: expected, Actual: l.balance}
	}
	return nil
}

// Summary aggregates the ledger.
type Summary struct {
	Balance      decimal.Decimal
	Income       decimal.Decimal // sum of income transactions
	Expense      decimal.Decimal // sum of expense transactions
	Saved        decimal.Decimal // sum of savings progress
	Targeted     decimal.Decimal // sum of savings targets
	Transactions int
	Goals        int
	GoalsReached int
}

// Summary computes totals over the ledger.
func (l *Ledger) Summary() Summary {
	s := Summary{
		Balance:      l.balance,
		Transactions: len(l.transactions),
		Goals:        len(l.goals),
	}
	for _, tx := range l.transactions {
		switch tx.Kind {
		case Income:
			s.Income = s.Income.Add(tx.Amount)
		case Expense:
			s.Expense = s.Expense.Add(tx.Amount)
		}
	}
	for _, g := range l.goals {
		s.Saved = s.Saved.Add(g.Progress)
		s.Targeted = s.Targeted.Add(g.Target)
		if g.Reached() {
			s.GoalsReached++
		}
	}
	return s
}
