package renderer

import (
	"iter"

	"github.com/etnz/mononomics"
)

// Balance is the headline of the ledger.
type Balance struct {
	Balance      mononomics.Money `json:"balance"`
	Transactions int              `json:"transactions"`
	Goals        int              `json:"goals"`
}

// NewBalance creates the balance headline of l in currency.
func NewBalance(l *mononomics.Ledger, currency string) *Balance {
	return &Balance{
		Balance:      mononomics.M(l.Balance(), currency),
		Transactions: l.Len(),
		Goals:        l.GoalsLen(),
	}
}

// Transactions is a listing of transactions with their totals.
// Rows keep their ledger position so they can be referred to afterwards.
type Transactions struct {
	Title   string           `json:"title"`
	Rows    []TransactionRow `json:"rows"`
	Income  mononomics.Money `json:"income"`
	Expense mononomics.Money `json:"expense"`
	Net     mononomics.Money `json:"net"`

	currency string
}

// TransactionRow is a single line of a transaction listing.
type TransactionRow struct {
	Index       int              `json:"index"`
	ID          string           `json:"id"`
	Kind        string           `json:"kind"`
	Amount      mononomics.Money `json:"amount"`
	Description string           `json:"description"`
	Timestamp   string           `json:"timestamp"`
}

// NewTransactions lists txs in currency.
func NewTransactions(title, currency string, txs iter.Seq2[int, mononomics.Transaction]) *Transactions {
	t := &Transactions{Title: title, Rows: []TransactionRow{}, currency: currency}
	for i, tx := range txs {
		t.Rows = append(t.Rows, TransactionRow{
			Index:       i,
			ID:          tx.ID,
			Kind:        string(tx.Kind),
			Amount:      mononomics.M(tx.Amount, currency),
			Description: cell(tx.Description),
			Timestamp:   tx.Timestamp.String(),
		})
	}
	t.total()
	return t
}

// Limit keeps the first head and the last tail rows, 0 meaning no limit.
// Totals are computed on the rows kept.
func (t *Transactions) Limit(head, tail int) *Transactions {
	if head > 0 && head < len(t.Rows) {
		t.Rows = t.Rows[:head]
	}
	if tail > 0 && tail < len(t.Rows) {
		t.Rows = t.Rows[len(t.Rows)-tail:]
	}
	t.total()
	return t
}

func (t *Transactions) total() {
	income := mononomics.M(0, t.currency)
	expense := mononomics.M(0, t.currency)
	for _, r := range t.Rows {
		switch mononomics.Kind(r.Kind) {
		case mononomics.Income:
			income = income.Add(r.Amount)
		case mononomics.Expense:
			expense = expense.Add(r.Amount)
		}
	}
	t.Income, t.Expense, t.Net = income, expense, income.Sub(expense)
}

// Goals lists the savings goals.
type Goals struct {
	Rows     []GoalRow        `json:"rows"`
	Saved    mononomics.Money `json:"saved"`
	Targeted mononomics.Money `json:"targeted"`
}

// GoalRow is a single savings goal line.
type GoalRow struct {
	Index       int              `json:"index"`
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Target      mononomics.Money `json:"target"`
	Progress    mononomics.Money `json:"progress"`
	Remaining   mononomics.Money `json:"remaining"`
	Percent     string           `json:"percent"`
	Reached     bool             `json:"reached"`
	Timestamp   string           `json:"timestamp"`
}

// NewGoals lists the savings goals of l in currency.
func NewGoals(l *mononomics.Ledger, currency string) *Goals {
	g := &Goals{
		Rows:     []GoalRow{},
		Saved:    mononomics.M(0, currency),
		Targeted: mononomics.M(0, currency),
	}
	for i, goal := range l.Goals() {
		row := GoalRow{
			Index:       i,
			ID:          goal.ID,
			Name:        cell(goal.Name),
			Description: cell(goal.Description),
			Target:      mononomics.M(goal.Target, currency),
			Progress:    mononomics.M(goal.Progress, currency),
			Remaining:   mononomics.M(goal.Remaining(), currency),
			Percent:     goal.Percent().StringFixed(1),
			Reached:     goal.Reached(),
			Timestamp:   goal.Timestamp.String(),
		}
		g.Rows = append(g.Rows, row)
		g.Saved = g.Saved.Add(row.Progress)
		g.Targeted = g.Targeted.Add(row.Target)
	}
	return g
}

// Summary holds the ledger totals.
type Summary struct {
	Balance      mononomics.Money `json:"balance"`
	Income       mononomics.Money `json:"income"`
	Expense      mononomics.Money `json:"expense"`
	Net          mononomics.Money `json:"net"`
	Saved        mononomics.Money `json:"saved"`
	Targeted     mononomics.Money `json:"targeted"`
	Transactions int              `json:"transactions"`
	Goals        int              `json:"goals"`
	GoalsReached int              `json:"goalsReached"`
}

// NewSummary converts the ledger totals to currency.
func NewSummary(s mononomics.Summary, currency string) *Summary {
	return &Summary{
		Balance:      mononomics.M(s.Balance, currency),
		Income:       mononomics.M(s.Income, currency),
		Expense:      mononomics.M(s.Expense, currency),
		Net:          mononomics.M(s.Income.Sub(s.Expense), currency),
		Saved:        mononomics.M(s.Saved, currency),
		Targeted:     mononomics.M(s.Targeted, currency),
		Transactions: s.Transactions,
		Goals:        s.Goals,
		GoalsReached: s.GoalsReached,
	}
}
