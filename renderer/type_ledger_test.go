package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/mononomics"
)

func testLedger(t *testing.T) *mononomics.Ledger {
	t.Helper()
	l := mononomics.NewLedgerWithBalance(mononomics.D(0))
	must := func(_ any, err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(l.AddIncome(mononomics.D(1500), "salary"))
	must(l.AddExpense(mononomics.D(30.25), "food | drinks"))
	must(l.AddSavingsGoal("car", mononomics.D(1000), "car fund", mononomics.D(250)))
	must(l.AddSavingsGoal("trip", mononomics.D(300), "", mononomics.D(300)))
	return l
}

func TestNewTransactions(t *testing.T) {
	l := testLedger(t)

	all := NewTransactions("Transactions", "USD", l.Transactions())
	if len(all.Rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(all.Rows))
	}
	if got := all.Rows[1].Description; got != `food \| drinks` {
		t.Errorf("description = %q, want the pipe escaped", got)
	}
	if got := all.Net.String(); got != "$919.75" {
		t.Errorf("net = %s, want $919.75", got)
	}

	expenses := NewTransactions("Expenses", "USD", l.Transactions(mononomics.ByKind(mononomics.Expense))).Limit(0, 1)
	if len(expenses.Rows) != 1 || expenses.Rows[0].Index != 4 {
		t.Fatalf("tail rows = %+v, want the 4th transaction only", expenses.Rows)
	}
	if got := expenses.Expense.String(); got != "$300.00" {
		t.Errorf("expense = %s, want $300.00", got)
	}

	out := RenderTransactions(NewTransactions("Transactions", "USD", l.Transactions()).Limit(2, 0))
	for _, want := range []string{"# Transactions", "| 1 | income | $1,500.00 | salary |", "net +$1,469.75"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output misses %q:\n%s", want, out)
		}
	}
}

func TestNewGoals(t *testing.T) {
	l := testLedger(t)

	g := NewGoals(l, "USD")
	if len(g.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(g.Rows))
	}
	car, trip := g.Rows[0], g.Rows[1]
	if car.Percent != "25.0" || car.Reached || car.Remaining.String() != "$750.00" {
		t.Errorf("car = %+v", car)
	}
	if !trip.Reached || trip.Description != "trip" {
		t.Errorf("trip = %+v", trip)
	}
	if got := g.Saved.String(); got != "$550.00" {
		t.Errorf("saved = %s, want $550.00", got)
	}
}

func TestNewSummary(t *testing.T) {
	l := testLedger(t)
	out := RenderSummary(NewSummary(l.Summary(), "USD"))
	for _, want := range []string{"| Balance | $919.75 |", "| Expenses | $580.25 |", "4 transactions, 2 savings goals (1 reached)."} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered summary misses %q:\n%s", want, out)
		}
	}
	if got := RenderBalance(NewBalance(l, "USD")); !strings.Contains(got, "**$919.75**") {
		t.Errorf("rendered balance = %q", got)
	}
}
