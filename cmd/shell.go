package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/etnz/mononomics"
	"github.com/etnz/mononomics/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type shellCmd struct {
	in io.Reader // os.Stdin when nil
}

func (*shellCmd) Name() string     { return "shell" }
func (*shellCmd) Synopsis() string { return "manage the ledger from an interactive menu" }
func (*shellCmd) Usage() string {
	return `mono shell

  Starts the interactive finance tracker. When $` + EnvUsername + ` and $` + EnvPasswordHash + `
  are configured a login is required first. The ledger is saved after every
  change and on exit.
`
}

func (*shellCmd) SetFlags(*flag.FlagSet) {}

func (c *shellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in := c.in
	if in == nil {
		in = os.Stdin
	}
	p := newPrompter(in, stdout)

	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}

	banner := strings.Repeat("=", 40)
	p.printf("%s\n  Welcome to Mononomics Finance Tracker!\n%s\n", banner, banner)

	if err := login(p, cfg.Credentials); err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}

	s, err := loadSession(cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	sh := &shell{prompter: p, session: s}
	if err := sh.run(); err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// login asks for credentials until they match.
func login(p *prompter, creds mononomics.Credentials) error {
	if !creds.Enabled() {
		log.Printf("warning: %s is not set, login is disabled", EnvUsername)
		return nil
	}
	p.printf("\n=== Login Required ===\n")
	for {
		username, err := p.line("Username: ")
		if err != nil {
			return fmt.Errorf("login aborted: %w", err)
		}
		password, err := p.secret("Password: ")
		if err != nil {
			return fmt.Errorf("login aborted: %w", err)
		}
		if username == "" || password == "" {
			p.printf("Username and password cannot be empty.\n\n")
			continue
		}
		if err := creds.Verify(username, password); err != nil {
			p.printf("Authentication failed. Please try again.\n\n")
			continue
		}
		p.printf("Login successful!\n\n")
		return nil
	}
}

// errExit stops the menu loop.
var errExit = errors.New("exit")

// shell is the interactive menu over a session.
type shell struct {
	*prompter
	*session
}

type menuItem struct {
	label   string
	run     func() error
	mutates bool
}

func (sh *shell) menu() []menuItem {
	return []menuItem{
		{label: "Check Current Balance", run: sh.viewBalance},
		{label: "Add Income", run: func() error { return sh.add(mononomics.Income, "How much did you earn: ") }, mutates: true},
		{label: "Add Expense", run: func() error { return sh.add(mononomics.Expense, "How much did you spend: ") }, mutates: true},
		{label: "View Transactions", run: sh.viewTransactions},
		{label: "Update Transaction", run: sh.updateTransaction, mutates: true},
		{label: "Delete Transaction", run: sh.removeTransaction, mutates: true},
		{label: "Add Savings Goal", run: sh.addGoal, mutates: true},
		{label: "Update Savings Goal", run: sh.updateGoal, mutates: true},
		{label: "Delete Savings Goal", run: sh.removeGoal, mutates: true},
		{label: "View Savings Goals", run: sh.viewGoals},
		{label: "Exit", run: func() error { return errExit }},
	}
}

// run loops on the menu until exit or the end of the input. The ledger is
// saved on the way out in both cases.
func (sh *shell) run() error {
	items := sh.menu()
	for {
		sh.display(items)
		choice, err := sh.line("\nWhat would you like to do? ")
		if err == nil {
			err = sh.choose(items, choice)
		}
		switch {
		case errors.Is(err, errExit), errors.Is(err, io.EOF):
			return sh.exit()
		case err != nil:
			return err
		}
	}
}

func (sh *shell) choose(items []menuItem, choice string) error {
	var item *menuItem
	for i := range items {
		if choice == fmt.Sprint(i+1) {
			item = &items[i]
		}
	}
	if item == nil {
		sh.printf("Invalid choice. Please enter a number from the menu.\n")
		return nil
	}
	if err := item.run(); err != nil {
		return err
	}
	if item.mutates {
		if err := sh.save(); err != nil {
			// keep going, the next save may succeed
			sh.printf("%v\n", err)
		}
	}
	return nil
}

func (sh *shell) display(items []menuItem) {
	banner := strings.Repeat("=", 40)
	sh.printf("\n%s\n  Mononomics Finance Tracker\n%s\n", banner, banner)
	for i, item := range items {
		sh.printf("%-4s%s\n", fmt.Sprintf("%d.", i+1), item.label)
	}
	sh.printf("%s\n", banner)
}

func (sh *shell) exit() error {
	if err := sh.save(); err != nil {
		return err
	}
	sh.printf("\nData saved successfully!\nStay wealthy!\n")
	return nil
}

// report prints the outcome of a ledger operation.
func (sh *shell) report(err error, success string) {
	if err != nil {
		sh.printf("%s\n", sh.describe(err))
		return
	}
	sh.printf("%s\nUpdated balance: %s\n", success, sh.M(sh.ledger.Balance()))
}

func (sh *shell) viewBalance() error {
	sh.printf("\nYour current balance: %s\n", sh.M(sh.ledger.Balance()))
	return nil
}

func (sh *shell) viewTransactions() error {
	sh.printf("\n")
	printMarkdown(renderer.RenderTransactions(renderer.NewTransactions("Transaction History", sh.Currency, sh.ledger.Transactions())))
	return nil
}

func (sh *shell) viewGoals() error {
	sh.printf("\n")
	printMarkdown(renderer.RenderGoals(renderer.NewGoals(sh.ledger, sh.Currency)))
	return nil
}

func (sh *shell) add(k mononomics.Kind, prompt string) error {
	sh.printf("\n=== Add %s ===\n", title(k))
	amount, err := sh.amount(prompt, false, decimal.Zero)
	if err != nil {
		return err
	}
	if amount.IsZero() {
		sh.printf("Amount must be greater than zero.\n")
		return nil
	}
	description, err := sh.text("Enter description: ", true, "")
	if err != nil {
		return err
	}
	add := sh.ledger.AddIncome
	if k == mononomics.Expense {
		add = sh.ledger.AddExpense
	}
	_, err = add(amount, description)
	sh.report(err, title(k)+" added successfully!")
	return nil
}

func (sh *shell) updateTransaction() error {
	if sh.ledger.Len() == 0 {
		sh.printf("\nNo transactions to update.\n")
		return nil
	}
	sh.viewTransactions()
	i, err := sh.index("Enter transaction number to update: ", sh.ledger.Len())
	if err != nil {
		return err
	}
	old, _ := sh.ledger.Transaction(i)
	sh.printf("\nUpdating: %s\n", sh.txLine(old))

	k, err := sh.kind("Type (income/expense): ")
	if err != nil {
		return err
	}
	amount, err := sh.amount("Enter new amount: ", false, decimal.Zero)
	if err != nil {
		return err
	}
	if amount.IsZero() {
		sh.printf("Amount must be greater than zero. Update cancelled.\n")
		return nil
	}
	description, err := sh.text(fmt.Sprintf("Enter description (press Enter to keep '%s'): ", old.Description), true, "")
	if err != nil {
		return err
	}
	_, err = sh.ledger.UpdateTransaction(i, k, amount, description)
	sh.report(err, "Transaction updated successfully!")
	return nil
}

func (sh *shell) removeTransaction() error {
	if sh.ledger.Len() == 0 {
		sh.printf("\nNo transactions to remove.\n")
		return nil
	}
	sh.viewTransactions()
	i, err := sh.index("Enter transaction number to remove: ", sh.ledger.Len())
	if err != nil {
		return err
	}
	old, _ := sh.ledger.Transaction(i)
	sh.printf("\nRemoving: %s\n", sh.txLine(old))
	_, err = sh.ledger.RemoveTransaction(i)
	sh.report(err, "Transaction removed successfully!")
	return nil
}

func (sh *shell) addGoal() error {
	sh.printf("\n=== Add Savings Goal ===\n")
	name, err := sh.text("What are you saving for: ", false, "")
	if err != nil {
		return err
	}
	target, err := sh.amount("Target amount: ", false, decimal.Zero)
	if err != nil {
		return err
	}
	if target.IsZero() {
		sh.printf("Target amount must be greater than zero.\n")
		return nil
	}
	description, err := sh.text("Enter description (optional): ", true, "")
	if err != nil {
		return err
	}
	initial, err := sh.amount("Initial amount to allocate (press Enter for 0): ", true, decimal.Zero)
	if err != nil {
		return err
	}
	_, err = sh.ledger.AddSavingsGoal(name, target, description, initial)
	sh.report(err, "Savings goal added successfully!")
	return nil
}

func (sh *shell) updateGoal() error {
	if sh.ledger.GoalsLen() == 0 {
		sh.printf("\nNo savings goals to update.\n")
		return nil
	}
	sh.viewGoals()
	i, err := sh.index("Enter savings goal number to update: ", sh.ledger.GoalsLen())
	if err != nil {
		return err
	}
	g, _ := sh.ledger.Goal(i)
	sh.printf("\nCurrent goal: %s\nTarget: %s\nProgress: %s\n\n", g.Name, sh.M(g.Target), sh.M(g.Progress))

	name, err := sh.text(fmt.Sprintf("New name (press Enter to keep '%s'): ", g.Name), true, "")
	if err != nil {
		return err
	}
	target, err := sh.amount(fmt.Sprintf("New target (press Enter to keep %s): ", sh.M(g.Target)), true, g.Target)
	if err != nil {
		return err
	}
	progress, err := sh.amount(fmt.Sprintf("New progress (press Enter to keep %s): ", sh.M(g.Progress)), true, g.Progress)
	if err != nil {
		return err
	}
	description, err := sh.text("New description (press Enter to keep): ", true, "")
	if err != nil {
		return err
	}
	_, err = sh.ledger.UpdateSavingsGoal(i, name, target, progress, description)
	sh.report(err, "Savings goal updated successfully!")
	return nil
}

func (sh *shell) removeGoal() error {
	if sh.ledger.GoalsLen() == 0 {
		sh.printf("\nNo savings goals to delete.\n")
		return nil
	}
	sh.viewGoals()
	i, err := sh.index("Enter savings goal number to delete: ", sh.ledger.GoalsLen())
	if err != nil {
		return err
	}
	g, _ := sh.ledger.Goal(i)
	_, err = sh.ledger.RemoveSavingsGoal(i)
	sh.report(err, fmt.Sprintf("Savings goal '%s' deleted!\nRefunded: %s", g.Name, sh.M(g.Progress)))
	return nil
}
