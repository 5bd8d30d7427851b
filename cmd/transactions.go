package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/mononomics"
	"github.com/google/subcommands"
)

// --- Income and Expense Commands ---

type addCmd struct {
	kind        mononomics.Kind
	amount      amountFlag
	description string
}

func (c *addCmd) Name() string { return string(c.kind) }
func (c *addCmd) Synopsis() string {
	if c.kind == mononomics.Income {
		return "record money coming in"
	}
	return "record money going out"
}
func (c *addCmd) Usage() string {
	return fmt.Sprintf(`mono %s -a <amount> [-m <description>]

  Records a new %s transaction and updates the balance.
`, c.kind, c.kind)
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.amount, "a", "Amount, greater than zero")
	f.StringVar(&c.description, "m", "", "Description. Defaults to the transaction type")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.amount.set || f.NArg() > 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return mutate(func(s *session) (string, error) {
		add := s.ledger.AddIncome
		if c.kind == mononomics.Expense {
			add = s.ledger.AddExpense
		}
		if _, err := add(c.amount.v, c.description); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s added successfully!", title(c.kind)), nil
	})
}

// --- Update Transaction Command ---

type updateTxCmd struct {
	kind        string
	amount      amountFlag
	description string
}

func (*updateTxCmd) Name() string     { return "update-tx" }
func (*updateTxCmd) Synopsis() string { return "replace a transaction" }
func (*updateTxCmd) Usage() string {
	return `mono update-tx -k <income|expense> -a <amount> [-m <description>] <ref>

  Replaces the transaction <ref>, its position as listed by 'mono tx' or a
  prefix of its ID. The old effect on the balance is reversed and the new one
  applied. The description is kept unless -m is given.
`
}

func (c *updateTxCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "k", "", "New transaction type: income or expense")
	f.Var(&c.amount, "a", "New amount, greater than zero")
	f.StringVar(&c.description, "m", "", "New description")
}

func (c *updateTxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || !c.amount.set {
		f.Usage()
		return subcommands.ExitUsageError
	}
	kind, err := mononomics.ParseKind(c.kind)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return mutate(func(s *session) (string, error) {
		i, err := s.ledger.ResolveTransaction(f.Arg(0))
		if err != nil {
			return "", err
		}
		old, _ := s.ledger.Transaction(i)
		if _, err := s.ledger.UpdateTransaction(i, kind, c.amount.v, c.description); err != nil {
			return "", err
		}
		return fmt.Sprintf("Updating: %s\nTransaction updated successfully!", s.txLine(old)), nil
	})
}

// --- Remove Transaction Command ---

type removeTxCmd struct{}

func (*removeTxCmd) Name() string     { return "rm-tx" }
func (*removeTxCmd) Synopsis() string { return "delete a transaction" }
func (*removeTxCmd) Usage() string {
	return `mono rm-tx <ref>

  Deletes the transaction <ref>, its position as listed by 'mono tx' or a
  prefix of its ID, and reverses its effect on the balance.
`
}

func (*removeTxCmd) SetFlags(*flag.FlagSet) {}

func (c *removeTxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return mutate(func(s *session) (string, error) {
		i, err := s.ledger.ResolveTransaction(f.Arg(0))
		if err != nil {
			return "", err
		}
		old, _ := s.ledger.Transaction(i)
		if _, err := s.ledger.RemoveTransaction(i); err != nil {
			return "", err
		}
		return fmt.Sprintf("Removing: %s\nTransaction removed successfully!", s.txLine(old)), nil
	})
}

// txLine is the one line description of a transaction, e.g. "EXPENSE - ₱30.00 - food".
func (s *session) txLine(tx mononomics.Transaction) string {
	return fmt.Sprintf("%s - %s - %s", upper(tx.Kind), s.M(tx.Amount), tx.Description)
}

func title(k mononomics.Kind) string {
	s := string(k)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func upper(k mononomics.Kind) string { return strings.ToUpper(string(k)) }
