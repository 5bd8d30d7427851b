package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/mononomics/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// --- Add Goal Command ---

type goalAddCmd struct {
	name        string
	target      amountFlag
	description string
	progress    amountFlag
}

func (*goalAddCmd) Name() string     { return "goal-add" }
func (*goalAddCmd) Synopsis() string { return "create a savings goal" }
func (*goalAddCmd) Usage() string {
	return `mono goal-add -n <name> -t <target> [-m <description>] [-p <progress>]

  Creates a savings goal. The initial progress is taken from the balance and
  recorded as an expense.
`
}

func (c *goalAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "What you are saving for")
	f.Var(&c.target, "t", "Target amount, greater than zero")
	f.StringVar(&c.description, "m", "", "Description. Defaults to the name")
	f.Var(&c.progress, "p", "Initial progress taken from the balance")
}

func (c *goalAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" || !c.target.set || f.NArg() > 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return mutate(func(s *session) (string, error) {
		if _, err := s.ledger.AddSavingsGoal(c.name, c.target.v, c.description, c.progress.optional(decimal.Zero)); err != nil {
			return "", err
		}
		return "Savings goal added successfully!", nil
	})
}

// --- Update Goal Command ---

type goalUpdateCmd struct {
	name        string
	target      amountFlag
	description string
	progress    amountFlag
}

func (*goalUpdateCmd) Name() string     { return "goal-update" }
func (*goalUpdateCmd) Synopsis() string { return "change a savings goal" }
func (*goalUpdateCmd) Usage() string {
	return `mono goal-update [-n <name>] [-t <target>] [-p <progress>] [-m <description>] <ref>

  Changes the savings goal <ref>, its position as listed by 'mono goals' or a
  prefix of its ID. Unset flags keep the current values. An increase of the
  progress is taken from the balance, a decrease is given back.
`
}

func (c *goalUpdateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "New name")
	f.Var(&c.target, "t", "New target amount")
	f.Var(&c.progress, "p", "New progress")
	f.StringVar(&c.description, "m", "", "New description")
}

func (c *goalUpdateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return mutate(func(s *session) (string, error) {
		i, err := s.ledger.ResolveGoal(f.Arg(0))
		if err != nil {
			return "", err
		}
		g, _ := s.ledger.Goal(i)
		target, progress := c.target.optional(g.Target), c.progress.optional(g.Progress)
		if _, err := s.ledger.UpdateSavingsGoal(i, c.name, target, progress, c.description); err != nil {
			return "", err
		}
		return "Savings goal updated successfully!", nil
	})
}

// --- Remove Goal Command ---

type goalRemoveCmd struct{}

func (*goalRemoveCmd) Name() string     { return "goal-rm" }
func (*goalRemoveCmd) Synopsis() string { return "delete a savings goal and refund its progress" }
func (*goalRemoveCmd) Usage() string {
	return `mono goal-rm <ref>

  Deletes the savings goal <ref>, its position as listed by 'mono goals' or a
  prefix of its ID. The saved amount is given back to the balance.
`
}

func (*goalRemoveCmd) SetFlags(*flag.FlagSet) {}

func (c *goalRemoveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return mutate(func(s *session) (string, error) {
		i, err := s.ledger.ResolveGoal(f.Arg(0))
		if err != nil {
			return "", err
		}
		g, _ := s.ledger.Goal(i)
		if _, err := s.ledger.RemoveSavingsGoal(i); err != nil {
			return "", err
		}
		return fmt.Sprintf("Savings goal '%s' deleted!\nRefunded: %s", g.Name, s.M(g.Progress)), nil
	})
}

// --- List Goals Command ---

type goalsCmd struct{}

func (*goalsCmd) Name() string     { return "goals" }
func (*goalsCmd) Synopsis() string { return "list savings goals" }
func (*goalsCmd) Usage() string {
	return `mono goals

  Lists the savings goals with their progress.
`
}

func (*goalsCmd) SetFlags(*flag.FlagSet) {}

func (*goalsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return view(func(s *session) (string, error) {
		return renderer.RenderGoals(renderer.NewGoals(s.ledger, s.Currency)), nil
	})
}
