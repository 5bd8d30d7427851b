package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/etnz/mononomics"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type checkCmd struct {
	initial string
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "verify the balance against the transactions" }
func (*checkCmd) Usage() string {
	return `mono check [-initial <amount>]

  Verifies that the balance equals the opening balance plus all incomes minus
  all expenses. Exits with a failure status when it does not.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.initial, "initial", "", "Opening balance. Defaults to $"+EnvInitialBalance+" or 0")
}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	initial := s.InitialBalance
	if c.initial != "" {
		// the opening balance may be negative, do not use ParseAmount
		if initial, err = decimal.NewFromString(c.initial); err != nil {
			fmt.Fprintf(stderr, "Error: invalid opening balance %q\n", c.initial)
			return subcommands.ExitUsageError
		}
	}

	err = s.ledger.Audit(initial)
	var audit *mononomics.AuditError
	switch {
	case errors.As(err, &audit):
		fmt.Fprintf(stdout, "Balance %s does not match the transactions: expected %s.\n", s.M(audit.Actual), s.M(audit.Expected))
		return subcommands.ExitFailure
	case err != nil:
		fmt.Fprintln(stderr, s.describe(err))
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Balance %s matches %d transactions.\n", s.M(s.ledger.Balance()), s.ledger.Len())
	return subcommands.ExitSuccess
}
