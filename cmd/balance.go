package cmd

import (
	"context"
	"flag"

	"github.com/etnz/mononomics/renderer"
	"github.com/google/subcommands"
)

type balanceCmd struct{}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "display the current balance" }
func (*balanceCmd) Usage() string {
	return `mono balance

  Displays the current balance.
`
}

func (*balanceCmd) SetFlags(*flag.FlagSet) {}

func (*balanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return view(func(s *session) (string, error) {
		return renderer.RenderBalance(renderer.NewBalance(s.ledger, s.Currency)), nil
	})
}
