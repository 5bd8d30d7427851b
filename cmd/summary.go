package cmd

import (
	"context"
	"flag"

	"github.com/etnz/mononomics/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the ledger totals" }
func (*summaryCmd) Usage() string {
	return `mono summary

  Displays the balance, the income and expense totals and the savings progress.
`
}

func (*summaryCmd) SetFlags(*flag.FlagSet) {}

func (*summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return view(func(s *session) (string, error) {
		return renderer.RenderSummary(renderer.NewSummary(s.ledger.Summary(), s.Currency)), nil
	})
}
