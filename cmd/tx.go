package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/mononomics"
	"github.com/etnz/mononomics/renderer"
	"github.com/google/subcommands"
)

type txCmd struct {
	kind  string
	since string
	until string
	head  int
	tail  int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions" }
func (*txCmd) Usage() string {
	return `mono tx [-kind <income|expense>] [-since <time>] [-until <time>] [-head <n> | -tail <n>]

  Lists transactions from the ledger, with options for filtering and limiting the output.
  Times are YYYY-MM-DD or YYYY-MM-DD HH:MM:SS, -since is inclusive and -until exclusive.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "kind", "", "Only list transactions of this type: income or expense.")
	f.StringVar(&c.since, "since", "", "Only list transactions recorded at or after this time.")
	f.StringVar(&c.until, "until", "", "Only list transactions recorded before this time.")
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N transactions.")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}
	filters, err := c.filters()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	return view(func(s *session) (string, error) {
		heading := "Transactions"
		if c.kind != "" {
			heading = title(mononomics.Kind(c.kind)) + " Transactions"
		}
		t := renderer.NewTransactions(heading, s.Currency, s.ledger.Transactions(filters...))
		return renderer.RenderTransactions(t.Limit(c.head, c.tail)), nil
	})
}

func (c *txCmd) filters() ([]func(mononomics.Transaction) bool, error) {
	var filters []func(mononomics.Transaction) bool
	if c.kind != "" {
		k, err := mononomics.ParseKind(c.kind)
		if err != nil {
			return nil, err
		}
		c.kind = string(k)
		filters = append(filters, mononomics.ByKind(k))
	}
	from, err := mononomics.ParseTime(c.since)
	if err != nil {
		return nil, err
	}
	to, err := mononomics.ParseTime(c.until)
	if err != nil {
		return nil, err
	}
	return append(filters, mononomics.Between(from, to)), nil
}
