package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `mono fmt

  Validates and formats the ledger file. Records written by older versions get
  an ID, amounts are normalized and the document is indented. The file is left
  untouched when the balance does not match the transactions, see 'mono check'.
`
}

func (*fmtCmd) SetFlags(*flag.FlagSet) {}

func (*fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	// formatting must not create a ledger
	if _, err := os.Stat(cfg.LedgerFile); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	s, err := loadSession(cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	if err := s.ledger.Audit(s.InitialBalance); err != nil {
		fmt.Fprintln(stderr, s.describe(err))
		return subcommands.ExitFailure
	}
	if err := s.save(); err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Ledger file %q has been formatted.\n", s.LedgerFile)
	return subcommands.ExitSuccess
}
