package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/etnz/mononomics"
	"github.com/google/subcommands"
)

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression on the ledger" }
func (*queryCmd) Usage() string {
	return `mono query <jsonpath>

  Evaluates a JSONPath expression on the ledger document and prints the
  result as JSON. See 'mono topic query'.
`
}

func (*queryCmd) SetFlags(*flag.FlagSet) {}

func (*queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	s, err := openSession()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	v, err := mononomics.Query(s.ledger, f.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
