package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/mononomics"
	"github.com/google/subcommands"
)

type hashPasswordCmd struct {
	in io.Reader // os.Stdin when nil
}

func (*hashPasswordCmd) Name() string     { return "hash-password" }
func (*hashPasswordCmd) Synopsis() string { return "hash a password for the login" }
func (*hashPasswordCmd) Usage() string {
	return `mono hash-password

  Reads a password and prints the line to add to the .env file to require a
  login in 'mono shell'. ` + EnvUsername + ` must be set as well.
`
}

func (*hashPasswordCmd) SetFlags(*flag.FlagSet) {}

func (c *hashPasswordCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in := c.in
	if in == nil {
		in = os.Stdin
	}
	// prompts go to stderr so that stdout can be appended to .env
	p := newPrompter(in, stderr)
	password, err := p.secret("Password: ")
	if err != nil {
		fmt.Fprintf(stderr, "Error reading password: %v\n", err)
		return subcommands.ExitFailure
	}
	confirm, err := p.secret("Confirm password: ")
	if err != nil {
		fmt.Fprintf(stderr, "Error reading password: %v\n", err)
		return subcommands.ExitFailure
	}
	if password != confirm {
		fmt.Fprintln(stderr, "Error: passwords do not match")
		return subcommands.ExitFailure
	}
	hash, err := mononomics.HashPassword(password)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	// single quotes keep godotenv from expanding the $ of the hash
	fmt.Fprintf(stdout, "%s='%s'\n", EnvPasswordHash, hash)
	return subcommands.ExitSuccess
}
