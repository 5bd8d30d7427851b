// Command mono is a personal finance tracker: balance, income and expense
// transactions, and savings goals kept in a JSON file.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"

	"github.com/etnz/mononomics/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("mono: ")

	// the environment wins over .env, a missing .env is fine
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning: could not read .env: %v", err)
	}

	// when invoked by the shell completion, complete and exit.
	cmd.Completion().Complete("mono")

	commander := subcommands.NewCommander(flag.CommandLine, "mono")
	known := make(map[string]bool)
	register := func(c subcommands.Command) {
		commander.Register(c, "")
		known[c.Name()] = true
	}
	register(commander.HelpCommand())
	register(commander.FlagsCommand())
	register(commander.CommandsCommand())
	for _, c := range cmd.Commands {
		register(c)
	}

	flag.Parse()

	// unknown subcommands are looked up as mono-<name> executables
	if name := flag.Arg(0); name != "" && !known[name] {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}
