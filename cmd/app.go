// Package cmd implements the mono command line application.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/mononomics"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

// Commands lists the subcommands in the order of the help screen.
var Commands = []subcommands.Command{
	&balanceCmd{},
	&addCmd{kind: mononomics.Income},
	&addCmd{kind: mononomics.Expense},
	&txCmd{},
	&updateTxCmd{},
	&removeTxCmd{},
	&goalAddCmd{},
	&goalUpdateCmd{},
	&goalRemoveCmd{},
	&goalsCmd{},
	&summaryCmd{},
	&checkCmd{},
	&fmtCmd{},
	&queryCmd{},
	&shellCmd{},
	&hashPasswordCmd{},
	&AssistCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	ledgerFile = flag.String("ledger-file", "", "Path to the ledger file. Defaults to $"+EnvLedgerFile+" or "+DefaultLedgerFile)
	currency   = flag.String("currency", "", "ISO code of the currency used to display amounts. Defaults to $"+EnvCurrency+" or "+mononomics.DefaultCurrency)
	verbose    = flag.Bool("v", false, "Print diagnostics on stderr.")
	plain      = flag.Bool("plain", false, "Print raw markdown instead of rendering it for the terminal.")
)

// stdout and stderr are variables so that tests can capture the output.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// session is the configuration and the ledger a subcommand works on.
type session struct {
	*Config
	ledger *mononomics.Ledger
}

// openSession loads the configuration and the ledger it points to.
func openSession() (*session, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return loadSession(cfg)
}

func loadSession(cfg *Config) (*session, error) {
	l, err := mononomics.LoadLedger(cfg.LedgerFile, cfg.InitialBalance)
	if err != nil {
		return nil, err
	}
	if cfg.Verbose {
		log.Printf("loaded %q: %d transactions, %d savings goals", cfg.LedgerFile, l.Len(), l.GoalsLen())
	}
	return &session{Config: cfg, ledger: l}, nil
}

// save rewrites the ledger file.
func (s *session) save() error {
	if err := mononomics.SaveLedger(s.LedgerFile, s.ledger); err != nil {
		return fmt.Errorf("error saving data: %w", err)
	}
	if s.Verbose {
		log.Printf("saved %q", s.LedgerFile)
	}
	return nil
}

// describe turns a ledger error into a message for the user.
func (s *session) describe(err error) string {
	var short *mononomics.InsufficientBalanceError
	if errors.As(err, &short) {
		return fmt.Sprintf("Insufficient balance. Available: %s", s.M(short.Available))
	}
	return fmt.Sprintf("Error: %v", err)
}

// mutate opens the ledger, applies op and saves the ledger if op succeeded.
// The message returned by op is printed with the updated balance.
func mutate(op func(s *session) (string, error)) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	msg, err := op(s)
	if err != nil {
		fmt.Fprintln(stderr, s.describe(err))
		return subcommands.ExitFailure
	}
	if err := s.save(); err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, msg)
	fmt.Fprintf(stdout, "Updated balance: %s\n", s.M(s.ledger.Balance()))
	return subcommands.ExitSuccess
}

// view opens the ledger and prints the markdown returned by render.
func view(render func(s *session) (string, error)) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	md, err := render(s)
	if err != nil {
		fmt.Fprintln(stderr, s.describe(err))
		return subcommands.ExitFailure
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

// printMarkdown renders md for the terminal, or prints it as is when the
// output is not a terminal.
func printMarkdown(md string) {
	if *plain || !isTerminal(stdout) {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		log.Printf("markdown renderer unavailable: %v", err)
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		log.Printf("could not render markdown: %v", err)
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// amountFlag is a flag.Value for amounts as accepted by mononomics.ParseAmount.
type amountFlag struct {
	v   decimal.Decimal
	set bool
}

func (a *amountFlag) String() string {
	if a == nil || !a.set {
		return ""
	}
	return a.v.String()
}

func (a *amountFlag) Set(s string) error {
	v, err := mononomics.ParseAmount(s)
	if err != nil {
		return err
	}
	a.v, a.set = v, true
	return nil
}

// optional returns the flag value, or def when the flag was not set.
func (a *amountFlag) optional(def decimal.Decimal) decimal.Decimal {
	if !a.set {
		return def
	}
	return a.v
}
