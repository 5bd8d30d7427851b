package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/mononomics"
	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

// prompter asks questions on out and reads the answers from in, one per
// line. Invalid answers are asked again. io.EOF is returned when the input
// ends.
type prompter struct {
	in  io.Reader
	r   *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: in, r: bufio.NewReader(in), out: out}
}

func (p *prompter) printf(format string, args ...any) { fmt.Fprintf(p.out, format, args...) }

// line prints prompt and returns the trimmed answer.
func (p *prompter) line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	s, err := p.r.ReadString('\n')
	if err != nil && (err != io.EOF || s == "") {
		fmt.Fprintln(p.out)
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// secret is like line but does not echo when reading from a terminal.
func (p *prompter) secret(prompt string) (string, error) {
	f, ok := p.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return p.line(prompt)
	}
	fmt.Fprint(p.out, prompt)
	b, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// text asks for a string, def is returned for an empty answer when allowEmpty.
func (p *prompter) text(prompt string, allowEmpty bool, def string) (string, error) {
	for {
		s, err := p.line(prompt)
		if err != nil {
			return "", err
		}
		switch {
		case s != "":
			return s, nil
		case allowEmpty:
			return def, nil
		}
		p.printf("Input cannot be empty.\n")
	}
}

// amount asks for a non negative amount, def is returned for an empty answer when allowEmpty.
func (p *prompter) amount(prompt string, allowEmpty bool, def decimal.Decimal) (decimal.Decimal, error) {
	for {
		s, err := p.line(prompt)
		if err != nil {
			return decimal.Zero, err
		}
		if s == "" {
			if allowEmpty {
				return def, nil
			}
			p.printf("Input cannot be empty.\n")
			continue
		}
		v, err := mononomics.ParseAmount(s)
		switch {
		case err == nil:
			return v, nil
		case strings.HasPrefix(s, "-"):
			p.printf("Amount cannot be negative.\n")
		default:
			p.printf("Invalid input. Please enter a valid number.\n")
		}
	}
}

// index asks for a position between 1 and n.
func (p *prompter) index(prompt string, n int) (int, error) {
	for {
		s, err := p.line(prompt)
		if err != nil {
			return 0, err
		}
		i, err := strconv.Atoi(s)
		switch {
		case err != nil:
			p.printf("Invalid input. Please enter a valid number.\n")
		case i < 1:
			p.printf("Value must be at least 1.\n")
		case i > n:
			p.printf("Value must be at most %d.\n", n)
		default:
			return i, nil
		}
	}
}

// kind asks for a transaction type.
func (p *prompter) kind(prompt string) (mononomics.Kind, error) {
	for {
		s, err := p.line(prompt)
		if err != nil {
			return "", err
		}
		if k, err := mononomics.ParseKind(s); err == nil {
			return k, nil
		}
		p.printf("Invalid type. Please enter 'income' or 'expense'.\n")
	}
}
