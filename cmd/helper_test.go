package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/mononomics"
	"github.com/google/subcommands"
)

// testEnv points the global flags to a temporary ledger and captures the output.
type testEnv struct {
	file   string
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newTestEnv(t *testing.T, content string) *testEnv {
	t.Helper()
	for _, k := range []string{EnvLedgerFile, EnvCurrency, EnvInitialBalance, EnvUsername, EnvPasswordHash, EnvVerbose} {
		t.Setenv(k, "")
	}
	t.Setenv(mononomics.EnvTestingNow, "2025-01-02 10:00:00")

	e := &testEnv{
		file:   filepath.Join(t.TempDir(), "data.json"),
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
	}
	if content != "" {
		if err := os.WriteFile(e.file, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write ledger: %v", err)
		}
	}

	// Override globals for the test
	oldLedgerFile, oldCurrency, oldPlain := ledgerFile, currency, plain
	oldStdout, oldStderr := stdout, stderr
	usd, yes := "USD", true
	ledgerFile, currency, plain = &e.file, &usd, &yes
	stdout, stderr = e.out, e.errOut
	t.Cleanup(func() {
		ledgerFile, currency, plain = oldLedgerFile, oldCurrency, oldPlain
		stdout, stderr = oldStdout, oldStderr
	})
	return e
}

// run executes c with args as if typed on the command line.
func (e *testEnv) run(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	f.SetOutput(e.errOut)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		return subcommands.ExitUsageError
	}
	return c.Execute(context.Background(), f)
}

// ledger reads back the ledger file.
func (e *testEnv) ledger(t *testing.T) *mononomics.Ledger {
	t.Helper()
	l, err := mononomics.LoadLedger(e.file, mononomics.D(0))
	if err != nil {
		t.Fatalf("LoadLedger() error: %v", err)
	}
	return l
}

// reset forgets the output of previous commands.
func (e *testEnv) reset() {
	e.out.Reset()
	e.errOut.Reset()
}
