package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// RunExtension attempts to find and execute an external mono-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
//
// Global flags are passed to the extension as MONO_* environment variables.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "mono-" + subcommand

	lp, err := exec.LookPath(name)
	if err != nil {
		if *verbose {
			log.Printf("external command %q not found in PATH: %v", name, err)
		}
		return false, 0
	}

	c := exec.Command(lp, args...)
	c.Stdin = os.Stdin
	c.Stdout = stdout
	c.Stderr = stderr
	c.Env = append(os.Environ(), extensionEnv()...)

	if err := c.Run(); err != nil {
		var exit *exec.ExitError
		if errors.As(err, &exit) {
			return true, exit.ExitCode()
		}
		fmt.Fprintf(stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}

// extensionEnv turns the global flags into variables. Unset flags are not
// passed so that the inherited environment applies.
func extensionEnv() []string {
	var env []string
	if *ledgerFile != "" {
		file := *ledgerFile
		if abs, err := filepath.Abs(file); err == nil {
			file = abs
		}
		env = append(env, EnvLedgerFile+"="+file)
	}
	if *currency != "" {
		env = append(env, EnvCurrency+"="+*currency)
	}
	return append(env, EnvVerbose+"="+strconv.FormatBool(*verbose))
}
