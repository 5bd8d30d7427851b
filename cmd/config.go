package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/etnz/mononomics"
	"github.com/shopspring/decimal"
)

const (
	EnvLedgerFile     = "MONO_LEDGER_FILE"
	EnvCurrency       = "MONO_CURRENCY"
	EnvInitialBalance = "MONO_INITIAL_BALANCE"
	EnvUsername       = "MONO_USERNAME"
	EnvPasswordHash   = "MONO_PASSWORD_HASH"
	EnvVerbose        = "MONO_VERBOSE"
)

// DefaultLedgerFile is the ledger used when none is configured.
const DefaultLedgerFile = "data.json"

// Config is the resolved configuration of a run: global flags first, then
// the environment (which main fills from .env), then defaults.
type Config struct {
	LedgerFile     string
	Currency       string
	InitialBalance decimal.Decimal
	Credentials    mononomics.Credentials
	Verbose        bool
	Plain          bool
}

// LoadConfig resolves the configuration and validates it.
func LoadConfig() (*Config, error) {
	c := &Config{
		LedgerFile: firstOf(*ledgerFile, os.Getenv(EnvLedgerFile), DefaultLedgerFile),
		Currency:   strings.ToUpper(firstOf(*currency, os.Getenv(EnvCurrency), mononomics.DefaultCurrency)),
		Verbose:    *verbose,
		Plain:      *plain,
		Credentials: mononomics.Credentials{
			Username:     os.Getenv(EnvUsername),
			PasswordHash: []byte(os.Getenv(EnvPasswordHash)),
		},
	}
	var errs []error
	if s := os.Getenv(EnvVerbose); s != "" && !c.Verbose {
		v, err := strconv.ParseBool(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvVerbose, err))
		}
		c.Verbose = v
	}
	if s := os.Getenv(EnvInitialBalance); s != "" {
		v, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: invalid amount %q", EnvInitialBalance, s))
		}
		c.InitialBalance = v
	}
	errs = append(errs, c.Validate())
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Verbose {
		log.Printf("config: ledger=%q currency=%s initial=%s login=%t", c.LedgerFile, c.Currency, c.InitialBalance, c.Credentials.Enabled())
	}
	return c, nil
}

// Validate reports every problem of the configuration at once.
func (c *Config) Validate() error {
	var errs []error
	if c.LedgerFile == "" {
		errs = append(errs, errors.New("ledger file is empty"))
	}
	if money.GetCurrency(c.Currency) == nil {
		errs = append(errs, fmt.Errorf("unknown currency %q", c.Currency))
	}
	switch creds := c.Credentials; {
	case creds.Username == "" && len(creds.PasswordHash) > 0:
		errs = append(errs, fmt.Errorf("%s is set but %s is not", EnvPasswordHash, EnvUsername))
	case creds.Username != "" && len(creds.PasswordHash) == 0:
		errs = append(errs, fmt.Errorf("%s is set but %s is not, run 'mono hash-password' to create one", EnvUsername, EnvPasswordHash))
	default:
		if err := creds.Check(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// M expresses an amount in the configured currency.
func (c *Config) M(v decimal.Decimal) mononomics.Money { return mononomics.M(v, c.Currency) }

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
