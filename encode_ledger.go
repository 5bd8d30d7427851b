package mononomics

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// document is the persisted shape of a ledger.
type document struct {
	Balance      decimal.Decimal `json:"balance"`
	Transactions []Transaction   `json:"transactions"`
	Savings      []SavingsGoal   `json:"savings"`
}

// DecodeLedger reads a whole ledger document. Missing lists decode as empty
// ones and records without an ID are given one.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	var doc document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("could not decode ledger: %w", err)
	}
	// the document must be the only value in the stream
	if tok, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = fmt.Errorf("unexpected %v", tok)
		}
		return nil, fmt.Errorf("could not decode ledger: trailing data after the document: %w", err)
	}

	var errs error
	for i, tx := range doc.Transactions {
		if err := tx.validate(); err != nil {
			errs = errors.Join(errs, fmt.Errorf("transaction %d: %w", i+1, err))
		}
	}
	for i, g := range doc.Savings {
		if err := g.validate(); err != nil {
			errs = errors.Join(errs, fmt.Errorf("savings goal %d: %w", i+1, err))
		}
	}
	if errs != nil {
		return nil, fmt.Errorf("invalid ledger: %w", errs)
	}

	l := NewLedgerWithBalance(doc.Balance)
	if doc.Transactions != nil {
		l.transactions = doc.Transactions
	}
	if doc.Savings != nil {
		l.goals = doc.Savings
	}
	for i := range l.transactions {
		if l.transactions[i].ID == "" {
			l.transactions[i].ID = l.newID()
		}
	}
	for i := range l.goals {
		if l.goals[i].ID == "" {
			l.goals[i].ID = l.newID()
		}
	}
	return l, nil
}

// EncodeLedger writes the whole ledger as one indented JSON document.
func EncodeLedger(w io.Writer, l *Ledger) error {
	doc := document{
		Balance:      l.balance,
		Transactions: l.transactions,
		Savings:      l.goals,
	}
	if doc.Transactions == nil {
		doc.Transactions = []Transaction{}
	}
	if doc.Savings == nil {
		doc.Savings = []SavingsGoal{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	return nil
}
