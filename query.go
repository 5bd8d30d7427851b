package mononomics

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// Query evaluates a JSONPath expression against the persisted form of the
// ledger, e.g. `$.transactions[?(@.amount > 100)].description`.
func Query(l *Ledger, path string) (any, error) {
	var buf bytes.Buffer
	if err := EncodeLedger(&buf, l); err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		return nil, fmt.Errorf("could not reload ledger document: %w", err)
	}
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", path, err)
	}
	return v, nil
}
