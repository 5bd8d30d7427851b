package mononomics

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
)

// CorruptSuffix is appended to a ledger file that could not be decoded
// before a fresh ledger takes its place.
const CorruptSuffix = ".corrupt"

// LoadLedger reads the ledger stored at path.
//
// A missing file yields a fresh ledger holding the initial balance. So does a
// file that cannot be decoded, which is first renamed with CorruptSuffix so
// the next save does not overwrite it. This happens on every load, read-only
// commands included. Any other error is returned.
func LoadLedger(path string, initial decimal.Decimal) (*Ledger, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("no data file found at %q, starting fresh", path)
		return NewLedgerWithBalance(initial), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read ledger file %q: %w", path, err)
	}

	l, err := DecodeLedger(bytes.NewReader(data))
	if err != nil {
		log.Printf("data file %q is corrupted, starting fresh: %v", path, err)
		if kept, rerr := setAside(path); rerr != nil {
			log.Printf("could not move corrupted file aside: %v", rerr)
		} else {
			log.Printf("corrupted file kept as %q", kept)
		}
		return NewLedgerWithBalance(initial), nil
	}
	return l, nil
}

// setAside renames path to the first free name among path+CorruptSuffix,
// path+CorruptSuffix+".1", ".2" and so on. Earlier backups are never replaced.
func setAside(path string) (string, error) {
	kept := path + CorruptSuffix
	for n := 1; ; n++ {
		_, err := os.Lstat(kept)
		if errors.Is(err, fs.ErrNotExist) {
			break
		}
		if err != nil {
			return "", err
		}
		kept = fmt.Sprintf("%s%s.%d", path, CorruptSuffix, n)
	}
	if err := os.Rename(path, kept); err != nil {
		return "", err
	}
	return kept, nil
}

// SaveLedger rewrites the whole ledger at path. The document is written to a
// temporary file in the same directory and renamed over path, so a crash
// never leaves a truncated ledger behind.
func SaveLedger(path string, l *Ledger) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create directory for ledger %q: %w", path, err)
	}

	f, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error opening ledger file %q for writing: %w", path, err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	if err = EncodeLedger(f, l); err != nil {
		return fmt.Errorf("error saving ledger %q: %w", path, err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("error saving ledger %q: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("error saving ledger %q: %w", path, err)
	}
	if err = os.Chmod(tmp, 0644); err != nil {
		return fmt.Errorf("error saving ledger %q: %w", path, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("error saving ledger %q: %w", path, err)
	}
	return nil
}
