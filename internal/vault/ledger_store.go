package vault

import (
	"fmt"
	"os"
	"strings"

	"github.com/ashwin/ledgerpad/internal/codec"
	"github.com/ashwin/ledgerpad/internal/ledger"
)

// LedgerStore persists the ordered transaction collection. The whole file is
// rewritten on every mutation; there is no incremental append.
type LedgerStore struct {
	path string
}

// ReadAll returns every transaction in insertion order. A missing or empty
// file is a valid empty ledger, not an error. A file that exists but cannot
// be decoded returns an empty slice together with ErrCorruptedLedger so the
// caller can tell "no data yet" apart from "failed to read".
func (s *LedgerStore) ReadAll(passphrase string) ([]ledger.Transaction, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read ledger file: %w", err)
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return nil, nil
	}
	encoded, err := codec.FromPrintable(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptedLedger, err)
	}
	plain := codec.Obfuscate(encoded, passphrase)
	f, err := ledger.UnmarshalFile(plain)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptedLedger, err)
	}
	return f.Transactions, nil
}

// WriteAll serializes and writes the full collection, replacing the file.
func (s *LedgerStore) WriteAll(transactions []ledger.Transaction, passphrase string) error {
	plain, err := ledger.File{Transactions: transactions}.Marshal()
	if err != nil {
		return err
	}
	encoded := codec.ToPrintable(codec.Obfuscate(plain, passphrase))
	return writeAtomic(s.path, []byte(encoded), 0o600)
}
