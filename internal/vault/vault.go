// Package vault owns the on-disk state: the credential record, the encrypted
// transaction ledger and the plain-JSON budget limits, all under a single
// data directory.
//
// Credential and ledger files are stored as hex(xor(json, passphrase)).
// Budgets are deliberately left as readable JSON; the two formats never
// shared a codec in the original tool and unifying them would silently break
// existing data files.
//
// The vault assumes a single active process per data directory. Every write
// replaces the whole file via a temp-file rename, so a crash mid-write leaves
// the previous file intact, but two concurrent processes can still lose each
// other's updates.
package vault

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	userFile        = "user.dat"
	transactionFile = "transactions.dat"
	budgetFile      = "budgets.json"
)

var (
	// ErrInvalidCredentials means the credential file could not be decoded
	// with the supplied passphrase. A corrupted file is indistinguishable
	// from a wrong passphrase.
	ErrInvalidCredentials = errors.New("vault: invalid credentials")

	// ErrCorruptedLedger means the ledger file exists but could not be
	// decoded, either because the passphrase is wrong or the file is
	// damaged. Callers may proceed with an empty ledger after surfacing it.
	ErrCorruptedLedger = errors.New("vault: ledger unreadable (wrong passphrase or corrupted file)")
)

// Vault is a handle on the data directory.
type Vault struct {
	dir string
}

// Open returns a Vault rooted at dir, creating the directory if needed.
func Open(dir string) (*Vault, error) {
	if dir == "" {
		return nil, fmt.Errorf("vault: data directory not set")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &Vault{dir: dir}, nil
}

// Dir returns the data directory path.
func (v *Vault) Dir() string { return v.dir }

// Credentials returns the single-user credential store.
func (v *Vault) Credentials() *CredentialStore {
	return &CredentialStore{path: filepath.Join(v.dir, userFile)}
}

// Ledger returns the transaction store.
func (v *Vault) Ledger() *LedgerStore {
	return &LedgerStore{path: filepath.Join(v.dir, transactionFile)}
}

// Budgets returns the budget limit store.
func (v *Vault) Budgets() *BudgetFile {
	return &BudgetFile{path: filepath.Join(v.dir, budgetFile)}
}

// writeAtomic replaces path with data via temp-file rename.
func writeAtomic(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
