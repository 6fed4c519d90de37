package vault

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ashwin/ledgerpad/internal/codec"
)

// User is the single account record. The passphrase doubles as the file
// encryption key, so the record is only as secret as the passphrase itself.
// That weakness is inherited from the original data format on purpose.
type User struct {
	Username   string `json:"username"`
	Passphrase string `json:"password"`
}

// CredentialStore persists exactly one User, keyed by its own passphrase.
type CredentialStore struct {
	path string
}

// Exists reports whether an account has been set up.
func (s *CredentialStore) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir()
}

// Load reads and decodes the credential file with the given passphrase.
// A wrong passphrase almost always surfaces as a JSON parse failure on
// high-entropy garbage; both that and a genuinely damaged file map to
// ErrInvalidCredentials.
func (s *CredentialStore) Load(passphrase string) (User, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return User{}, fmt.Errorf("%w: no account exists", ErrInvalidCredentials)
		}
		return User{}, fmt.Errorf("read credential file: %w", err)
	}
	encoded, err := codec.FromPrintable(strings.TrimSpace(string(raw)))
	if err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	plain := codec.Obfuscate(encoded, passphrase)
	var u User
	if err := json.Unmarshal(plain, &u); err != nil {
		return User{}, fmt.Errorf("%w: credential record unreadable", ErrInvalidCredentials)
	}
	if u.Passphrase != passphrase {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Save serializes, encodes and writes the credential record, replacing any
// existing file.
func (s *CredentialStore) Save(u User, passphrase string) error {
	plain, err := json.MarshalIndent(u, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	encoded := codec.ToPrintable(codec.Obfuscate(plain, passphrase))
	return writeAtomic(s.path, []byte(encoded), 0o600)
}
