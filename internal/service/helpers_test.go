package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ashwin/ledgerpad/internal/auth"
	"github.com/ashwin/ledgerpad/internal/vault"
)

type testEnv struct {
	Vault   *vault.Vault
	Session *auth.Session
	Ledger  *LedgerService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	v, err := vault.Open(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	session := auth.NewSession(v.Credentials())
	_, err = session.Setup("alice", "secret", "secret")
	require.NoError(t, err)
	return &testEnv{
		Vault:   v,
		Session: session,
		Ledger: &LedgerService{
			Store:   v.Ledger(),
			Session: session,
			now:     func() time.Time { return time.Date(2025, time.November, 15, 12, 0, 0, 0, time.UTC) },
		},
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
