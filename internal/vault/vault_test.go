package vault

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ashwin/ledgerpad/internal/ledger"
)

func testVault(t *testing.T) *Vault {
	t.Helper()
	v, err := Open(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return v
}

func TestOpenCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	if _, err := Open(dir); err != nil {
		t.Fatalf("Open: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("data dir not created: %v", err)
	}
}

func TestCredentialRoundTrip(t *testing.T) {
	creds := testVault(t).Credentials()
	if creds.Exists() {
		t.Fatal("Exists true before save")
	}
	u := User{Username: "alice", Passphrase: "secret"}
	if err := creds.Save(u, u.Passphrase); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !creds.Exists() {
		t.Fatal("Exists false after save")
	}

	got, err := creds.Load("secret")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != u {
		t.Fatalf("Load = %+v, want %+v", got, u)
	}
}

func TestCredentialWrongPassphrase(t *testing.T) {
	creds := testVault(t).Credentials()
	u := User{Username: "alice", Passphrase: "secret"}
	if err := creds.Save(u, u.Passphrase); err != nil {
		t.Fatalf("Save: %v", err)
	}
	_, err := creds.Load("wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Load with wrong passphrase: got %v, want ErrInvalidCredentials", err)
	}
}

func TestCredentialMissingFile(t *testing.T) {
	creds := testVault(t).Credentials()
	_, err := creds.Load("anything")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Load on missing file: got %v", err)
	}
}

func TestCredentialFileIsNotPlaintext(t *testing.T) {
	v := testVault(t)
	u := User{Username: "alice", Passphrase: "secret"}
	if err := v.Credentials().Save(u, u.Passphrase); err != nil {
		t.Fatalf("Save: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(v.Dir(), userFile))
	if err != nil {
		t.Fatalf("read raw file: %v", err)
	}
	if strings.Contains(string(raw), "alice") {
		t.Fatal("username visible in stored file")
	}
	for _, c := range string(raw) {
		if !strings.ContainsRune("0123456789ABCDEF", c) {
			t.Fatalf("stored file contains non-hex character %q", c)
		}
	}
}

func TestLedgerMissingFileIsEmpty(t *testing.T) {
	store := testVault(t).Ledger()
	txs, err := store.ReadAll("secret")
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(txs) != 0 {
		t.Fatalf("got %d transactions, want 0", len(txs))
	}
}

func TestLedgerEmptyFileIsEmpty(t *testing.T) {
	v := testVault(t)
	if err := os.WriteFile(filepath.Join(v.Dir(), transactionFile), nil, 0o600); err != nil {
		t.Fatalf("write empty file: %v", err)
	}
	txs, err := v.Ledger().ReadAll("secret")
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(txs) != 0 {
		t.Fatalf("got %d transactions, want 0", len(txs))
	}
}

func TestLedgerRoundTrip(t *testing.T) {
	store := testVault(t).Ledger()
	want := []ledger.Transaction{
		{ID: 1, Kind: ledger.Expense, Amount: 50, Description: "grocery store", Date: "15 Nov, 25"},
		{ID: 2, Kind: ledger.Income, Amount: 1000, Description: "salary payment", Date: "15 Nov, 25"},
	}
	if err := store.WriteAll(want, "secret"); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	got, err := store.ReadAll("secret")
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d transactions, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("transaction %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLedgerWrongPassphraseIsCorrupted(t *testing.T) {
	store := testVault(t).Ledger()
	txs := []ledger.Transaction{{ID: 1, Kind: ledger.Expense, Amount: 5, Description: "coffee", Date: "1 Jan, 26"}}
	if err := store.WriteAll(txs, "secret"); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	got, err := store.ReadAll("wrong")
	if !errors.Is(err, ErrCorruptedLedger) {
		t.Fatalf("ReadAll with wrong passphrase: got %v, want ErrCorruptedLedger", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty slice alongside error, got %d entries", len(got))
	}
}

func TestLedgerDamagedFileIsCorrupted(t *testing.T) {
	v := testVault(t)
	if err := os.WriteFile(filepath.Join(v.Dir(), transactionFile), []byte("not hex at all"), 0o600); err != nil {
		t.Fatalf("write damaged file: %v", err)
	}
	_, err := v.Ledger().ReadAll("secret")
	if !errors.Is(err, ErrCorruptedLedger) {
		t.Fatalf("ReadAll on damaged file: got %v, want ErrCorruptedLedger", err)
	}
}

func TestLedgerWriteReplacesWholeFile(t *testing.T) {
	store := testVault(t).Ledger()
	first := []ledger.Transaction{{ID: 1, Kind: ledger.Income, Amount: 10, Description: "a", Date: "1 Jan, 26"}}
	if err := store.WriteAll(first, "k"); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	second := []ledger.Transaction{{ID: 7, Kind: ledger.Expense, Amount: 3, Description: "b", Date: "2 Jan, 26"}}
	if err := store.WriteAll(second, "k"); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	got, err := store.ReadAll("k")
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != 1 || got[0].ID != 7 {
		t.Fatalf("got %+v, want only the second write", got)
	}
}

func TestBudgetDefaultsWhenMissing(t *testing.T) {
	budgets := testVault(t).Budgets()
	limits, err := budgets.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if limits["Food"] != 400 || limits["Housing"] != 1500 || limits["Other"] != 500 {
		t.Fatalf("unexpected defaults: %v", limits)
	}
	if len(limits) != 8 {
		t.Fatalf("got %d default categories, want 8", len(limits))
	}
}

func TestBudgetRoundTrip(t *testing.T) {
	budgets := testVault(t).Budgets()
	want := map[string]float64{"Food": 250, "Travel": 900}
	if err := budgets.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := budgets.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 || got["Food"] != 250 || got["Travel"] != 900 {
		t.Fatalf("Load = %v, want %v", got, want)
	}
}

func TestBudgetMalformedFileKeepsDefaultsAndReports(t *testing.T) {
	v := testVault(t)
	path := filepath.Join(v.Dir(), "budgets.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	limits, err := v.Budgets().Load()
	if !errors.Is(err, ErrMalformedBudgets) {
		t.Fatalf("err = %v, want ErrMalformedBudgets", err)
	}
	if len(limits) != 8 || limits["Food"] != 400 {
		t.Fatalf("expected default limits alongside the error, got %v", limits)
	}

	// valid JSON but no budgets table is malformed too
	if err := os.WriteFile(path, []byte(`{"other": 1}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := v.Budgets().Load(); !errors.Is(err, ErrMalformedBudgets) {
		t.Fatalf("err = %v, want ErrMalformedBudgets", err)
	}
}

func TestBudgetFileIsPlainJSON(t *testing.T) {
	v := testVault(t)
	if err := v.Budgets().Save(map[string]float64{"Food": 1}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(v.Dir(), budgetFile))
	if err != nil {
		t.Fatalf("read raw file: %v", err)
	}
	if !strings.Contains(string(raw), `"Food"`) {
		t.Fatalf("budget file should be readable JSON, got %q", raw)
	}
}
