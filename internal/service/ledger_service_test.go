package service

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ashwin/ledgerpad/internal/auth"
	"github.com/ashwin/ledgerpad/internal/ledger"
	"github.com/ashwin/ledgerpad/internal/vault"
)

func testLedgerService(t *testing.T) *LedgerService {
	t.Helper()
	return newTestEnv(t).Ledger
}

func TestAddAssignsFirstID(t *testing.T) {
	svc := testLedgerService(t)
	tx, err := svc.Add(ledger.Expense, 50, "grocery store")
	require.NoError(t, err)
	require.Equal(t, 1, tx.ID)
	require.Equal(t, "15 Nov, 25", tx.Date)
}

func TestAddAssignsMaxPlusOne(t *testing.T) {
	svc := testLedgerService(t)
	key, err := svc.Session.Passphrase()
	require.NoError(t, err)
	// sparse ids: next must be max+1, not count+1
	seed := []ledger.Transaction{
		{ID: 1, Kind: ledger.Income, Amount: 1, Description: "a", Date: "1 Jan, 25"},
		{ID: 3, Kind: ledger.Income, Amount: 1, Description: "b", Date: "1 Jan, 25"},
		{ID: 5, Kind: ledger.Income, Amount: 1, Description: "c", Date: "1 Jan, 25"},
	}
	require.NoError(t, svc.Store.WriteAll(seed, key))

	tx, err := svc.Add(ledger.Expense, 2, "d")
	require.NoError(t, err)
	require.Equal(t, 6, tx.ID)
}

func TestAddValidation(t *testing.T) {
	svc := testLedgerService(t)
	cases := []struct {
		name   string
		kind   ledger.Kind
		amount float64
		desc   string
	}{
		{"negative amount", ledger.Expense, -5, "x"},
		{"zero amount", ledger.Expense, 0, "x"},
		{"empty description", ledger.Expense, 5, ""},
		{"unknown kind", ledger.Kind("bogus"), 5, "x"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Add(tc.kind, tc.amount, tc.desc)
			var ve *ledger.ValidationError
			require.ErrorAs(t, err, &ve)
		})
	}
	// nothing was written
	all, err := svc.All()
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestAddRequiresSession(t *testing.T) {
	v, err := vault.Open(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	svc := &LedgerService{Store: v.Ledger(), Session: auth.NewSession(v.Credentials())}
	_, err = svc.Add(ledger.Expense, 5, "coffee")
	require.ErrorIs(t, err, auth.ErrNoActiveSession)
}

func TestTotalsAndBalance(t *testing.T) {
	svc := testLedgerService(t)

	balance, err := svc.Balance()
	require.NoError(t, err)
	require.Zero(t, balance)

	_, err = svc.Add(ledger.Expense, 50, "grocery store")
	require.NoError(t, err)
	_, err = svc.Add(ledger.Income, 1000, "salary payment")
	require.NoError(t, err)
	_, err = svc.Add(ledger.Expense, 30, "uber ride")
	require.NoError(t, err)

	income, err := svc.TotalIncome()
	require.NoError(t, err)
	require.InDelta(t, 1000, income, 1e-9)

	expenses, err := svc.TotalExpenses()
	require.NoError(t, err)
	require.InDelta(t, 80, expenses, 1e-9)

	balance, err = svc.Balance()
	require.NoError(t, err)
	require.InDelta(t, 920, balance, 1e-9)
}

func TestAllPreservesInsertionOrder(t *testing.T) {
	svc := testLedgerService(t)
	for _, desc := range []string{"first", "second", "third"} {
		_, err := svc.Add(ledger.Income, 1, desc)
		require.NoError(t, err)
	}
	all, err := svc.All()
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "first", all[0].Description)
	require.Equal(t, "third", all[2].Description)
	require.Equal(t, []int{1, 2, 3}, []int{all[0].ID, all[1].ID, all[2].ID})
}

func TestAddSurfacesCorruptedLedger(t *testing.T) {
	svc := testLedgerService(t)
	_, err := svc.Add(ledger.Expense, 5, "coffee")
	require.NoError(t, err)

	// re-key the session without rewriting the ledger: reads now fail
	v, err := vault.Open(filepath.Join(t.TempDir(), "other"))
	require.NoError(t, err)
	other := auth.NewSession(v.Credentials())
	_, err = other.Setup("alice", "different", "different")
	require.NoError(t, err)
	svc.Session = other

	_, err = svc.Add(ledger.Expense, 5, "tea")
	require.True(t, errors.Is(err, vault.ErrCorruptedLedger))
}
