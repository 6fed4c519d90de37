package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ashwin/ledgerpad/internal/ledger"
)

func testSearchService(t *testing.T) *SearchService {
	t.Helper()
	env := newTestEnv(t)
	seed := []struct {
		kind ledger.Kind
		amt  float64
		desc string
	}{
		{ledger.Expense, 50, "grocery store"},
		{ledger.Income, 1000, "salary payment"},
		{ledger.Expense, 30, "uber ride"},
		{ledger.Expense, 12, "coffee downtown"},
	}
	for _, s := range seed {
		_, err := env.Ledger.Add(s.kind, s.amt, s.desc)
		require.NoError(t, err)
	}
	return &SearchService{Ledger: env.Ledger}
}

func TestSearchSubstring(t *testing.T) {
	svc := testSearchService(t)
	res, err := svc.Search("uber", SearchFilter{})
	require.NoError(t, err)
	require.Len(t, res, 1)
	require.Equal(t, "uber ride", res[0].Transaction.Description)
	require.Equal(t, 1.0, res[0].Score)
}

func TestSearchFuzzyTypo(t *testing.T) {
	svc := testSearchService(t)
	res, err := svc.Search("ubr", SearchFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, res)
	require.Equal(t, "uber ride", res[0].Transaction.Description)
	require.Less(t, res[0].Score, 1.0)
}

func TestSearchFilterByKind(t *testing.T) {
	svc := testSearchService(t)
	res, err := svc.Search("", SearchFilter{Kind: ledger.Expense})
	require.NoError(t, err)
	require.Len(t, res, 3)
	for _, r := range res {
		require.Equal(t, ledger.Expense, r.Transaction.Kind)
	}
}

func TestSearchFilterByCategory(t *testing.T) {
	svc := testSearchService(t)
	res, err := svc.Search("", SearchFilter{Category: "Food"})
	require.NoError(t, err)
	require.Len(t, res, 2) // grocery store, coffee downtown
	for _, r := range res {
		require.Equal(t, "Food", CategorizeWith(DefaultRules(), r.Transaction.Description))
	}
}

func TestSearchNoMatch(t *testing.T) {
	svc := testSearchService(t)
	res, err := svc.Search("zzzzzzzzzz", SearchFilter{})
	require.NoError(t, err)
	require.Empty(t, res)
}
