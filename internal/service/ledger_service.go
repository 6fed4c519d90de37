// Package service holds the application services over the vault: ledger
// aggregation, budgets and search. Services hold their collaborators as
// fields and re-read the store on every call; nothing decrypted is cached.
package service

import (
	"fmt"
	"time"

	"github.com/ashwin/ledgerpad/internal/auth"
	"github.com/ashwin/ledgerpad/internal/ledger"
	"github.com/ashwin/ledgerpad/internal/vault"
)

// LedgerService validates, numbers and aggregates transactions.
type LedgerService struct {
	Store   *vault.LedgerStore
	Session *auth.Session

	// now is swappable in tests; zero value means time.Now.
	now func() time.Time
}

func (s *LedgerService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// Add validates the input, assigns the next id (max of existing ids plus
// one, starting at 1), stamps the current date and rewrites the ledger.
func (s *LedgerService) Add(kind ledger.Kind, amount float64, description string) (ledger.Transaction, error) {
	if err := ledger.Validate(kind, amount, description); err != nil {
		return ledger.Transaction{}, err
	}
	key, err := s.Session.Passphrase()
	if err != nil {
		return ledger.Transaction{}, err
	}
	txs, err := s.Store.ReadAll(key)
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("load ledger before add: %w", err)
	}
	tx := ledger.Transaction{
		ID:          nextID(txs),
		Kind:        kind,
		Amount:      amount,
		Description: description,
		Date:        ledger.Stamp(s.clock()),
	}
	txs = append(txs, tx)
	if err := s.Store.WriteAll(txs, key); err != nil {
		return ledger.Transaction{}, err
	}
	return tx, nil
}

func nextID(txs []ledger.Transaction) int {
	maxID := 0
	for _, t := range txs {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	return maxID + 1
}

// All returns every transaction in insertion order.
func (s *LedgerService) All() ([]ledger.Transaction, error) {
	key, err := s.Session.Passphrase()
	if err != nil {
		return nil, err
	}
	return s.Store.ReadAll(key)
}

// TotalIncome sums all income transactions.
func (s *LedgerService) TotalIncome() (float64, error) {
	return s.sumKind(ledger.Income)
}

// TotalExpenses sums all expense transactions.
func (s *LedgerService) TotalExpenses() (float64, error) {
	return s.sumKind(ledger.Expense)
}

// Balance is income minus expenses.
func (s *LedgerService) Balance() (float64, error) {
	income, err := s.TotalIncome()
	if err != nil {
		return 0, err
	}
	expenses, err := s.TotalExpenses()
	if err != nil {
		return 0, err
	}
	return income - expenses, nil
}

func (s *LedgerService) sumKind(kind ledger.Kind) (float64, error) {
	txs, err := s.All()
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, t := range txs {
		if t.Kind == kind {
			total += t.Amount
		}
	}
	return total, nil
}
