package service

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ashwin/ledgerpad/internal/ledger"
	"github.com/ashwin/ledgerpad/internal/vault"
)

// Budget is a category limit joined with spending derived from the current
// ledger. Spent is never persisted; it is recomputed on every read.
type Budget struct {
	Category string
	Limit    float64
	Spent    float64
}

// PercentUsed is spent over limit as a percentage, 0 when the limit is not
// positive.
func (b Budget) PercentUsed() float64 {
	if b.Limit <= 0 {
		return 0
	}
	return b.Spent / b.Limit * 100
}

func (b Budget) Remaining() float64 { return b.Limit - b.Spent }

func (b Budget) IsOverBudget() bool { return b.Spent > b.Limit }

// IsWarning is true in the 80%..100% band. Over-budget and warning are
// mutually exclusive.
func (b Budget) IsWarning() bool {
	return b.PercentUsed() >= 80 && !b.IsOverBudget()
}

// BudgetService manages per-category limits and derives spending from the
// ledger through the categorization rule table.
type BudgetService struct {
	Limits *vault.BudgetFile
	Ledger *LedgerService
	Rules  []Rule
}

func (s *BudgetService) rules() []Rule {
	if len(s.Rules) == 0 {
		return DefaultRules()
	}
	return s.Rules
}

// Categorize classifies a free-text description.
func (s *BudgetService) Categorize(description string) string {
	return CategorizeWith(s.rules(), description)
}

// AllBudgets joins the limit map with per-category expense totals, sorted by
// percent used, highest first.
func (s *BudgetService) AllBudgets() ([]Budget, error) {
	// a malformed limits file still yields usable defaults; pass the error
	// up alongside the budgets so the caller can warn
	limits, limitsErr := s.Limits.Load()
	txs, err := s.Ledger.All()
	if err != nil {
		return nil, err
	}
	spent := map[string]float64{}
	for _, t := range txs {
		if t.Kind != ledger.Expense {
			continue
		}
		spent[s.Categorize(t.Description)] += t.Amount
	}
	out := make([]Budget, 0, len(limits))
	for category, limit := range limits {
		out = append(out, Budget{Category: category, Limit: limit, Spent: spent[category]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PercentUsed() != out[j].PercentUsed() {
			return out[i].PercentUsed() > out[j].PercentUsed()
		}
		return out[i].Category < out[j].Category
	})
	return out, limitsErr
}

// Alerts returns one message per category that is over its limit or in the
// warning band.
func (s *BudgetService) Alerts() ([]string, error) {
	budgets, err := s.AllBudgets()
	if err != nil && !errors.Is(err, vault.ErrMalformedBudgets) {
		return nil, err
	}
	var alerts []string
	for _, b := range budgets {
		switch {
		case b.IsOverBudget():
			alerts = append(alerts, fmt.Sprintf("%s is OVER budget! ($%.0f / $%.0f)", b.Category, b.Spent, b.Limit))
		case b.IsWarning():
			alerts = append(alerts, fmt.Sprintf("%s is at %.0f%% of budget", b.Category, b.PercentUsed()))
		}
	}
	return alerts, err
}

// SetBudget creates or updates a category limit.
func (s *BudgetService) SetBudget(category string, limit float64) error {
	if category == "" {
		return &ledger.ValidationError{Field: "category", Reason: "must not be empty"}
	}
	if limit < 0 {
		return &ledger.ValidationError{Field: "limit", Reason: "must not be negative"}
	}
	// refuse to rewrite a malformed file; saving would clobber whatever the
	// user was editing
	limits, err := s.Limits.Load()
	if err != nil {
		return err
	}
	limits[category] = limit
	return s.Limits.Save(limits)
}

// DeleteBudget removes a category limit. Deleting an unknown category is an
// error so the caller can report it.
func (s *BudgetService) DeleteBudget(category string) error {
	limits, err := s.Limits.Load()
	if err != nil {
		return err
	}
	if _, ok := limits[category]; !ok {
		return &ledger.ValidationError{Field: "category", Reason: fmt.Sprintf("no budget for %q", category)}
	}
	delete(limits, category)
	return s.Limits.Save(limits)
}

// TotalBudget sums every configured limit.
func (s *BudgetService) TotalBudget() float64 {
	limits, _ := s.Limits.Load()
	total := 0.0
	for _, limit := range limits {
		total += limit
	}
	return total
}
