package vault

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrMalformedBudgets reports a budgets file that exists but cannot be
// parsed. Load still returns the defaults so the caller can proceed, but it
// should warn instead of silently shadowing a hand-edited file.
var ErrMalformedBudgets = errors.New("vault: malformed budgets file")

// BudgetFile persists per-category spending limits as plain JSON:
// {"budgets": {"Food": 400, ...}}. Unlike the ledger it is not encoded;
// limits are not sensitive and keeping the file editable was a feature of
// the original format.
type BudgetFile struct {
	path string
}

type budgetDoc struct {
	Budgets map[string]float64 `json:"budgets"`
}

// DefaultLimits is the built-in budget map used when no file exists.
func DefaultLimits() map[string]float64 {
	return map[string]float64{
		"Food":          400,
		"Transport":     200,
		"Housing":       1500,
		"Utilities":     150,
		"Shopping":      300,
		"Entertainment": 200,
		"Health":        100,
		"Other":         500,
	}
}

// Load returns the persisted limit map. A missing file is the normal first
// run and yields the defaults with no error; a present but unparseable file
// yields the defaults together with ErrMalformedBudgets.
func (b *BudgetFile) Load() (map[string]float64, error) {
	raw, err := os.ReadFile(b.path)
	if err != nil {
		return DefaultLimits(), nil
	}
	var doc budgetDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return DefaultLimits(), fmt.Errorf("%w: %v", ErrMalformedBudgets, err)
	}
	if doc.Budgets == nil {
		return DefaultLimits(), fmt.Errorf("%w: no budgets table", ErrMalformedBudgets)
	}
	return doc.Budgets, nil
}

// Save writes the limit map, replacing the file.
func (b *BudgetFile) Save(limits map[string]float64) error {
	data, err := json.MarshalIndent(budgetDoc{Budgets: limits}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal budgets: %w", err)
	}
	return writeAtomic(b.path, data, 0o644)
}
