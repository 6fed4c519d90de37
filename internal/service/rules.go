package service

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Rule maps description keywords to a category. Rules are evaluated in
// order; the first keyword hit wins, so table order is part of the contract.
type Rule struct {
	Category string   `toml:"category"`
	Keywords []string `toml:"keywords"`
}

// FallbackCategory is used when no rule matches.
const FallbackCategory = "Other"

// DefaultRules is the built-in categorization table. Order matters:
// "grocery run and gas" is Food, not Transport, because the Food rule comes
// first.
func DefaultRules() []Rule {
	return []Rule{
		{Category: "Food", Keywords: []string{"food", "restaurant", "grocery", "cafe", "dining", "meal", "lunch", "dinner", "breakfast", "coffee", "pizza", "donut"}},
		{Category: "Transport", Keywords: []string{"transport", "uber", "lyft", "taxi", "gas", "fuel", "bus", "train", "metro", "car"}},
		{Category: "Housing", Keywords: []string{"rent", "housing", "mortgage", "apartment"}},
		{Category: "Utilities", Keywords: []string{"utility", "electric", "water", "internet", "phone", "power", "bill"}},
		{Category: "Shopping", Keywords: []string{"shop", "amazon", "store", "mall", "clothes", "buy"}},
		{Category: "Entertainment", Keywords: []string{"entertainment", "movie", "game", "netflix", "spotify", "subscription", "concert"}},
		{Category: "Health", Keywords: []string{"health", "doctor", "medicine", "pharmacy", "hospital", "gym"}},
	}
}

type rulesFile struct {
	Rule []Rule `toml:"rule"`
}

// LoadRules reads an ordered [[rule]] table from a TOML file. A missing file
// returns the built-in table; a present but invalid file is an error rather
// than a silent fallback.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultRules(), nil
		}
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	var rf rulesFile
	if err := toml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", path, err)
	}
	if len(rf.Rule) == 0 {
		return nil, fmt.Errorf("rules file %s defines no rules", path)
	}
	for i, r := range rf.Rule {
		if strings.TrimSpace(r.Category) == "" {
			return nil, fmt.Errorf("rules file %s: rule[%d] has no category", path, i)
		}
		if len(r.Keywords) == 0 {
			return nil, fmt.Errorf("rules file %s: rule %q has no keywords", path, r.Category)
		}
	}
	return rf.Rule, nil
}

// CategorizeWith returns the first matching category for a description, or
// FallbackCategory. Matching is case-insensitive substring search.
func CategorizeWith(rules []Rule, description string) string {
	desc := strings.ToLower(description)
	for _, r := range rules {
		for _, kw := range r.Keywords {
			if strings.Contains(desc, kw) {
				return r.Category
			}
		}
	}
	return FallbackCategory
}
