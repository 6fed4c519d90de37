// Package ledger defines the transaction model shared by the vault and the
// services.
package ledger

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Kind is the transaction direction.
type Kind string

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// ParseKind validates a raw kind string at the boundary.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	}
	return "", &ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown kind %q", s)}
}

// DateLayout is the human-readable date format stored with each transaction,
// e.g. "15 Nov, 25". Assigned at creation time and never recomputed.
const DateLayout = "2 Jan, 06"

// Transaction is a single ledger entry. IDs start at 1 and are assigned
// max+1 by the ledger service; entries are never edited or deleted in place.
type Transaction struct {
	ID          int     `json:"id"`
	Kind        Kind    `json:"type"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

// ParseDate parses the stored date string. Dates written by other tools may
// not conform; callers decide how to treat unparseable entries.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse transaction date %q: %w", s, err)
	}
	return t, nil
}

// Stamp formats a time in the stored date format.
func Stamp(t time.Time) string {
	return t.Format(DateLayout)
}

// ValidationError reports rejected user input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks the invariants enforced when adding a transaction.
func Validate(kind Kind, amount float64, description string) error {
	if kind != Income && kind != Expense {
		return &ValidationError{Field: "kind", Reason: fmt.Sprintf("must be %q or %q", Income, Expense)}
	}
	if amount <= 0 {
		return &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	if strings.TrimSpace(description) == "" {
		return &ValidationError{Field: "description", Reason: "must not be empty"}
	}
	return nil
}

// File is the persisted ledger document shape.
type File struct {
	Transactions []Transaction `json:"transactions"`
}

// Marshal serializes the ledger document.
func (f File) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(f, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("marshal ledger: %w", err)
	}
	return data, nil
}

// UnmarshalFile parses a ledger document.
func UnmarshalFile(data []byte) (File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse ledger: %w", err)
	}
	return f, nil
}
