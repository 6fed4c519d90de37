// Package export writes the ledger out as CSV, a text report or a JSON
// document. Exports are point-in-time snapshots; every format carries the
// same transaction fields.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ashwin/ledgerpad/internal/ledger"
)

// Exporter writes ledger snapshots to a target directory with timestamped
// filenames.
type Exporter struct {
	Dir    string
	Logger *slog.Logger

	// now is swappable in tests; zero value means time.Now.
	now func() time.Time
}

func (e *Exporter) clock() time.Time {
	if e.now != nil {
		return e.now()
	}
	return time.Now()
}

func (e *Exporter) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

// WriteCSV writes transactions in RFC 4180 form with the fixed header
// ID,Date,Type,Amount,Description.
func WriteCSV(w io.Writer, txs []ledger.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Date", "Type", "Amount", "Description"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range txs {
		rec := []string{
			strconv.Itoa(t.ID),
			t.Date,
			string(t.Kind),
			strconv.FormatFloat(t.Amount, 'f', 2, 64),
			t.Description,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv record %d: %w", t.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteText writes a human-readable report with per-row details and summary
// totals.
func WriteText(w io.Writer, txs []ledger.Transaction) error {
	var income, expenses float64
	fmt.Fprintln(w, "TRANSACTION REPORT")
	fmt.Fprintln(w, "==================")
	fmt.Fprintln(w)
	for _, t := range txs {
		fmt.Fprintf(w, "#%-4d %-12s %-8s %10.2f  %s\n", t.ID, t.Date, t.Kind, t.Amount, t.Description)
		switch t.Kind {
		case ledger.Income:
			income += t.Amount
		case ledger.Expense:
			expenses += t.Amount
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total transactions: %d\n", len(txs))
	fmt.Fprintf(w, "Total income:   %10.2f\n", income)
	fmt.Fprintf(w, "Total expenses: %10.2f\n", expenses)
	fmt.Fprintf(w, "Balance:        %10.2f\n", income-expenses)
	return nil
}

type jsonDoc struct {
	ExportedAt        string               `json:"exported_at"`
	TotalTransactions int                  `json:"total_transactions"`
	Transactions      []ledger.Transaction `json:"transactions"`
}

// WriteJSON writes the export document with an RFC 3339 timestamp.
func WriteJSON(w io.Writer, txs []ledger.Transaction, exportedAt time.Time) error {
	doc := jsonDoc{
		ExportedAt:        exportedAt.Format(time.RFC3339),
		TotalTransactions: len(txs),
		Transactions:      txs,
	}
	if doc.Transactions == nil {
		doc.Transactions = []ledger.Transaction{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode export json: %w", err)
	}
	return nil
}

// Format selects an export output format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatText Format = "txt"
	FormatJSON Format = "json"
)

// Export writes a snapshot in the given format and returns the file path.
func (e *Exporter) Export(format Format, txs []ledger.Transaction) (string, error) {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	now := e.clock()
	name := fmt.Sprintf("transactions_%s.%s", now.Format("20060102_150405"), format)
	path := filepath.Join(e.Dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	switch format {
	case FormatCSV:
		err = WriteCSV(f, txs)
	case FormatText:
		err = WriteText(f, txs)
	case FormatJSON:
		err = WriteJSON(f, txs, now)
	default:
		err = fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return "", err
	}
	e.logger().Info("exported transactions", "format", string(format), "count", len(txs), "path", path)
	return path, nil
}
