package service

import (
	"sort"
	"time"

	"github.com/ashwin/ledgerpad/internal/ledger"
)

// MonthTotals is income and expense activity within one calendar month.
type MonthTotals struct {
	Month    time.Time // first day of the month
	Income   float64
	Expenses float64
}

func (m MonthTotals) Label() string {
	return m.Month.Format("Jan 06")
}

// MonthlyTotals buckets the ledger by calendar month of the stamped date,
// oldest first. Transactions whose date no longer parses are skipped; they
// can only come from hand-edited files.
func MonthlyTotals(txs []ledger.Transaction) []MonthTotals {
	byMonth := map[time.Time]*MonthTotals{}
	for _, t := range txs {
		d, err := ledger.ParseDate(t.Date)
		if err != nil {
			continue
		}
		key := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
		mt, ok := byMonth[key]
		if !ok {
			mt = &MonthTotals{Month: key}
			byMonth[key] = mt
		}
		switch t.Kind {
		case ledger.Income:
			mt.Income += t.Amount
		case ledger.Expense:
			mt.Expenses += t.Amount
		}
	}
	out := make([]MonthTotals, 0, len(byMonth))
	for _, mt := range byMonth {
		out = append(out, *mt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out
}

// DailyTotal is one day's summed expense amount.
type DailyTotal struct {
	Date  time.Time
	Value float64
}

// DailyExpenses returns dated expense totals for the trend chart, oldest
// first.
func DailyExpenses(txs []ledger.Transaction) []DailyTotal {
	byDay := map[time.Time]float64{}
	for _, t := range txs {
		if t.Kind != ledger.Expense {
			continue
		}
		d, err := ledger.ParseDate(t.Date)
		if err != nil {
			continue
		}
		byDay[d] += t.Amount
	}
	out := make([]DailyTotal, 0, len(byDay))
	for d, v := range byDay {
		out = append(out, DailyTotal{Date: d, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
