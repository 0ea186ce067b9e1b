package finance

import (
	"sort"
	"time"
)

// MonthTotal is a month bucket with income and expense sums.
type MonthTotal struct {
	// Month is the first instant of the month in UTC.
	Month    time.Time `json:"month"`
	Income   float64   `json:"income"`
	Expenses float64   `json:"expenses"`
}

// Net returns income minus expenses for the month.
func (m MonthTotal) Net() float64 { return m.Income - m.Expenses }

// MonthlyBreakdown buckets transactions by calendar month (UTC), oldest
// first. Screens render this directly; the backend only ships raw arrays.
func MonthlyBreakdown(txns []Transaction) []MonthTotal {
	buckets := make(map[time.Time]*MonthTotal)
	for _, t := range txns {
		d := t.Date.UTC()
		key := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
		b := buckets[key]
		if b == nil {
			b = &MonthTotal{Month: key}
			buckets[key] = b
		}
		switch t.Type {
		case TxnIncome:
			b.Income += t.Amount
		case TxnExpense:
			b.Expenses += t.Amount
		}
	}

	out := make([]MonthTotal, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out
}

// CategoryBreakdown sums expense transactions per category, largest first.
func CategoryBreakdown(txns []Transaction) []CategoryTotal {
	totals := make(map[string]float64)
	for _, t := range txns {
		if t.Type == TxnExpense {
			totals[t.Category] += t.Amount
		}
	}

	out := make([]CategoryTotal, 0, len(totals))
	for name, amount := range totals {
		out = append(out, CategoryTotal{Name: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Summarize computes the cash-flow summary for a transaction set using the
// same math as the backend analytics endpoint: savings rate is a percentage
// of income, zero when there is no income, and the top five expense
// categories ride along.
func Summarize(txns []Transaction) CashFlowSummary {
	var income, expenses float64
	for _, t := range txns {
		switch t.Type {
		case TxnIncome:
			income += t.Amount
		case TxnExpense:
			expenses += t.Amount
		}
	}

	savings := income - expenses
	var rate float64
	if income > 0 {
		rate = savings / income * 100
	}

	top := CategoryBreakdown(txns)
	if len(top) > 5 {
		top = top[:5]
	}

	return CashFlowSummary{
		TotalIncome:   income,
		TotalExpenses: expenses,
		Savings:       savings,
		SavingsRate:   rate,
		TopCategories: top,
	}
}
