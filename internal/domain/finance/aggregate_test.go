package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func sampleTxns() []Transaction {
	return []Transaction{
		{Amount: 50000, Type: TxnIncome, Category: "Salary", Date: day(2025, time.June, 1)},
		{Amount: 12000, Type: TxnExpense, Category: "Rent", Date: day(2025, time.June, 2)},
		{Amount: 4500, Type: TxnExpense, Category: "Food", Date: day(2025, time.June, 10)},
		{Amount: 50000, Type: TxnIncome, Category: "Salary", Date: day(2025, time.July, 1)},
		{Amount: 12000, Type: TxnExpense, Category: "Rent", Date: day(2025, time.July, 2)},
		{Amount: 3000, Type: TxnExpense, Category: "Travel", Date: day(2025, time.July, 15)},
		{Amount: 3000, Type: TxnExpense, Category: "Food", Date: day(2025, time.July, 20)},
	}
}

func TestMonthlyBreakdown(t *testing.T) {
	out := MonthlyBreakdown(sampleTxns())

	require.Len(t, out, 2)
	assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), out[0].Month)
	assert.Equal(t, 50000.0, out[0].Income)
	assert.Equal(t, 16500.0, out[0].Expenses)
	assert.Equal(t, 33500.0, out[0].Net())

	assert.Equal(t, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), out[1].Month)
	assert.Equal(t, 18000.0, out[1].Expenses)
}

func TestMonthlyBreakdown_NormalizesTimezones(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	// 03:00 IST on July 1 is still June 30 in UTC.
	txns := []Transaction{
		{Amount: 100, Type: TxnExpense, Category: "Food", Date: time.Date(2025, time.July, 1, 3, 0, 0, 0, ist)},
	}

	out := MonthlyBreakdown(txns)

	require.Len(t, out, 1)
	assert.Equal(t, time.June, out[0].Month.Month())
}

func TestMonthlyBreakdown_Empty(t *testing.T) {
	assert.Empty(t, MonthlyBreakdown(nil))
}

func TestCategoryBreakdown(t *testing.T) {
	out := CategoryBreakdown(sampleTxns())

	require.Len(t, out, 3)
	assert.Equal(t, CategoryTotal{Name: "Rent", Amount: 24000}, out[0])
	assert.Equal(t, CategoryTotal{Name: "Food", Amount: 7500}, out[1])
	assert.Equal(t, CategoryTotal{Name: "Travel", Amount: 3000}, out[2])
}

func TestCategoryBreakdown_TiesSortByName(t *testing.T) {
	txns := []Transaction{
		{Amount: 10, Type: TxnExpense, Category: "Zoo"},
		{Amount: 10, Type: TxnExpense, Category: "Art"},
	}

	out := CategoryBreakdown(txns)

	require.Len(t, out, 2)
	assert.Equal(t, "Art", out[0].Name)
	assert.Equal(t, "Zoo", out[1].Name)
}

func TestCategoryBreakdown_IgnoresIncome(t *testing.T) {
	txns := []Transaction{
		{Amount: 1000, Type: TxnIncome, Category: "Salary"},
	}
	assert.Empty(t, CategoryBreakdown(txns))
}

func TestSummarize(t *testing.T) {
	sum := Summarize(sampleTxns())

	assert.Equal(t, 100000.0, sum.TotalIncome)
	assert.Equal(t, 34500.0, sum.TotalExpenses)
	assert.Equal(t, 65500.0, sum.Savings)
	assert.InDelta(t, 65.5, sum.SavingsRate, 1e-9)
	require.NotEmpty(t, sum.TopCategories)
	assert.Equal(t, "Rent", sum.TopCategories[0].Name)
}

func TestSummarize_NoIncome(t *testing.T) {
	sum := Summarize([]Transaction{
		{Amount: 100, Type: TxnExpense, Category: "Food"},
	})

	assert.Equal(t, 0.0, sum.TotalIncome)
	assert.Equal(t, -100.0, sum.Savings)
	assert.Equal(t, 0.0, sum.SavingsRate, "rate is zero without income, not negative infinity")
}

func TestSummarize_TopCategoriesCapped(t *testing.T) {
	txns := make([]Transaction, 0, 7)
	for _, c := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		txns = append(txns, Transaction{Amount: 10, Type: TxnExpense, Category: c})
	}

	sum := Summarize(txns)
	assert.Len(t, sum.TopCategories, 5)
}
