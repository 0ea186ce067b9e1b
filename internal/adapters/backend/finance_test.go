package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paisawise/pw-mobile-go/internal/domain/finance"
	"github.com/paisawise/pw-mobile-go/internal/ports"
)

func TestClient_ListTransactions(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/transactions", r.URL.Path)
		assert.Equal(t, "expense", r.URL.Query().Get("type"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`[
			{"transaction_id":"t1","amount":250.5,"category":"Food","type":"expense","date":"2025-06-10T12:00:00Z"},
			{"transaction_id":"t2","amount":1200,"category":"Rent","type":"expense","date":"2025-06-01T09:00:00Z"}
		]`))
	}))

	txns, err := client.ListTransactions(context.Background(), "tok-1", ports.TransactionQuery{
		Type:  finance.TxnExpense,
		Limit: 10,
	})

	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "t1", txns[0].ID)
	assert.Equal(t, 250.5, txns[0].Amount)
	assert.Equal(t, finance.TxnExpense, txns[0].Type)
}

func TestClient_ListTransactions_NoFilters(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte(`[]`))
	}))

	txns, err := client.ListTransactions(context.Background(), "tok-1", ports.TransactionQuery{})
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestClient_CreateTransaction(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "req-1", r.Header.Get("X-Request-ID"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var draft finance.TransactionDraft
		require.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
		assert.Equal(t, 99.0, draft.Amount)
		assert.Equal(t, "Food", draft.Category)

		_, _ = w.Write([]byte(`{"transaction_id":"t9","amount":99,"category":"Food","type":"expense","date":"2025-06-10T12:00:00Z"}`))
	}))

	txn, err := client.CreateTransaction(context.Background(), "tok-1", finance.TransactionDraft{
		Amount:   99,
		Category: "Food",
		Type:     finance.TxnExpense,
	}, "req-1")

	require.NoError(t, err)
	assert.Equal(t, "t9", txn.ID)
}

func TestClient_GetTransaction(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/transactions/t1", r.URL.Path)
		_, _ = w.Write([]byte(`{"transaction_id":"t1","amount":42,"category":"Food","type":"expense","date":"2025-06-10T12:00:00Z"}`))
	}))

	txn, err := client.GetTransaction(context.Background(), "tok-1", "t1")

	require.NoError(t, err)
	assert.Equal(t, "t1", txn.ID)
	assert.Equal(t, 42.0, txn.Amount)

	_, err = client.GetTransaction(context.Background(), "tok-1", "")
	require.Error(t, err)
}

func TestClient_UpdateTransaction(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/transactions/t1", r.URL.Path)

		var draft finance.TransactionDraft
		require.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
		assert.Equal(t, 120.0, draft.Amount)

		_, _ = w.Write([]byte(`{"transaction_id":"t1","amount":120,"category":"Food","type":"expense","date":"2025-06-10T12:00:00Z"}`))
	}))

	txn, err := client.UpdateTransaction(context.Background(), "tok-1", "t1", finance.TransactionDraft{
		Amount:   120,
		Category: "Food",
		Type:     finance.TxnExpense,
	})

	require.NoError(t, err)
	assert.Equal(t, 120.0, txn.Amount)

	_, err = client.UpdateTransaction(context.Background(), "tok-1", "", finance.TransactionDraft{})
	require.Error(t, err)
}

func TestClient_DeleteTransaction(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/transactions/t1", r.URL.Path)
		_, _ = w.Write([]byte(`{"message":"deleted"}`))
	}))

	require.NoError(t, client.DeleteTransaction(context.Background(), "tok-1", "t1"))

	err := client.DeleteTransaction(context.Background(), "tok-1", "")
	require.Error(t, err)
}

func TestClient_ListCategories(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/categories", r.URL.Path)
		assert.Equal(t, "income", r.URL.Query().Get("type"))
		_, _ = w.Write([]byte(`[{"category_id":"c1","name":"Salary","type":"income"}]`))
	}))

	cats, err := client.ListCategories(context.Background(), "tok-1", finance.TxnIncome)

	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Salary", cats[0].Name)
}

func TestClient_CashFlow(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/analytics/cash-flow", r.URL.Path)
		assert.Equal(t, "month", r.URL.Query().Get("period"))

		_, _ = w.Write([]byte(`{
			"total_income": 50000,
			"total_expenses": 16500,
			"savings": 33500,
			"savings_rate": 67,
			"top_categories": [{"name":"Rent","amount":12000}]
		}`))
	}))

	sum, err := client.CashFlow(context.Background(), "tok-1", "month")

	require.NoError(t, err)
	assert.Equal(t, 50000.0, sum.TotalIncome)
	assert.Equal(t, 67.0, sum.SavingsRate)
	require.Len(t, sum.TopCategories, 1)
	assert.Equal(t, "Rent", sum.TopCategories[0].Name)
}

func TestClient_Insights(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/analytics/insights", r.URL.Path)
		_, _ = w.Write([]byte(`{"insight":"Your biggest expense is Rent."}`))
	}))

	insight, err := client.Insights(context.Background(), "tok-1")

	require.NoError(t, err)
	assert.Equal(t, "Your biggest expense is Rent.", insight.Text)
}

func TestClient_ProfileRoundTrip(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/profile", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"monthly_salary":80000,"loans":[{"name":"Home","principal":3000000,"outstanding":2400000}]}`))
		case http.MethodPost:
			var p finance.Profile
			require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
			assert.Equal(t, 90000.0, p.MonthlySalary)
			_, _ = w.Write([]byte(`{"message":"saved"}`))
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))

	p, err := client.FetchProfile(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, 80000.0, p.MonthlySalary)
	assert.Equal(t, 2400000.0, p.TotalOutstandingDebt())

	require.NoError(t, client.SaveProfile(context.Background(), "tok-1", finance.Profile{MonthlySalary: 90000}))
}

func TestClient_ListOffers(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/offers", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"o1","title":"5% cashback","partner":"BankCo"}]`))
	}))

	offers, err := client.ListOffers(context.Background(), "tok-1")

	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "5% cashback", offers[0]["title"])
}
