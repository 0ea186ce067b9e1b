package backend

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/paisawise/pw-mobile-go/internal/domain/finance"
	"github.com/paisawise/pw-mobile-go/internal/ports"
)

// ListTransactions fetches the user's transactions, newest first.
func (c *Client) ListTransactions(ctx context.Context, token string, q ports.TransactionQuery) ([]finance.Transaction, error) {
	query := url.Values{}
	if q.Type != "" {
		query.Set("type", string(q.Type))
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}

	var txns []finance.Transaction
	err := c.doRequest(ctx, request{
		method: http.MethodGet,
		path:   "/api/transactions",
		query:  query,
		token:  token,
	}, &txns)
	return txns, err
}

// GetTransaction fetches a single transaction by id.
func (c *Client) GetTransaction(ctx context.Context, token, transactionID string) (finance.Transaction, error) {
	if transactionID == "" {
		return finance.Transaction{}, errors.New("transaction ID is required")
	}
	var txn finance.Transaction
	err := c.doRequest(ctx, request{
		method: http.MethodGet,
		path:   "/api/transactions/" + url.PathEscape(transactionID),
		token:  token,
	}, &txn)
	return txn, err
}

// CreateTransaction records a transaction. requestID deduplicates retried
// submissions on the backend side.
func (c *Client) CreateTransaction(ctx context.Context, token string, draft finance.TransactionDraft, requestID string) (finance.Transaction, error) {
	var header http.Header
	if requestID != "" {
		header = http.Header{}
		header.Set(headerRequestID, requestID)
	}

	var txn finance.Transaction
	err := c.doRequest(ctx, request{
		method: http.MethodPost,
		path:   "/api/transactions",
		header: header,
		token:  token,
		body:   draft,
	}, &txn)
	return txn, err
}

// UpdateTransaction replaces a transaction's draft fields.
func (c *Client) UpdateTransaction(ctx context.Context, token, transactionID string, draft finance.TransactionDraft) (finance.Transaction, error) {
	if transactionID == "" {
		return finance.Transaction{}, errors.New("transaction ID is required")
	}
	var txn finance.Transaction
	err := c.doRequest(ctx, request{
		method: http.MethodPut,
		path:   "/api/transactions/" + url.PathEscape(transactionID),
		token:  token,
		body:   draft,
	}, &txn)
	return txn, err
}

// DeleteTransaction removes a transaction by id.
func (c *Client) DeleteTransaction(ctx context.Context, token, transactionID string) error {
	if transactionID == "" {
		return errors.New("transaction ID is required")
	}
	return c.doRequest(ctx, request{
		method: http.MethodDelete,
		path:   "/api/transactions/" + url.PathEscape(transactionID),
		token:  token,
	}, nil)
}

// ListCategories fetches the user's categories, optionally filtered by type.
func (c *Client) ListCategories(ctx context.Context, token string, typ finance.TxnType) ([]finance.Category, error) {
	query := url.Values{}
	if typ != "" {
		query.Set("type", string(typ))
	}

	var cats []finance.Category
	err := c.doRequest(ctx, request{
		method: http.MethodGet,
		path:   "/api/categories",
		query:  query,
		token:  token,
	}, &cats)
	return cats, err
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, token string, draft finance.CategoryDraft) (finance.Category, error) {
	var cat finance.Category
	err := c.doRequest(ctx, request{
		method: http.MethodPost,
		path:   "/api/categories",
		token:  token,
		body:   draft,
	}, &cat)
	return cat, err
}

// CashFlow returns the backend-computed summary for "month" or "year".
func (c *Client) CashFlow(ctx context.Context, token, period string) (finance.CashFlowSummary, error) {
	query := url.Values{}
	if period != "" {
		query.Set("period", period)
	}

	var summary finance.CashFlowSummary
	err := c.doRequest(ctx, request{
		method: http.MethodGet,
		path:   "/api/analytics/cash-flow",
		query:  query,
		token:  token,
	}, &summary)
	return summary, err
}

// Insights returns the generated spending insight.
func (c *Client) Insights(ctx context.Context, token string) (finance.Insight, error) {
	var insight finance.Insight
	err := c.doRequest(ctx, request{
		method: http.MethodGet,
		path:   "/api/analytics/insights",
		token:  token,
	}, &insight)
	return insight, err
}

// FetchProfile loads the coarse financial profile document.
func (c *Client) FetchProfile(ctx context.Context, token string) (finance.Profile, error) {
	var p finance.Profile
	err := c.doRequest(ctx, request{
		method: http.MethodGet,
		path:   "/api/profile",
		token:  token,
	}, &p)
	return p, err
}

// SaveProfile uploads the coarse financial profile document.
func (c *Client) SaveProfile(ctx context.Context, token string, p finance.Profile) error {
	return c.doRequest(ctx, request{
		method: http.MethodPost,
		path:   "/api/profile",
		token:  token,
		body:   p,
	}, nil)
}

// ListOffers fetches the raw partner offers feed.
func (c *Client) ListOffers(ctx context.Context, token string) ([]map[string]any, error) {
	var offers []map[string]any
	err := c.doRequest(ctx, request{
		method: http.MethodGet,
		path:   "/api/offers",
		token:  token,
	}, &offers)
	return offers, err
}
