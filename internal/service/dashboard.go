package service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/paisawise/pw-mobile-go/internal/domain/finance"
	apperrors "github.com/paisawise/pw-mobile-go/internal/errors"
	"github.com/paisawise/pw-mobile-go/internal/ports"
)

// TokenSource supplies the current bearer token. The auth service satisfies
// it; data services never read persisted storage themselves.
type TokenSource interface {
	Token() string
}

// Dashboard is everything the home screen renders: raw arrays from the
// backend plus the client-side aggregates computed from them.
type Dashboard struct {
	Transactions []finance.Transaction
	Categories   []finance.Category
	CashFlow     finance.CashFlowSummary
	Monthly      []finance.MonthTotal
	ByCategory   []finance.CategoryTotal
}

// DashboardServiceOptions groups dependencies for DashboardService.
type DashboardServiceOptions struct {
	Transactions ports.TransactionAPI
	Categories   ports.CategoryAPI
	Analytics    ports.AnalyticsAPI
	Tokens       TokenSource
	Logger       *slog.Logger

	// TxnLimit caps how many transactions feed the breakdowns. Zero means 500.
	TxnLimit int
}

// DashboardService assembles the home screen data set.
type DashboardService struct {
	txns     ports.TransactionAPI
	cats     ports.CategoryAPI
	stats    ports.AnalyticsAPI
	tokens   TokenSource
	logger   *slog.Logger
	txnLimit int
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(opts DashboardServiceOptions) (*DashboardService, error) {
	if opts.Transactions == nil || opts.Categories == nil || opts.Analytics == nil {
		return nil, errors.New("transaction, category, and analytics APIs are required")
	}
	if opts.Tokens == nil {
		return nil, errors.New("token source is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	limit := opts.TxnLimit
	if limit <= 0 {
		limit = 500
	}
	return &DashboardService{
		txns:     opts.Transactions,
		cats:     opts.Categories,
		stats:    opts.Analytics,
		tokens:   opts.Tokens,
		logger:   logger,
		txnLimit: limit,
	}, nil
}

// Load fetches transactions, categories, and the backend cash-flow summary
// concurrently, then computes the monthly and per-category breakdowns
// client-side from the fetched arrays.
func (s *DashboardService) Load(ctx context.Context) (*Dashboard, error) {
	token := s.tokens.Token()
	if token == "" {
		return nil, apperrors.Unauthorized("not signed in")
	}

	var dash Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		txns, err := s.txns.ListTransactions(gctx, token, ports.TransactionQuery{Limit: s.txnLimit})
		if err != nil {
			return err
		}
		dash.Transactions = txns
		return nil
	})
	g.Go(func() error {
		cats, err := s.cats.ListCategories(gctx, token, "")
		if err != nil {
			return err
		}
		dash.Categories = cats
		return nil
	})
	g.Go(func() error {
		summary, err := s.stats.CashFlow(gctx, token, "month")
		if err != nil {
			return err
		}
		dash.CashFlow = summary
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	dash.Monthly = finance.MonthlyBreakdown(dash.Transactions)
	dash.ByCategory = finance.CategoryBreakdown(dash.Transactions)
	return &dash, nil
}
