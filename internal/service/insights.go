package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/paisawise/pw-mobile-go/internal/domain/finance"
	apperrors "github.com/paisawise/pw-mobile-go/internal/errors"
	"github.com/paisawise/pw-mobile-go/internal/ports"
)

// InsightServiceOptions groups dependencies for InsightService.
type InsightServiceOptions struct {
	Analytics    ports.AnalyticsAPI
	Transactions ports.TransactionAPI
	Tokens       TokenSource
	Logger       *slog.Logger

	// Now overrides the clock (tests).
	Now func() time.Time
}

// InsightService surfaces the generated spending insight, falling back to a
// local rule-based one when the backend generator is unavailable.
type InsightService struct {
	stats  ports.AnalyticsAPI
	txns   ports.TransactionAPI
	tokens TokenSource
	logger *slog.Logger
	now    func() time.Time
}

// NewInsightService constructs an InsightService.
func NewInsightService(opts InsightServiceOptions) (*InsightService, error) {
	if opts.Analytics == nil || opts.Transactions == nil {
		return nil, errors.New("analytics and transaction APIs are required")
	}
	if opts.Tokens == nil {
		return nil, errors.New("token source is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &InsightService{
		stats:  opts.Analytics,
		txns:   opts.Transactions,
		tokens: opts.Tokens,
		logger: logger,
		now:    now,
	}, nil
}

// Current returns this month's insight. A backend failure degrades to the
// local rule-based fallback instead of an empty screen.
func (s *InsightService) Current(ctx context.Context) (finance.Insight, error) {
	token := s.tokens.Token()
	if token == "" {
		return finance.Insight{}, apperrors.Unauthorized("not signed in")
	}

	insight, err := s.stats.Insights(ctx, token)
	if err == nil {
		return insight, nil
	}
	if apperrors.IsUnauthorized(err) {
		return finance.Insight{}, err
	}
	s.logger.InfoContext(ctx, "insight generation unavailable, using local fallback", "error", err)

	txns, lerr := s.txns.ListTransactions(ctx, token, ports.TransactionQuery{Limit: 500})
	if lerr != nil {
		return finance.Insight{}, lerr
	}
	return s.fallback(txns), nil
}

// fallback mirrors the backend's rule-based insight: savings-rate thresholds
// first, then the dominant expense category.
func (s *InsightService) fallback(txns []finance.Transaction) finance.Insight {
	generated := s.now().UTC()
	if len(txns) == 0 {
		return finance.Insight{
			Text:        "Start tracking your expenses to get personalized insights!",
			GeneratedAt: generated,
		}
	}

	summary := finance.Summarize(txns)
	var text string
	switch {
	case summary.SavingsRate < 10:
		text = fmt.Sprintf("Your savings rate is %.1f%%. Try to save at least 20%% of your income for a healthy financial future.", summary.SavingsRate)
	case summary.SavingsRate > 30:
		text = fmt.Sprintf("Excellent! You're saving %.1f%% of your income. Consider investing this surplus for long-term growth.", summary.SavingsRate)
	case len(summary.TopCategories) > 0:
		top := summary.TopCategories[0]
		text = fmt.Sprintf("You're spending ₹%.2f on %s this month. Look for ways to optimize this category.", top.Amount, top.Name)
	default:
		text = "Keep recording income and expenses to sharpen your insights."
	}
	return finance.Insight{Text: text, GeneratedAt: generated}
}
