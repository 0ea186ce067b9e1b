package ports

import (
	"context"

	domainauth "github.com/paisawise/pw-mobile-go/internal/domain/auth"
	"github.com/paisawise/pw-mobile-go/internal/domain/finance"
)

// AuthBackend is the slice of the REST API the authentication lifecycle uses.
type AuthBackend interface {
	// ExchangeSession trades a short-lived session identifier for a durable
	// token and the user it belongs to. The identifier travels in a custom
	// header, not as a bearer credential: the exchange predates token issuance.
	ExchangeSession(ctx context.Context, sessionID string) (domainauth.User, domainauth.Session, error)

	// CurrentUser validates a stored token and returns the user behind it.
	CurrentUser(ctx context.Context, token string) (domainauth.User, error)

	// Logout invalidates the server-side session for the token.
	Logout(ctx context.Context, token string) error
}

// TransactionQuery narrows a transaction listing.
type TransactionQuery struct {
	// Type filters to income or expense when set.
	Type finance.TxnType
	// Limit caps the number of rows; zero means the backend default.
	Limit int
}

// TransactionAPI covers the transaction endpoints.
type TransactionAPI interface {
	ListTransactions(ctx context.Context, token string, q TransactionQuery) ([]finance.Transaction, error)
	GetTransaction(ctx context.Context, token, transactionID string) (finance.Transaction, error)
	CreateTransaction(ctx context.Context, token string, draft finance.TransactionDraft, requestID string) (finance.Transaction, error)
	UpdateTransaction(ctx context.Context, token, transactionID string, draft finance.TransactionDraft) (finance.Transaction, error)
	DeleteTransaction(ctx context.Context, token, transactionID string) error
}

// CategoryAPI covers the category endpoints.
type CategoryAPI interface {
	ListCategories(ctx context.Context, token string, typ finance.TxnType) ([]finance.Category, error)
	CreateCategory(ctx context.Context, token string, draft finance.CategoryDraft) (finance.Category, error)
}

// AnalyticsAPI covers the backend-computed analytics endpoints.
type AnalyticsAPI interface {
	// CashFlow returns the summary for "month" or "year".
	CashFlow(ctx context.Context, token, period string) (finance.CashFlowSummary, error)
	Insights(ctx context.Context, token string) (finance.Insight, error)
}

// ProfileAPI covers the coarse financial profile document.
type ProfileAPI interface {
	FetchProfile(ctx context.Context, token string) (finance.Profile, error)
	SaveProfile(ctx context.Context, token string, p finance.Profile) error
}

// OffersAPI returns raw partner feed entries. The feed is heterogeneous;
// callers project entries after selection.
type OffersAPI interface {
	ListOffers(ctx context.Context, token string) ([]map[string]any, error)
}

// Backend is the full REST surface the client consumes.
type Backend interface {
	AuthBackend
	TransactionAPI
	CategoryAPI
	AnalyticsAPI
	ProfileAPI
	OffersAPI
}
