// Package client contains simple hand-written test doubles for the client
// ports. These are lightweight and suitable for unit tests without codegen.
package client

import (
	"context"
	"sync"

	domainauth "github.com/paisawise/pw-mobile-go/internal/domain/auth"
	"github.com/paisawise/pw-mobile-go/internal/domain/finance"
	"github.com/paisawise/pw-mobile-go/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.TokenStore     = (*MemoryTokenStore)(nil)
	_ ports.LoginProvider  = (*MockLoginProvider)(nil)
	_ ports.Backend        = (*MockBackend)(nil)
	_ ports.RedirectSource = (*StaticRedirectSource)(nil)
	_ ports.Navigator      = (*RecordingNavigator)(nil)
)

// MemoryTokenStore is an in-memory TokenStore with optional error injection.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string

	LoadErr   error
	SaveErr   error
	DeleteErr error

	// Counters for asserting side effects.
	Loads, Saves, Deletes int
}

// NewMemoryTokenStore creates a store optionally seeded with a token.
func NewMemoryTokenStore(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

func (m *MemoryTokenStore) Load(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Loads++
	if m.LoadErr != nil {
		return "", m.LoadErr
	}
	if m.token == "" {
		return "", ports.ErrNoToken
	}
	return m.token, nil
}

func (m *MemoryTokenStore) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.token = token
	return nil
}

func (m *MemoryTokenStore) Delete(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deletes++
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.token = ""
	return nil
}

// Token returns the currently stored token.
func (m *MemoryTokenStore) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// MockLoginProvider simulates a login provider. The zero value behaves like
// the hosted provider: Begin returns a fixed page URL and Complete extracts
// the session_id marker.
type MockLoginProvider struct {
	BeginFunc    func(ctx context.Context, in ports.BeginInput) (string, error)
	CompleteFunc func(ctx context.Context, redirectURL string) (string, bool, error)
}

func (m *MockLoginProvider) Begin(ctx context.Context, in ports.BeginInput) (string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}
	return "https://mock-idp/login?redirect=" + in.CallbackURL, nil
}

func (m *MockLoginProvider) Complete(ctx context.Context, redirectURL string) (string, bool, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, redirectURL)
	}
	id, ok := domainauth.ExtractSessionID(redirectURL)
	return id, ok, nil
}

// MockBackend is a func-field double for the full backend surface.
// Unset fields return zero values.
type MockBackend struct {
	ExchangeSessionFunc   func(ctx context.Context, sessionID string) (domainauth.User, domainauth.Session, error)
	CurrentUserFunc       func(ctx context.Context, token string) (domainauth.User, error)
	LogoutFunc            func(ctx context.Context, token string) error
	ListTransactionsFunc  func(ctx context.Context, token string, q ports.TransactionQuery) ([]finance.Transaction, error)
	GetTransactionFunc    func(ctx context.Context, token, transactionID string) (finance.Transaction, error)
	CreateTransactionFunc func(ctx context.Context, token string, draft finance.TransactionDraft, requestID string) (finance.Transaction, error)
	UpdateTransactionFunc func(ctx context.Context, token, transactionID string, draft finance.TransactionDraft) (finance.Transaction, error)
	DeleteTransactionFunc func(ctx context.Context, token, transactionID string) error
	ListCategoriesFunc    func(ctx context.Context, token string, typ finance.TxnType) ([]finance.Category, error)
	CreateCategoryFunc    func(ctx context.Context, token string, draft finance.CategoryDraft) (finance.Category, error)
	CashFlowFunc          func(ctx context.Context, token, period string) (finance.CashFlowSummary, error)
	InsightsFunc          func(ctx context.Context, token string) (finance.Insight, error)
	FetchProfileFunc      func(ctx context.Context, token string) (finance.Profile, error)
	SaveProfileFunc       func(ctx context.Context, token string, p finance.Profile) error
	ListOffersFunc        func(ctx context.Context, token string) ([]map[string]any, error)

	mu sync.Mutex
	// Calls counts invocations per method name, for "no network call" asserts.
	Calls map[string]int
}

func (m *MockBackend) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Calls == nil {
		m.Calls = make(map[string]int)
	}
	m.Calls[name]++
}

// CallCount returns how often a method was invoked.
func (m *MockBackend) CallCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls[name]
}

func (m *MockBackend) ExchangeSession(ctx context.Context, sessionID string) (domainauth.User, domainauth.Session, error) {
	m.record("ExchangeSession")
	if m.ExchangeSessionFunc != nil {
		return m.ExchangeSessionFunc(ctx, sessionID)
	}
	return domainauth.User{}, domainauth.Session{}, nil
}

func (m *MockBackend) CurrentUser(ctx context.Context, token string) (domainauth.User, error) {
	m.record("CurrentUser")
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx, token)
	}
	return domainauth.User{}, nil
}

func (m *MockBackend) Logout(ctx context.Context, token string) error {
	m.record("Logout")
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil
}

func (m *MockBackend) ListTransactions(ctx context.Context, token string, q ports.TransactionQuery) ([]finance.Transaction, error) {
	m.record("ListTransactions")
	if m.ListTransactionsFunc != nil {
		return m.ListTransactionsFunc(ctx, token, q)
	}
	return nil, nil
}

func (m *MockBackend) GetTransaction(ctx context.Context, token, transactionID string) (finance.Transaction, error) {
	m.record("GetTransaction")
	if m.GetTransactionFunc != nil {
		return m.GetTransactionFunc(ctx, token, transactionID)
	}
	return finance.Transaction{}, nil
}

func (m *MockBackend) CreateTransaction(ctx context.Context, token string, draft finance.TransactionDraft, requestID string) (finance.Transaction, error) {
	m.record("CreateTransaction")
	if m.CreateTransactionFunc != nil {
		return m.CreateTransactionFunc(ctx, token, draft, requestID)
	}
	return finance.Transaction{}, nil
}

func (m *MockBackend) UpdateTransaction(ctx context.Context, token, transactionID string, draft finance.TransactionDraft) (finance.Transaction, error) {
	m.record("UpdateTransaction")
	if m.UpdateTransactionFunc != nil {
		return m.UpdateTransactionFunc(ctx, token, transactionID, draft)
	}
	return finance.Transaction{}, nil
}

func (m *MockBackend) DeleteTransaction(ctx context.Context, token, transactionID string) error {
	m.record("DeleteTransaction")
	if m.DeleteTransactionFunc != nil {
		return m.DeleteTransactionFunc(ctx, token, transactionID)
	}
	return nil
}

func (m *MockBackend) ListCategories(ctx context.Context, token string, typ finance.TxnType) ([]finance.Category, error) {
	m.record("ListCategories")
	if m.ListCategoriesFunc != nil {
		return m.ListCategoriesFunc(ctx, token, typ)
	}
	return nil, nil
}

func (m *MockBackend) CreateCategory(ctx context.Context, token string, draft finance.CategoryDraft) (finance.Category, error) {
	m.record("CreateCategory")
	if m.CreateCategoryFunc != nil {
		return m.CreateCategoryFunc(ctx, token, draft)
	}
	return finance.Category{}, nil
}

func (m *MockBackend) CashFlow(ctx context.Context, token, period string) (finance.CashFlowSummary, error) {
	m.record("CashFlow")
	if m.CashFlowFunc != nil {
		return m.CashFlowFunc(ctx, token, period)
	}
	return finance.CashFlowSummary{}, nil
}

func (m *MockBackend) Insights(ctx context.Context, token string) (finance.Insight, error) {
	m.record("Insights")
	if m.InsightsFunc != nil {
		return m.InsightsFunc(ctx, token)
	}
	return finance.Insight{}, nil
}

func (m *MockBackend) FetchProfile(ctx context.Context, token string) (finance.Profile, error) {
	m.record("FetchProfile")
	if m.FetchProfileFunc != nil {
		return m.FetchProfileFunc(ctx, token)
	}
	return finance.Profile{}, nil
}

func (m *MockBackend) SaveProfile(ctx context.Context, token string, p finance.Profile) error {
	m.record("SaveProfile")
	if m.SaveProfileFunc != nil {
		return m.SaveProfileFunc(ctx, token, p)
	}
	return nil
}

func (m *MockBackend) ListOffers(ctx context.Context, token string) ([]map[string]any, error) {
	m.record("ListOffers")
	if m.ListOffersFunc != nil {
		return m.ListOffersFunc(ctx, token)
	}
	return nil, nil
}

// StaticRedirectSource emits a fixed set of URLs then keeps the channel open.
type StaticRedirectSource struct {
	URLs []string

	once sync.Once
	ch   chan string
}

func (s *StaticRedirectSource) Start(context.Context) (<-chan string, error) {
	s.once.Do(func() {
		s.ch = make(chan string, len(s.URLs)+1)
		for _, u := range s.URLs {
			s.ch <- u
		}
	})
	return s.ch, nil
}

func (s *StaticRedirectSource) Close() error { return nil }

// StaticTokenSource satisfies service.TokenSource with a fixed token.
type StaticTokenSource string

// Token returns the fixed token.
func (s StaticTokenSource) Token() string { return string(s) }

// RecordingNavigator records opened URLs and optionally fails.
type RecordingNavigator struct {
	Err    error
	Opened []string
}

func (n *RecordingNavigator) Open(_ context.Context, url string) error {
	if n.Err != nil {
		return n.Err
	}
	n.Opened = append(n.Opened, url)
	return nil
}
