package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/paisawise/pw-mobile-go/internal/domain/finance"
	apperrors "github.com/paisawise/pw-mobile-go/internal/errors"
	"github.com/paisawise/pw-mobile-go/internal/ports"
)

// TransactionServiceOptions groups dependencies for TransactionService.
type TransactionServiceOptions struct {
	API    ports.TransactionAPI
	Tokens TokenSource
}

// TransactionService records and lists money movements.
type TransactionService struct {
	api    ports.TransactionAPI
	tokens TokenSource
}

// NewTransactionService constructs a TransactionService.
func NewTransactionService(opts TransactionServiceOptions) (*TransactionService, error) {
	if opts.API == nil {
		return nil, errors.New("transaction API is required")
	}
	if opts.Tokens == nil {
		return nil, errors.New("token source is required")
	}
	return &TransactionService{api: opts.API, tokens: opts.Tokens}, nil
}

func (s *TransactionService) token() (string, error) {
	token := s.tokens.Token()
	if token == "" {
		return "", apperrors.Unauthorized("not signed in")
	}
	return token, nil
}

// Record validates a draft and submits it with a fresh client request id so
// a retried submission cannot double-book.
func (s *TransactionService) Record(ctx context.Context, draft finance.TransactionDraft) (finance.Transaction, error) {
	token, err := s.token()
	if err != nil {
		return finance.Transaction{}, err
	}
	if err := draft.Validate(); err != nil {
		return finance.Transaction{}, err
	}
	return s.api.CreateTransaction(ctx, token, draft, uuid.NewString())
}

// List returns transactions, newest first, optionally filtered by type.
func (s *TransactionService) List(ctx context.Context, q ports.TransactionQuery) ([]finance.Transaction, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	if q.Type != "" && !q.Type.Valid() {
		return nil, apperrors.ValidationField("type", `type must be "income" or "expense"`)
	}
	return s.api.ListTransactions(ctx, token, q)
}

// Get fetches a single transaction by id.
func (s *TransactionService) Get(ctx context.Context, transactionID string) (finance.Transaction, error) {
	token, err := s.token()
	if err != nil {
		return finance.Transaction{}, err
	}
	if transactionID == "" {
		return finance.Transaction{}, apperrors.ValidationField("transaction_id", "transaction id is required")
	}
	return s.api.GetTransaction(ctx, token, transactionID)
}

// Update validates the replacement draft and saves it over an existing
// transaction.
func (s *TransactionService) Update(ctx context.Context, transactionID string, draft finance.TransactionDraft) (finance.Transaction, error) {
	token, err := s.token()
	if err != nil {
		return finance.Transaction{}, err
	}
	if transactionID == "" {
		return finance.Transaction{}, apperrors.ValidationField("transaction_id", "transaction id is required")
	}
	if err := draft.Validate(); err != nil {
		return finance.Transaction{}, err
	}
	return s.api.UpdateTransaction(ctx, token, transactionID, draft)
}

// Delete removes a transaction by id.
func (s *TransactionService) Delete(ctx context.Context, transactionID string) error {
	token, err := s.token()
	if err != nil {
		return err
	}
	if transactionID == "" {
		return apperrors.ValidationField("transaction_id", "transaction id is required")
	}
	return s.api.DeleteTransaction(ctx, token, transactionID)
}
