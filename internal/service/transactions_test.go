package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paisawise/pw-mobile-go/internal/domain/finance"
	apperrors "github.com/paisawise/pw-mobile-go/internal/errors"
	mockclient "github.com/paisawise/pw-mobile-go/internal/mocks/client"
	"github.com/paisawise/pw-mobile-go/internal/ports"
)

func newTestTransactionService(t *testing.T, backend *mockclient.MockBackend, token string) *TransactionService {
	t.Helper()
	svc, err := NewTransactionService(TransactionServiceOptions{
		API:    backend,
		Tokens: mockclient.StaticTokenSource(token),
	})
	require.NoError(t, err)
	return svc
}

func TestTransactionService_Record(t *testing.T) {
	var gotRequestID string
	backend := &mockclient.MockBackend{
		CreateTransactionFunc: func(_ context.Context, token string, draft finance.TransactionDraft, requestID string) (finance.Transaction, error) {
			assert.Equal(t, "tok-1", token)
			gotRequestID = requestID
			return finance.Transaction{ID: "t1", Amount: draft.Amount, Category: draft.Category, Type: draft.Type}, nil
		},
	}
	svc := newTestTransactionService(t, backend, "tok-1")

	txn, err := svc.Record(context.Background(), finance.TransactionDraft{
		Amount:   250,
		Category: "Food",
		Type:     finance.TxnExpense,
	})

	require.NoError(t, err)
	assert.Equal(t, "t1", txn.ID)
	_, parseErr := uuid.Parse(gotRequestID)
	assert.NoError(t, parseErr, "each submission carries a fresh uuid request id")
}

func TestTransactionService_Record_ValidatesDraft(t *testing.T) {
	backend := &mockclient.MockBackend{}
	svc := newTestTransactionService(t, backend, "tok-1")

	_, err := svc.Record(context.Background(), finance.TransactionDraft{Category: "Food", Type: finance.TxnExpense})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Zero(t, backend.CallCount("CreateTransaction"), "invalid drafts never reach the backend")
}

func TestTransactionService_Record_RequiresToken(t *testing.T) {
	svc := newTestTransactionService(t, &mockclient.MockBackend{}, "")

	_, err := svc.Record(context.Background(), finance.TransactionDraft{
		Amount:   10,
		Category: "Food",
		Type:     finance.TxnExpense,
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestTransactionService_List(t *testing.T) {
	backend := &mockclient.MockBackend{
		ListTransactionsFunc: func(_ context.Context, _ string, q ports.TransactionQuery) ([]finance.Transaction, error) {
			assert.Equal(t, finance.TxnExpense, q.Type)
			assert.Equal(t, 20, q.Limit)
			return []finance.Transaction{{ID: "t1"}}, nil
		},
	}
	svc := newTestTransactionService(t, backend, "tok-1")

	txns, err := svc.List(context.Background(), ports.TransactionQuery{Type: finance.TxnExpense, Limit: 20})

	require.NoError(t, err)
	assert.Len(t, txns, 1)
}

func TestTransactionService_List_RejectsUnknownType(t *testing.T) {
	backend := &mockclient.MockBackend{}
	svc := newTestTransactionService(t, backend, "tok-1")

	_, err := svc.List(context.Background(), ports.TransactionQuery{Type: "transfer"})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Zero(t, backend.CallCount("ListTransactions"))
}

func TestTransactionService_Get(t *testing.T) {
	backend := &mockclient.MockBackend{
		GetTransactionFunc: func(_ context.Context, token, id string) (finance.Transaction, error) {
			assert.Equal(t, "tok-1", token)
			assert.Equal(t, "t1", id)
			return finance.Transaction{ID: "t1", Amount: 250}, nil
		},
	}
	svc := newTestTransactionService(t, backend, "tok-1")

	txn, err := svc.Get(context.Background(), "t1")

	require.NoError(t, err)
	assert.Equal(t, "t1", txn.ID)

	_, err = svc.Get(context.Background(), "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, 1, backend.CallCount("GetTransaction"))
}

func TestTransactionService_Update(t *testing.T) {
	backend := &mockclient.MockBackend{
		UpdateTransactionFunc: func(_ context.Context, _ string, id string, draft finance.TransactionDraft) (finance.Transaction, error) {
			assert.Equal(t, "t1", id)
			return finance.Transaction{ID: id, Amount: draft.Amount, Category: draft.Category, Type: draft.Type}, nil
		},
	}
	svc := newTestTransactionService(t, backend, "tok-1")

	txn, err := svc.Update(context.Background(), "t1", finance.TransactionDraft{
		Amount:   300,
		Category: "Food",
		Type:     finance.TxnExpense,
	})

	require.NoError(t, err)
	assert.Equal(t, 300.0, txn.Amount)
}

func TestTransactionService_Update_ValidatesDraft(t *testing.T) {
	backend := &mockclient.MockBackend{}
	svc := newTestTransactionService(t, backend, "tok-1")

	_, err := svc.Update(context.Background(), "t1", finance.TransactionDraft{Category: "Food", Type: finance.TxnExpense})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Update(context.Background(), "", finance.TransactionDraft{
		Amount:   10,
		Category: "Food",
		Type:     finance.TxnExpense,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Zero(t, backend.CallCount("UpdateTransaction"))
}

func TestTransactionService_Delete(t *testing.T) {
	backend := &mockclient.MockBackend{
		DeleteTransactionFunc: func(_ context.Context, _ string, id string) error {
			assert.Equal(t, "t1", id)
			return nil
		},
	}
	svc := newTestTransactionService(t, backend, "tok-1")

	require.NoError(t, svc.Delete(context.Background(), "t1"))

	err := svc.Delete(context.Background(), "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
