package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/paisawise/pw-mobile-go/internal/errors"
)

func TestTransactionDraft_Validate(t *testing.T) {
	valid := TransactionDraft{Amount: 250, Category: "Food", Type: TxnExpense}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name  string
		draft TransactionDraft
		field string
	}{
		{"zero amount", TransactionDraft{Category: "Food", Type: TxnExpense}, "amount"},
		{"negative amount", TransactionDraft{Amount: -5, Category: "Food", Type: TxnExpense}, "amount"},
		{"blank category", TransactionDraft{Amount: 10, Category: "  ", Type: TxnExpense}, "category"},
		{"bad type", TransactionDraft{Amount: 10, Category: "Food", Type: "transfer"}, "type"},
		{"missing type", TransactionDraft{Amount: 10, Category: "Food"}, "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))

			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.field, appErr.Field)
		})
	}
}

func TestCategoryDraft_Validate(t *testing.T) {
	require.NoError(t, CategoryDraft{Name: "Groceries", Type: TxnExpense}.Validate())

	err := CategoryDraft{Type: TxnExpense}.Validate()
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	err = CategoryDraft{Name: "Groceries", Type: "other"}.Validate()
	require.Error(t, err)
}

func TestTxnType_Valid(t *testing.T) {
	assert.True(t, TxnIncome.Valid())
	assert.True(t, TxnExpense.Valid())
	assert.False(t, TxnType("").Valid())
	assert.False(t, TxnType("transfer").Valid())
}
