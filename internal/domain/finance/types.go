package finance

// Package finance contains domain models for the money-tracking surface of
// the client: transactions, categories, and the aggregates the screens
// render. Wire shapes match the backend REST API.

import (
	"strings"
	"time"

	apperrors "github.com/paisawise/pw-mobile-go/internal/errors"
)

// TxnType classifies a transaction as money in or money out.
type TxnType string

const (
	TxnIncome  TxnType = "income"
	TxnExpense TxnType = "expense"
)

// Valid reports whether the type is one of the two known kinds.
func (t TxnType) Valid() bool { return t == TxnIncome || t == TxnExpense }

// Transaction is a single recorded movement of money.
type Transaction struct {
	ID          string    `json:"transaction_id"`
	UserID      string    `json:"user_id"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Type        TxnType   `json:"type"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TransactionDraft is the client-side input for recording a transaction.
// The backend assigns the id and defaults the date when absent.
type TransactionDraft struct {
	Amount      float64    `json:"amount"`
	Category    string     `json:"category"`
	Type        TxnType    `json:"type"`
	Description string     `json:"description,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
}

// Validate checks a draft before it is sent to the backend.
func (d TransactionDraft) Validate() error {
	if d.Amount <= 0 {
		return apperrors.ValidationField("amount", "amount must be greater than zero")
	}
	if strings.TrimSpace(d.Category) == "" {
		return apperrors.ValidationField("category", "category is required")
	}
	if !d.Type.Valid() {
		return apperrors.ValidationField("type", `type must be "income" or "expense"`)
	}
	return nil
}

// Category is a user-owned grouping for transactions.
type Category struct {
	ID     string  `json:"category_id"`
	UserID string  `json:"user_id"`
	Name   string  `json:"name"`
	Type   TxnType `json:"type"`
	Icon   string  `json:"icon,omitempty"`
	Color  string  `json:"color,omitempty"`
}

// CategoryDraft is the input for creating a category.
type CategoryDraft struct {
	Name  string  `json:"name"`
	Type  TxnType `json:"type"`
	Icon  string  `json:"icon,omitempty"`
	Color string  `json:"color,omitempty"`
}

// Validate checks a category draft.
func (d CategoryDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return apperrors.ValidationField("name", "name is required")
	}
	if !d.Type.Valid() {
		return apperrors.ValidationField("type", `type must be "income" or "expense"`)
	}
	return nil
}

// CategoryTotal is a category name with its accumulated amount.
type CategoryTotal struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// CashFlowSummary mirrors the backend's cash-flow analytics payload.
type CashFlowSummary struct {
	TotalIncome   float64         `json:"total_income"`
	TotalExpenses float64         `json:"total_expenses"`
	Savings       float64         `json:"savings"`
	SavingsRate   float64         `json:"savings_rate"`
	TopCategories []CategoryTotal `json:"top_categories"`
}

// Insight is a generated recommendation about recent spending.
type Insight struct {
	Text        string    `json:"insight"`
	GeneratedAt time.Time `json:"generated_at"`
}
