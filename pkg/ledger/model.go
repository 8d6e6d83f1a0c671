package ledger

import (
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/evgeny-myasishchev/finance-tracker/pkg/types"
)

// TransactionType is a kind of a transaction: income or expense
type TransactionType string

const (
	// TransactionTypeIncome is a type of income transactions
	TransactionTypeIncome TransactionType = "income"

	// TransactionTypeExpense is a type of expense transactions
	TransactionTypeExpense TransactionType = "expense"
)

// FilterAll matches any type or category
const FilterAll = "all"

// Valid checks if the type is one of known types
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// ParseTransactionType returns a type for a raw value or fails if the type is unknown
func ParseTransactionType(raw string) (TransactionType, error) {
	t := TransactionType(raw)
	if !t.Valid() {
		return "", errors.Errorf("Unknown transaction type: %q", raw)
	}
	return t, nil
}

// Transaction is a single recorded income or expense.
// Transactions are immutable once created
type Transaction struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Date        types.Date      `json:"date"`
}

// NewTransaction holds fields of a transaction to add.
// Fields are expected to be validated by the caller
type NewTransaction struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Date        types.Date      `json:"date"`
}

// Filter narrows listed transactions. Empty or "all" fields match everything
type Filter struct {
	Type     string
	Category string
}

func matchesFilterValue(filterValue string, value string) bool {
	return filterValue == "" || filterValue == FilterAll || filterValue == value
}

// Match checks if the transaction passes the filter
func (f Filter) Match(trx Transaction) bool {
	return matchesFilterValue(f.Type, string(trx.Type)) && matchesFilterValue(f.Category, trx.Category)
}

// Summary is derived totals over the full ledger
type Summary struct {
	Balance      decimal.Decimal `json:"balance"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
}

// IsPositive is true when the balance is not below zero
func (s Summary) IsPositive() bool {
	return s.Balance.Sign() >= 0
}

// EventKind is a kind of a ledger update
type EventKind string

const (
	// EventKindAdded is signaled when a transaction has been added
	EventKindAdded EventKind = "added"

	// EventKindDeleted is signaled when a transaction has been deleted
	EventKindDeleted EventKind = "deleted"
)

// UpdateEvent describes a ledger mutation
type UpdateEvent struct {
	Kind          EventKind `json:"kind"`
	TransactionID int64     `json:"transactionId"`
	OccurredAt    time.Time `json:"occurredAt"`
}
