package ledger

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/evgeny-myasishchev/finance-tracker/pkg/dal"
	"github.com/evgeny-myasishchev/finance-tracker/pkg/lib-core-golang/diag"
)

var logger = diag.CreateLogger()

// Manager holds the ordered list of transactions (newest first),
// mirrors it to the storage and computes aggregates.
// Not safe for concurrent use, hosts must serialize calls
type Manager struct {
	storage      dal.Storage
	observer     Observer
	now          func() time.Time
	ids          *idGenerator
	transactions []Transaction
}

// ManagerOpt is an option of the ledger manager
type ManagerOpt func(m *Manager)

// WithStorage sets the storage the ledger is persisted to
func WithStorage(storage dal.Storage) ManagerOpt {
	return func(m *Manager) {
		m.storage = storage
	}
}

// WithObserver sets an observer of ledger updates
func WithObserver(observer Observer) ManagerOpt {
	return func(m *Manager) {
		m.observer = observer
	}
}

func withNow(now func() time.Time) ManagerOpt {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates an empty ledger. Use Init to restore persisted transactions.
// Memory storage is used if no storage provided
func NewManager(opts ...ManagerOpt) *Manager {
	m := &Manager{now: time.Now, transactions: []Transaction{}}
	for _, opt := range opts {
		opt(m)
	}
	if m.storage == nil {
		m.storage = dal.NewMemoryStorage()
	}
	m.ids = &idGenerator{now: m.now}
	return m
}

// Init loads persisted transactions or starts with an empty ledger
func (m *Manager) Init(ctx context.Context) error {
	transactions, err := m.Restore(ctx)
	if err != nil {
		return err
	}
	m.transactions = transactions
	m.ids.seed(transactions)
	logger.Info(ctx, "Ledger initialized with %v transactions", len(transactions))
	return nil
}

func (m *Manager) notify(ctx context.Context, kind EventKind, id int64) {
	if m.observer == nil {
		return
	}
	m.observer.LedgerUpdated(ctx, UpdateEvent{Kind: kind, TransactionID: id, OccurredAt: m.now()})
}

// Add inserts a new transaction at the front and persists the ledger.
// The ledger is left unchanged if persisting fails
func (m *Manager) Add(ctx context.Context, newTrx NewTransaction) (Transaction, error) {
	trx := Transaction{
		ID:          m.ids.next(),
		Description: newTrx.Description,
		Amount:      newTrx.Amount,
		Type:        newTrx.Type,
		Category:    newTrx.Category,
		Date:        newTrx.Date,
	}
	m.transactions = append([]Transaction{trx}, m.transactions...)
	if err := m.Persist(ctx); err != nil {
		m.transactions = m.transactions[1:]
		return Transaction{}, err
	}
	logger.Debug(ctx, "Transaction %v added", trx.ID)
	m.notify(ctx, EventKindAdded, trx.ID)
	return trx, nil
}

// Delete removes a transaction with a given id and persists the ledger.
// Unknown id is ignored
func (m *Manager) Delete(ctx context.Context, id int64) error {
	index := -1
	for i, trx := range m.transactions {
		if trx.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		logger.Debug(ctx, "Transaction %v not found, nothing to delete", id)
		return nil
	}

	previous := m.transactions
	remaining := make([]Transaction, 0, len(previous)-1)
	remaining = append(remaining, previous[:index]...)
	m.transactions = append(remaining, previous[index+1:]...)
	if err := m.Persist(ctx); err != nil {
		m.transactions = previous
		return err
	}
	logger.Debug(ctx, "Transaction %v deleted", id)
	m.notify(ctx, EventKindDeleted, id)
	return nil
}

// List returns transactions that match the filter preserving the order
func (m *Manager) List(filter Filter) []Transaction {
	result := []Transaction{}
	for _, trx := range m.transactions {
		if filter.Match(trx) {
			result = append(result, trx)
		}
	}
	return result
}

// Transactions returns all transactions, newest first
func (m *Manager) Transactions() []Transaction {
	return m.List(Filter{})
}

// Len returns number of transactions in the ledger
func (m *Manager) Len() int {
	return len(m.transactions)
}

// Aggregate computes totals over all transactions
func (m *Manager) Aggregate() Summary {
	income := decimal.Zero
	expense := decimal.Zero
	for _, trx := range m.transactions {
		switch trx.Type {
		case TransactionTypeIncome:
			income = income.Add(trx.Amount)
		case TransactionTypeExpense:
			expense = expense.Add(trx.Amount)
		}
	}
	return Summary{
		Balance:      income.Sub(expense),
		TotalIncome:  income,
		TotalExpense: expense,
	}
}

// Persist writes all transactions to the storage overwriting previous content
func (m *Manager) Persist(ctx context.Context) error {
	data, err := encodeTransactions(m.transactions)
	if err != nil {
		return err
	}
	if err := m.storage.SaveValue(ctx, StorageKey, data); err != nil {
		return errors.Wrap(err, "Failed to persist transactions")
	}
	return nil
}

// Restore reads persisted transactions. Missing or undecodable content
// gives an empty list. Storage failures are returned as errors
func (m *Manager) Restore(ctx context.Context) ([]Transaction, error) {
	data, err := m.storage.GetValue(ctx, StorageKey)
	if errors.Cause(err) == dal.ErrKeyNotFound {
		logger.Info(ctx, "No persisted transactions found, starting empty")
		return []Transaction{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "Failed to restore transactions")
	}
	transactions, err := decodeTransactions(data)
	if err != nil {
		logger.WithError(err).Warn(ctx, "Persisted transactions can not be decoded, starting empty")
		return []Transaction{}, nil
	}
	return transactions, nil
}
