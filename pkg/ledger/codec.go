package ledger

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/evgeny-myasishchev/finance-tracker/pkg/types"
)

// StorageKey is a key the ledger is persisted under
const StorageKey = "financeTransactions"

// storedTransaction is a persisted form of a transaction.
// Amount is kept as a plain json number
type storedTransaction struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Amount      json.Number     `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Date        types.Date      `json:"date"`
}

func encodeTransactions(transactions []Transaction) ([]byte, error) {
	stored := make([]storedTransaction, len(transactions))
	for i, trx := range transactions {
		stored[i] = storedTransaction{
			ID:          trx.ID,
			Description: trx.Description,
			Amount:      json.Number(trx.Amount.String()),
			Type:        trx.Type,
			Category:    trx.Category,
			Date:        trx.Date,
		}
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to encode transactions")
	}
	return data, nil
}

func decodeTransactions(data []byte) ([]Transaction, error) {
	var stored []storedTransaction
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&stored); err != nil {
		return nil, errors.Wrap(err, "Failed to decode transactions")
	}
	transactions := make([]Transaction, len(stored))
	for i, s := range stored {
		amount := decimal.Zero

		// null amounts are possible in legacy data
		if s.Amount != "" {
			var err error
			if amount, err = decimal.NewFromString(s.Amount.String()); err != nil {
				return nil, errors.Wrapf(err, "Invalid amount of transaction %v", s.ID)
			}
		}
		transactions[i] = Transaction{
			ID:          s.ID,
			Description: s.Description,
			Amount:      amount,
			Type:        s.Type,
			Category:    s.Category,
			Date:        s.Date,
		}
	}
	return transactions, nil
}
