package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{amount: "0", want: "$0.00"},
		{amount: "5", want: "$5.00"},
		{amount: "1234.5", want: "$1,234.50"},
		{amount: "1234567.891", want: "$1,234,567.89"},
		{amount: "0.005", want: "$0.01"},
		{amount: "999.999", want: "$1,000.00"},
		{amount: "-1234.5", want: "-$1,234.50"},
		{amount: "-0.001", want: "$0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestFormatSignedAmount(t *testing.T) {
	amount := decimal.RequireFromString("1500")
	assert.Equal(t, "+$1,500.00", FormatSignedAmount(Transaction{Type: TransactionTypeIncome, Amount: amount}))
	assert.Equal(t, "-$1,500.00", FormatSignedAmount(Transaction{Type: TransactionTypeExpense, Amount: amount}))
}
