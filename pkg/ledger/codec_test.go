package ledger

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func Test_encodeTransactions(t *testing.T) {
	data, err := encodeTransactions([]Transaction{
		{
			ID:          1704067200000,
			Description: "Paycheck",
			Amount:      decimal.RequireFromString("1000.5"),
			Type:        TransactionTypeIncome,
			Category:    "Salary",
			Date:        "2024-01-01",
		},
	})
	if !assert.NoError(t, err) {
		return
	}
	assert.JSONEq(t, `[{
		"id": 1704067200000,
		"description": "Paycheck",
		"amount": 1000.5,
		"type": "income",
		"category": "Salary",
		"date": "2024-01-01"
	}]`, string(data))

	var raw []map[string]interface{}
	if !assert.NoError(t, json.Unmarshal(data, &raw)) {
		return
	}
	assert.IsType(t, float64(0), raw[0]["amount"])
}

func Test_encodeTransactions_Empty(t *testing.T) {
	data, err := encodeTransactions([]Transaction{})
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, "[]", string(data))
}

func Test_decodeTransactions(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    []Transaction
		wantErr bool
	}{
		{
			name: "null amount",
			data: `[{"id":1,"description":"Broken","amount":null,"type":"expense","category":"Food","date":"2024-01-01"}]`,
			want: []Transaction{{ID: 1, Description: "Broken", Amount: decimal.Zero, Type: TransactionTypeExpense, Category: "Food", Date: "2024-01-01"}},
		},
		{name: "empty array", data: `[]`, want: []Transaction{}},
		{name: "invalid json", data: `[{`, wantErr: true},
		{name: "invalid id", data: `[{"id":"abc"}]`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeTransactions([]byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
