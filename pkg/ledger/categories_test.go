package ledger

import (
	"testing"

	"github.com/bxcodec/faker/v3"
	"github.com/stretchr/testify/assert"
)

func TestCategories(t *testing.T) {
	tests := []struct {
		name    string
		trxType TransactionType
		want    []string
	}{
		{name: "income", trxType: TransactionTypeIncome, want: []string{"Salary", "Freelance", "Investment", "Gift", "Other"}},
		{name: "expense", trxType: TransactionTypeExpense, want: []string{"Food", "Transport", "Shopping", "Bills", "Entertainment", "Healthcare", "Education", "Other"}},
		{name: "unknown", trxType: TransactionType(faker.Word()), want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Categories(tt.trxType)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("returns a copy", func(t *testing.T) {
		got := Categories(TransactionTypeIncome)
		got[0] = faker.Word()
		assert.Equal(t, "Salary", Categories(TransactionTypeIncome)[0])
	})
}

func TestAllCategories(t *testing.T) {
	assert.Equal(t, []string{
		"Salary", "Freelance", "Investment", "Gift", "Other",
		"Food", "Transport", "Shopping", "Bills", "Entertainment", "Healthcare", "Education",
	}, AllCategories())
}

func TestIsValidCategory(t *testing.T) {
	assert.True(t, IsValidCategory(TransactionTypeIncome, "Salary"))
	assert.True(t, IsValidCategory(TransactionTypeExpense, "Other"))
	assert.False(t, IsValidCategory(TransactionTypeIncome, "Food"))
	assert.False(t, IsValidCategory(TransactionTypeExpense, "salary"))
	assert.False(t, IsValidCategory(TransactionType("all"), "Other"))
}

func TestParseTransactionType(t *testing.T) {
	got, err := ParseTransactionType("income")
	assert.NoError(t, err)
	assert.Equal(t, TransactionTypeIncome, got)

	_, err = ParseTransactionType("all")
	assert.EqualError(t, err, `Unknown transaction type: "all"`)
}
