package ledger

import (
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatCurrency renders the amount as US dollars: $1,234.50 or -$1,234.50
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.Sign() < 0 {
		sign = "-"
		rounded = rounded.Abs()
	}
	parts := strings.SplitN(rounded.StringFixed(2), ".", 2)
	whole, ok := new(big.Int).SetString(parts[0], 10)
	if !ok {
		return sign + "$" + rounded.StringFixed(2)
	}
	return sign + "$" + humanize.BigComma(whole) + "." + parts[1]
}

// FormatSignedAmount renders the amount of a transaction
// with "+" for income and "-" for expense
func FormatSignedAmount(trx Transaction) string {
	sign := "+"
	if trx.Type == TransactionTypeExpense {
		sign = "-"
	}
	return sign + FormatCurrency(trx.Amount)
}
