package web

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/evgeny-myasishchev/finance-tracker/pkg/ledger"
	"github.com/evgeny-myasishchev/finance-tracker/pkg/lib-core-golang/router"
	"github.com/evgeny-myasishchev/finance-tracker/pkg/types"
)

// transactionForm is a raw input of a new transaction
type transactionForm struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Date        string `json:"date"`
}

// toNewTransaction validates the input. Failures are reported as 400 errors
func (f transactionForm) toNewTransaction() (ledger.NewTransaction, error) {
	description := strings.TrimSpace(f.Description)
	if description == "" {
		return ledger.NewTransaction{}, router.BadRequestError("Description is required")
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(f.Amount))
	if err != nil {
		return ledger.NewTransaction{}, router.BadRequestError("Amount must be a number")
	}
	if amount.Sign() < 0 {
		return ledger.NewTransaction{}, router.BadRequestError("Amount must not be negative")
	}
	trxType, err := ledger.ParseTransactionType(f.Type)
	if err != nil {
		return ledger.NewTransaction{}, router.BadRequestError("Type must be income or expense")
	}
	if !ledger.IsValidCategory(trxType, f.Category) {
		return ledger.NewTransaction{}, router.BadRequestError("Category " + f.Category + " is not valid for " + string(trxType))
	}
	date, err := types.ParseDate(strings.TrimSpace(f.Date))
	if err != nil {
		return ledger.NewTransaction{}, router.BadRequestError("Date must be in YYYY-MM-DD format")
	}
	return ledger.NewTransaction{
		Description: description,
		Amount:      amount,
		Type:        trxType,
		Category:    f.Category,
		Date:        date,
	}, nil
}

func normalizeFilter(filter ledger.Filter) ledger.Filter {
	if filter.Type == "" {
		filter.Type = ledger.FilterAll
	}
	if filter.Category == "" {
		filter.Category = ledger.FilterAll
	}
	return filter
}

// pageLocation is a location of the page that keeps current filters
func pageLocation(filter ledger.Filter) string {
	filter = normalizeFilter(filter)
	if filter.Type == ledger.FilterAll && filter.Category == ledger.FilterAll {
		return "/"
	}
	query := url.Values{}
	query.Set("type", filter.Type)
	query.Set("category", filter.Category)
	return "/?" + query.Encode()
}
