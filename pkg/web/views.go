package web

import (
	"embed"
	"html/template"

	"github.com/evgeny-myasishchev/finance-tracker/pkg/ledger"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

type summaryView struct {
	Balance      string
	TotalIncome  string
	TotalExpense string
	Positive     bool
}

func newSummaryView(summary ledger.Summary) summaryView {
	return summaryView{
		Balance:      ledger.FormatCurrency(summary.Balance),
		TotalIncome:  ledger.FormatCurrency(summary.TotalIncome),
		TotalExpense: ledger.FormatCurrency(summary.TotalExpense),
		Positive:     summary.IsPositive(),
	}
}

type transactionView struct {
	ID          int64
	Description string
	Category    string
	Type        string
	Date        string
	Amount      string
}

func newTransactionViews(transactions []ledger.Transaction) []transactionView {
	result := make([]transactionView, 0, len(transactions))
	for _, trx := range transactions {
		result = append(result, transactionView{
			ID:          trx.ID,
			Description: trx.Description,
			Category:    trx.Category,
			Type:        string(trx.Type),
			Date:        trx.Date.Format(),
			Amount:      ledger.FormatSignedAmount(trx),
		})
	}
	return result
}

// formView holds raw values of the add form so they survive a failed submit
type formView struct {
	Description string
	Amount      string
	Type        string
	Category    string
	Date        string
	Types       []string
	Categories  []string
}

type pageView struct {
	Summary          summaryView
	Transactions     []transactionView
	Filter           ledger.Filter
	FilterTypes      []string
	FilterCategories []string
	Form             formView
	Error            string
}

func newFormView(form transactionForm) formView {
	view := formView{
		Description: form.Description,
		Amount:      form.Amount,
		Type:        form.Type,
		Category:    form.Category,
		Date:        form.Date,
		Types:       []string{string(ledger.TransactionTypeIncome), string(ledger.TransactionTypeExpense)},
	}
	if !ledger.TransactionType(view.Type).Valid() {
		view.Type = string(ledger.TransactionTypeIncome)
	}
	view.Categories = ledger.Categories(ledger.TransactionType(view.Type))
	return view
}

func filterCategories() []string {
	return append([]string{ledger.FilterAll}, ledger.AllCategories()...)
}

func filterTypes() []string {
	return []string{ledger.FilterAll, string(ledger.TransactionTypeIncome), string(ledger.TransactionTypeExpense)}
}
