package client

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/evgeny-myasishchev/finance-tracker/pkg/ledger"
	"github.com/evgeny-myasishchev/finance-tracker/pkg/lib-core-golang/request"
)

// API is an interface to communicate with a running finance tracker server
type API interface {
	ListTransactions(ctx context.Context, filter ledger.Filter) ([]ledger.Transaction, error)
	AddTransaction(ctx context.Context, newTrx ledger.NewTransaction) (ledger.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
	Summary(ctx context.Context) (Summary, error)
	Categories(ctx context.Context, trxType ledger.TransactionType) ([]string, error)
}

// Summary is a summary with formatted totals as returned by the server
type Summary struct {
	ledger.Summary
	Positive  bool `json:"positive"`
	Formatted struct {
		Balance      string `json:"balance"`
		TotalIncome  string `json:"totalIncome"`
		TotalExpense string `json:"totalExpense"`
	} `json:"formatted"`
}

type api struct {
	baseURL string
}

func (a *api) ListTransactions(ctx context.Context, filter ledger.Filter) ([]ledger.Transaction, error) {
	query := url.Values{}
	if filter.Type != "" {
		query.Set("type", filter.Type)
	}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	target := a.baseURL + "/v1/transactions"
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	var transactions []ledger.Transaction
	if err := request.Do(ctx, request.Get(target)).DecodeJSON(&transactions); err != nil {
		return nil, errors.Wrap(err, "Failed to list transactions")
	}
	return transactions, nil
}

func (a *api) AddTransaction(ctx context.Context, newTrx ledger.NewTransaction) (ledger.Transaction, error) {
	var trx ledger.Transaction
	res := request.Do(ctx, request.PostJSON(a.baseURL+"/v1/transactions", newTrx))
	if err := res.DecodeJSON(&trx); err != nil {
		return ledger.Transaction{}, errors.Wrap(err, "Failed to add transaction")
	}
	return trx, nil
}

func (a *api) DeleteTransaction(ctx context.Context, id int64) error {
	target := a.baseURL + "/v1/transactions/" + strconv.FormatInt(id, 10)
	if err := request.Do(ctx, request.Delete(target)).Discard(); err != nil {
		return errors.Wrapf(err, "Failed to delete transaction %v", id)
	}
	return nil
}

func (a *api) Summary(ctx context.Context) (Summary, error) {
	var summary Summary
	if err := request.Do(ctx, request.Get(a.baseURL+"/v1/summary")).DecodeJSON(&summary); err != nil {
		return Summary{}, errors.Wrap(err, "Failed to get summary")
	}
	return summary, nil
}

func (a *api) Categories(ctx context.Context, trxType ledger.TransactionType) ([]string, error) {
	var categories []string
	target := a.baseURL + "/v1/categories/" + url.PathEscape(string(trxType))
	if err := request.Do(ctx, request.Get(target)).DecodeJSON(&categories); err != nil {
		return nil, errors.Wrap(err, "Failed to get categories")
	}
	return categories, nil
}

// NewAPI returns an instance of the API client for a given server url
func NewAPI(baseURL string) API {
	return &api{baseURL: strings.TrimRight(baseURL, "/")}
}
