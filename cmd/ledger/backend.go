package main

import (
	"context"

	"github.com/evgeny-myasishchev/finance-tracker/pkg/client"
	"github.com/evgeny-myasishchev/finance-tracker/pkg/ledger"
)

// backend is where commands are executed: the local ledger or a remote server
type backend interface {
	list(ctx context.Context, filter ledger.Filter) ([]ledger.Transaction, error)
	add(ctx context.Context, newTrx ledger.NewTransaction) (ledger.Transaction, error)
	delete(ctx context.Context, id int64) error
	summary(ctx context.Context) (ledger.Summary, error)
	categories(ctx context.Context, trxType ledger.TransactionType) ([]string, error)
}

type localBackend struct {
	manager *ledger.Manager
}

func (b localBackend) list(ctx context.Context, filter ledger.Filter) ([]ledger.Transaction, error) {
	return b.manager.List(filter), nil
}

func (b localBackend) add(ctx context.Context, newTrx ledger.NewTransaction) (ledger.Transaction, error) {
	return b.manager.Add(ctx, newTrx)
}

func (b localBackend) delete(ctx context.Context, id int64) error {
	return b.manager.Delete(ctx, id)
}

func (b localBackend) summary(ctx context.Context) (ledger.Summary, error) {
	return b.manager.Aggregate(), nil
}

func (b localBackend) categories(ctx context.Context, trxType ledger.TransactionType) ([]string, error) {
	return ledger.Categories(trxType), nil
}

type remoteBackend struct {
	api client.API
}

func (b remoteBackend) list(ctx context.Context, filter ledger.Filter) ([]ledger.Transaction, error) {
	return b.api.ListTransactions(ctx, filter)
}

func (b remoteBackend) add(ctx context.Context, newTrx ledger.NewTransaction) (ledger.Transaction, error) {
	return b.api.AddTransaction(ctx, newTrx)
}

func (b remoteBackend) delete(ctx context.Context, id int64) error {
	return b.api.DeleteTransaction(ctx, id)
}

func (b remoteBackend) summary(ctx context.Context) (ledger.Summary, error) {
	summary, err := b.api.Summary(ctx)
	if err != nil {
		return ledger.Summary{}, err
	}
	return summary.Summary, nil
}

func (b remoteBackend) categories(ctx context.Context, trxType ledger.TransactionType) ([]string, error) {
	return b.api.Categories(ctx, trxType)
}
