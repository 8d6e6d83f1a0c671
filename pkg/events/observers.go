package events

import (
	"context"

	"github.com/evgeny-myasishchev/finance-tracker/pkg/ledger"
	"github.com/evgeny-myasishchev/finance-tracker/pkg/lib-core-golang/diag"
)

var logger = diag.CreateLogger()

type logObserver struct {
	logger diag.Logger
}

func (o *logObserver) LedgerUpdated(ctx context.Context, evt ledger.UpdateEvent) {
	o.logger.
		WithData(diag.MsgData{"kind": evt.Kind, "transactionId": evt.TransactionID}).
		Info(ctx, "Ledger updated: %v", evt.Kind)
}

// NewLogObserver returns an observer that logs every ledger update
func NewLogObserver() ledger.Observer {
	return &logObserver{logger: logger}
}

type broadcast []ledger.Observer

func (b broadcast) LedgerUpdated(ctx context.Context, evt ledger.UpdateEvent) {
	for _, observer := range b {
		observer.LedgerUpdated(ctx, evt)
	}
}

// Broadcast returns an observer that notifies all given observers in order.
// Nil observers are skipped
func Broadcast(observers ...ledger.Observer) ledger.Observer {
	result := make(broadcast, 0, len(observers))
	for _, observer := range observers {
		if observer != nil {
			result = append(result, observer)
		}
	}
	return result
}
