package ledger

import "context"

// Observer is notified after every successful ledger mutation
type Observer interface {
	LedgerUpdated(ctx context.Context, evt UpdateEvent)
}

// ObserverFunc is a func that can be used as an Observer
type ObserverFunc func(ctx context.Context, evt UpdateEvent)

// LedgerUpdated calls f(ctx, evt)
func (f ObserverFunc) LedgerUpdated(ctx context.Context, evt UpdateEvent) {
	f(ctx, evt)
}
