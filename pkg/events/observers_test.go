package events

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/bxcodec/faker/v3"
	"github.com/stretchr/testify/assert"

	"github.com/evgeny-myasishchev/finance-tracker/pkg/ledger"
	"github.com/evgeny-myasishchev/finance-tracker/pkg/lib-core-golang/diag"
)

type recordingObserver struct {
	name  string
	calls *[]string
}

func (o recordingObserver) LedgerUpdated(ctx context.Context, evt ledger.UpdateEvent) {
	*o.calls = append(*o.calls, o.name)
}

type capturingLogger struct {
	diag.Logger
	data     diag.MsgData
	messages []string
}

func (l *capturingLogger) WithData(data diag.MsgData) diag.Logger {
	l.data = data
	return l
}

func (l *capturingLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.messages = append(l.messages, msg)
}

func randomEvent() ledger.UpdateEvent {
	kind := ledger.EventKindAdded
	if rand.Intn(2) == 0 {
		kind = ledger.EventKindDeleted
	}
	return ledger.UpdateEvent{Kind: kind, TransactionID: rand.Int63(), OccurredAt: time.Now()}
}

func TestBroadcast(t *testing.T) {
	calls := []string{}
	first := recordingObserver{name: "first-" + faker.Word(), calls: &calls}
	second := recordingObserver{name: "second-" + faker.Word(), calls: &calls}

	observer := Broadcast(first, nil, second)
	observer.LedgerUpdated(context.TODO(), randomEvent())
	assert.Equal(t, []string{first.name, second.name}, calls)
}

func TestLogObserver(t *testing.T) {
	log := &capturingLogger{}
	observer := &logObserver{logger: log}
	evt := randomEvent()
	observer.LedgerUpdated(context.TODO(), evt)
	assert.Equal(t, diag.MsgData{"kind": evt.Kind, "transactionId": evt.TransactionID}, log.data)
	assert.Equal(t, []string{"Ledger updated: %v"}, log.messages)

	assert.NotNil(t, NewLogObserver())
}
