package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/bxcodec/faker/v3"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/evgeny-myasishchev/finance-tracker/pkg/ledger"
)

type mockChannel struct {
	mock.Mock
}

func (c *mockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := c.Called(exchange, key, msg)
	return args.Error(0)
}

func TestAMQPPublisher_LedgerUpdated(t *testing.T) {
	type testCase struct {
		name string
		run  func(t *testing.T)
	}
	tests := []func() testCase{
		func() testCase {
			return testCase{
				name: "publish event",
				run: func(t *testing.T) {
					exchange := "exchange-" + faker.Word()
					evt := randomEvent()
					body, err := json.Marshal(evt)
					if !assert.NoError(t, err) {
						return
					}
					channel := &mockChannel{}
					channel.On("PublishWithContext", exchange, "ledger."+string(evt.Kind), mock.MatchedBy(func(msg amqp.Publishing) bool {
						return msg.ContentType == "application/json" &&
							msg.DeliveryMode == amqp.Persistent &&
							string(msg.Body) == string(body)
					})).Return(nil)

					NewAMQPPublisher(channel, exchange).LedgerUpdated(context.TODO(), evt)
					channel.AssertExpectations(t)
				},
			}
		},
		func() testCase {
			return testCase{
				name: "ignore publish failure",
				run: func(t *testing.T) {
					channel := &mockChannel{}
					channel.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything).
						Return(errors.New(faker.Sentence()))

					assert.NotPanics(t, func() {
						NewAMQPPublisher(channel, faker.Word()).LedgerUpdated(context.TODO(), randomEvent())
					})
					channel.AssertNumberOfCalls(t, "PublishWithContext", 1)
				},
			}
		},
	}
	for _, tt := range tests {
		tt := tt()
		t.Run(tt.name, tt.run)
	}
}

func TestRoutingKey(t *testing.T) {
	assert.Equal(t, "ledger.added", RoutingKey(ledger.EventKindAdded))
	assert.Equal(t, "ledger.deleted", RoutingKey(ledger.EventKindDeleted))
}

func TestAMQPPublisher_Close(t *testing.T) {
	closeErr := errors.New(faker.Sentence())
	closed := []string{}
	publisher := NewAMQPPublisher(&mockChannel{}, faker.Word())
	publisher.closers = []func() error{
		func() error { closed = append(closed, "channel"); return closeErr },
		func() error { closed = append(closed, "conn"); return nil },
	}
	assert.Equal(t, closeErr, publisher.Close())
	assert.Equal(t, []string{"channel", "conn"}, closed)
}
