package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/evgeny-myasishchev/finance-tracker/pkg/ledger"
	"github.com/evgeny-myasishchev/finance-tracker/pkg/version"
)

const publishTimeout = 5 * time.Second

// RoutingKey returns a routing key events of a given kind are published with
func RoutingKey(kind ledger.EventKind) string {
	return "ledger." + string(kind)
}

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPPublisher publishes ledger updates to an AMQP exchange.
// Publish failures are logged and never reported to the ledger
type AMQPPublisher struct {
	channel  amqpChannel
	exchange string
	closers  []func() error
}

// LedgerUpdated publishes the update event as a json message
func (p *AMQPPublisher) LedgerUpdated(ctx context.Context, evt ledger.UpdateEvent) {
	body, err := json.Marshal(evt)
	if err != nil {
		logger.WithError(err).Error(ctx, "Failed to marshal ledger event")
		return
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	routingKey := RoutingKey(evt.Kind)
	if err := p.channel.PublishWithContext(publishCtx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    evt.OccurredAt,
		AppId:        version.AppName,
		Body:         body,
	}); err != nil {
		logger.WithError(err).Error(ctx, "Failed to publish ledger event to %v (%v)", p.exchange, routingKey)
		return
	}
	logger.Debug(ctx, "Published ledger event to %v (%v)", p.exchange, routingKey)
}

// Close releases the channel and the connection if the publisher owns them
func (p *AMQPPublisher) Close() error {
	var result error
	for _, closeFn := range p.closers {
		if err := closeFn(); err != nil && result == nil {
			result = err
		}
	}
	return result
}

// NewAMQPPublisher creates a publisher on top of an existing channel
func NewAMQPPublisher(channel amqpChannel, exchange string) *AMQPPublisher {
	return &AMQPPublisher{channel: channel, exchange: exchange}
}

// DialAMQPPublisher connects to the broker and declares a durable topic exchange
func DialAMQPPublisher(ctx context.Context, url string, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to dial AMQP")
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "Failed to open AMQP channel")
	}

	if err := channel.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		channel.Close()
		conn.Close()
		return nil, errors.Wrapf(err, "Failed to declare exchange %v", exchange)
	}

	logger.Info(ctx, "Publishing ledger events to exchange %v", exchange)
	publisher := NewAMQPPublisher(channel, exchange)
	publisher.closers = []func() error{channel.Close, conn.Close}
	return publisher, nil
}
