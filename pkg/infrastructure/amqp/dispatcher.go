package amqp

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"

	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/domain/service"
)

const (
	ExchangeName = "storefront.events"
	ExchangeType = "topic"
)

// Setup dials the broker and declares the events exchange, retrying a few
// times to survive container startup ordering.
func Setup(url string) (*amqp.Connection, *amqp.Channel, error) {
	var conn *amqp.Connection
	var err error

	for i := 0; i < 5; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		log.WithError(err).Warnf("failed to connect to RabbitMQ (attempt %d)", i+1)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, nil, errors.Wrap(err, "connect to RabbitMQ")
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, errors.Wrap(err, "open channel")
	}

	if err := ch.ExchangeDeclare(ExchangeName, ExchangeType, true, false, false, false, nil); err != nil {
		return nil, nil, errors.Wrap(err, "declare exchange")
	}
	return conn, ch, nil
}

// NewDispatcher returns an EventDispatcher publishing domain events as JSON
// to the events exchange, routed by event type.
func NewDispatcher(ch *amqp.Channel) service.EventDispatcher {
	return &dispatcher{ch: ch}
}

type dispatcher struct {
	ch *amqp.Channel
}

func (d *dispatcher) Dispatch(event service.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}

	return d.ch.Publish(
		ExchangeName,
		event.Type(),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Timestamp:   time.Now().UTC(),
			Type:        event.Type(),
			Body:        body,
		},
	)
}

// NewLogDispatcher is the fallback when no broker is configured: events are
// written to the structured log instead of being dropped.
func NewLogDispatcher() service.EventDispatcher {
	return logDispatcher{}
}

type logDispatcher struct{}

func (logDispatcher) Dispatch(event service.Event) error {
	log.WithFields(log.Fields{"event": event.Type(), "payload": event}).Info("domain event")
	return nil
}
