package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPPublisher dials the broker for every event. Shows are listed a few
// times a day, so a long-lived connection with reconnect handling would buy
// nothing.
type AMQPPublisher struct {
	url string
}

func NewAMQPPublisher(url string) *AMQPPublisher {
	return &AMQPPublisher{url: url}
}

func (p *AMQPPublisher) PublishShowListed(ctx context.Context, ev ShowListed) error {
	msg, err := showListedMessage(ev, time.Now())
	if err != nil {
		return err
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("events: dialing broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("events: opening channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// durable, not auto-deleted, not exclusive
	if _, err := ch.QueueDeclare(ShowListedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("events: declaring %s: %w", ShowListedQueue, err)
	}

	// Default exchange: the routing key is the queue name.
	if err := ch.PublishWithContext(ctx, "", ShowListedQueue, false, false, msg); err != nil {
		return fmt.Errorf("events: publishing %s: %w", ShowListedQueue, err)
	}
	return nil
}

func showListedMessage(ev ShowListed, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("events: encoding %s: %w", ShowListedQueue, err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.ShowID,
		Type:         ShowListedQueue,
		Timestamp:    now.UTC(),
		Body:         body,
	}, nil
}
