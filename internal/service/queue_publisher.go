// Package queue_publisher publishes reservation lifecycle events to
// RabbitMQ.  Publication is best-effort: errors are logged and returned
// so callers can ignore failures without interrupting the booking flow.
package queue_publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/hotel-reservation/internal/model"
	q "github.com/iliyamo/hotel-reservation/internal/queue"
)

// Publisher dials the broker per publish so a broker restart never
// leaves it holding a dead connection.  Messages are persistent and the
// target queues are declared idempotently.
type Publisher struct {
	url string
	log *logrus.Logger
}

// New returns a Publisher for the given AMQP URL.
func New(url string, log *logrus.Logger) *Publisher {
	return &Publisher{url: url, log: log}
}

// ReservationConfirmed publishes to the reservation.confirmed queue.
func (p *Publisher) ReservationConfirmed(ctx context.Context, res model.Reservation) error {
	return p.publish(ctx, q.ReservationConfirmedQueue, eventFrom(res))
}

// ReservationCancelled publishes to the reservation.cancelled queue.
func (p *Publisher) ReservationCancelled(ctx context.Context, res model.Reservation) error {
	return p.publish(ctx, q.ReservationCancelledQueue, eventFrom(res))
}

func eventFrom(res model.Reservation) q.ReservationEvent {
	return q.ReservationEvent{
		EventID:       uuid.NewString(),
		ReservationID: res.ID,
		RoomID:        res.RoomID,
		GuestName:     res.GuestName,
		CheckIn:       res.CheckIn.Format("2006-01-02"),
		CheckOut:      res.CheckOut.Format("2006-01-02"),
		AmountCents:   res.AmountCents,
		Status:        string(res.Status),
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
}

func (p *Publisher) publish(ctx context.Context, queueName string, event q.ReservationEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.WithError(err).Warn("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.WithError(err).Warn("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	); err != nil {
		p.log.WithError(err).Warn("rabbitmq: queue declare failed")
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.log.WithError(err).Warn("rabbitmq: marshal event failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",        // default exchange
		queueName, // routing key = queue name
		false,     // mandatory
		false,     // immediate
		pub,
	); err != nil {
		p.log.WithError(err).Warn("rabbitmq: publish failed")
		return err
	}
	return nil
}
