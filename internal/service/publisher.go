// Package service publishes domain events to RabbitMQ.  Errors are logged
// and returned so callers can ignore failures without interrupting the
// request flow.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/livehouse/internal/queue"
)

// Publisher sends schedule changes to the schedule.changed queue.  It dials
// per message; the change rate of a venue schedule is a few per day.
type Publisher struct {
	URL         string
	DialTimeout time.Duration
	Log         *zap.Logger
}

// NewPublisher returns nil when url is empty, which disables publishing.
func NewPublisher(url string, log *zap.Logger) *Publisher {
	if url == "" {
		return nil
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher{URL: url, DialTimeout: 2 * time.Second, Log: log}
}

// PublishScheduleChanged publishes ev as a persistent JSON message.  A nil
// Publisher does nothing.
func (p *Publisher) PublishScheduleChanged(ctx context.Context, ev queue.ScheduleChangedEvent) error {
	if p == nil {
		return nil
	}
	conn, err := amqp.DialConfig(p.URL, amqp.Config{
		Dial: amqp.DefaultDial(p.DialTimeout),
	})
	if err != nil {
		p.Log.Warn("rabbitmq: dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.Log.Warn("rabbitmq: channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queue.ScheduleQueueName, true, false, false, false, nil); err != nil {
		p.Log.Warn("rabbitmq: queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue.ScheduleQueueName, false, false, pub); err != nil {
		p.Log.Warn("rabbitmq: publish failed", zap.Error(err))
		return err
	}
	return nil
}
