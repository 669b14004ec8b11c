package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"product-catalog/internal/model"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Queue names for product lifecycle events.
const (
	ProductCreatedQueue = "product.created"
	ProductDeletedQueue = "product.deleted"
)

// Publisher announces product lifecycle changes.
type Publisher interface {
	ProductCreated(ctx context.Context, product *model.Product) error
	ProductDeleted(ctx context.Context, product *model.DeletedProduct) error
}

// ProductCreatedEvent is the body published on ProductCreatedQueue.
type ProductCreatedEvent struct {
	ProductID  int64     `json:"product_id"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ProductDeletedEvent is the body published on ProductDeletedQueue.
type ProductDeletedEvent struct {
	ProductID  int64     `json:"product_id"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Channel is the subset of *amqp.Channel used by the publisher.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQPublisher publishes product events to durable RabbitMQ queues.
type RabbitMQPublisher struct {
	conn    *amqp.Connection
	channel Channel
	logger  zerolog.Logger
	now     func() time.Time
}

// NewRabbitMQPublisher dials the broker and declares the product queues.
func NewRabbitMQPublisher(url string, logger zerolog.Logger) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	p, err := NewRabbitMQPublisherWithChannel(ch, logger)
	if err != nil {
		conn.Close()
		return nil, err
	}
	p.conn = conn

	return p, nil
}

// NewRabbitMQPublisherWithChannel builds a publisher on an already open channel.
func NewRabbitMQPublisherWithChannel(ch Channel, logger zerolog.Logger) (*RabbitMQPublisher, error) {
	for _, queue := range []string{ProductCreatedQueue, ProductDeletedQueue} {
		if _, err := ch.QueueDeclare(
			queue,
			true,  // durable
			false, // auto-delete
			false, // exclusive
			false, // no-wait
			nil,
		); err != nil {
			return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
		}
	}

	return &RabbitMQPublisher{
		channel: ch,
		logger:  logger.With().Str("component", "events").Logger(),
		now:     time.Now,
	}, nil
}

// ProductCreated publishes a product.created event.
func (p *RabbitMQPublisher) ProductCreated(ctx context.Context, product *model.Product) error {
	return p.publish(ctx, ProductCreatedQueue, ProductCreatedEvent{
		ProductID:  product.ID,
		Name:       product.Name,
		Price:      product.Price,
		OccurredAt: p.now().UTC(),
	})
}

// ProductDeleted publishes a product.deleted event.
func (p *RabbitMQPublisher) ProductDeleted(ctx context.Context, product *model.DeletedProduct) error {
	return p.publish(ctx, ProductDeletedQueue, ProductDeletedEvent{
		ProductID:  product.ID,
		Name:       product.Name,
		OccurredAt: p.now().UTC(),
	})
}

func (p *RabbitMQPublisher) publish(ctx context.Context, queue string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.channel.PublishWithContext(ctx,
		"",    // default exchange
		queue, // routing key
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    p.now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", queue, err)
	}

	p.logger.Debug().Str("queue", queue).Int("bytes", len(body)).Msg("event published")
	return nil
}

// Close closes the channel and, if owned, the connection.
func (p *RabbitMQPublisher) Close() error {
	var firstErr error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			firstErr = err
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NopPublisher discards every event. Used when RabbitMQ is disabled.
type NopPublisher struct{}

func (NopPublisher) ProductCreated(context.Context, *model.Product) error { return nil }

func (NopPublisher) ProductDeleted(context.Context, *model.DeletedProduct) error { return nil }
