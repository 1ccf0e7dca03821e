package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// CacheEventPublisher publishes cache refresh events to RabbitMQ
type CacheEventPublisher struct {
	conn              *RabbitMQConnection
	messagesPublished int64
	messagesFailed    int64
	lastPublishTime   time.Time
}

// NewCacheEventPublisher creates a new cache event publisher
func NewCacheEventPublisher(conn *RabbitMQConnection) *CacheEventPublisher {
	return &CacheEventPublisher{
		conn:            conn,
		lastPublishTime: time.Now(),
	}
}

// PublishEvent publishes a cache event to the country_cache_events queue
func (p *CacheEventPublisher) PublishEvent(ctx context.Context, event CacheEvent) error {
	// Ensure the queue exists
	_, err := p.conn.Channel.QueueDeclare(
		CountryCacheQueue, // queue name
		true,              // durable
		false,             // delete when unused
		false,             // exclusive
		false,             // no-wait
		nil,               // arguments
	)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to marshal cache event: %w", err)
	}

	err = p.conn.Channel.PublishWithContext(
		ctx,
		"",                // exchange
		CountryCacheQueue, // routing key (queue name)
		false,             // mandatory
		false,             // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to publish cache event: %w", err)
	}

	p.messagesPublished++
	p.lastPublishTime = time.Now()

	slog.Info("Cache event published",
		"queue", CountryCacheQueue,
		"event_type", event.EventType,
		"event_id", event.ID)

	return nil
}

// GetMetrics returns publisher metrics
func (p *CacheEventPublisher) GetMetrics() map[string]any {
	return map[string]any{
		"messages_published": p.messagesPublished,
		"messages_failed":    p.messagesFailed,
		"last_publish_time":  p.lastPublishTime,
		"queue":              CountryCacheQueue,
	}
}
