package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

const (
	RoutingAnalysisCompleted = "analysis.completed"
	RoutingAnalysisDeleted   = "analysis.deleted"
	RoutingIndustryUpdated   = "industry.updated"
)

// Publisher emits domain events. Implementations must be safe to call when
// the broker is not configured.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
	Close() error
}

type AnalysisCompletedEvent struct {
	EventType    string    `json:"event_type"`
	AnalysisID   string    `json:"analysis_id"`
	Kind         string    `json:"kind"`
	OverallScore int       `json:"overall_score"`
	JobTitle     string    `json:"job_title,omitempty"`
	Industry     string    `json:"industry,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// AnalysisDeletedEvent carries either one AnalysisID or, for a retention
// purge, the cutoff and the number of rows removed.
type AnalysisDeletedEvent struct {
	EventType  string     `json:"event_type"`
	AnalysisID string     `json:"analysis_id,omitempty"`
	Before     *time.Time `json:"before,omitempty"`
	Count      int64      `json:"count"`
	Timestamp  time.Time  `json:"timestamp"`
}

type IndustryUpdatedEvent struct {
	EventType string    `json:"event_type"`
	Industry  string    `json:"industry"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

type RabbitPublisher struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	enabled      bool
	logger       *log.Logger
}

func NewRabbitPublisher(uri, exchange string, logger *log.Logger) (*RabbitPublisher, error) {
	if logger == nil {
		logger = log.Default()
	}
	if uri == "" {
		logger.Printf("[Events] RabbitMQ URL is empty, event publishing is disabled")
		return &RabbitPublisher{enabled: false, logger: logger}, nil
	}

	conn, err := amqp091.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &RabbitPublisher{
		conn:         conn,
		channel:      channel,
		exchangeName: exchange,
		enabled:      true,
		logger:       logger,
	}, nil
}

func (p *RabbitPublisher) Enabled() bool {
	return p != nil && p.enabled
}

// Ping reports whether the broker connection is still open.
func (p *RabbitPublisher) Ping(_ context.Context) error {
	if !p.Enabled() {
		return errors.New("rabbitmq disabled")
	}
	if p.conn == nil || p.conn.IsClosed() {
		return errors.New("rabbitmq connection closed")
	}
	return nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, routingKey string, event any) error {
	if !p.Enabled() {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(
		pubCtx,
		p.exchangeName,
		routingKey,
		false,
		false,
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Printf("[Events] published | routing_key=%s bytes=%d", routingKey, len(body))
	return nil
}

func (p *RabbitPublisher) Close() error {
	if !p.Enabled() {
		return nil
	}
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
