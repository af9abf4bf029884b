package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/trogers1052/finance-tracker/internal/models"
)

// Producer handles publishing ledger events to Kafka
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer creates a new Kafka producer
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}

	return &Producer{
		writer: writer,
		topic:  topic,
	}
}

// PublishHoldingAdded publishes a holding created event
func (p *Producer) PublishHoldingAdded(ctx context.Context, holding *models.Holding) error {
	event := models.LedgerEvent{
		EventType: models.EventHoldingAdded,
		UserID:    holding.UserID,
		Symbol:    holding.Symbol,
		Holding:   holding,
		Timestamp: time.Now(),
	}
	return p.publish(ctx, holding.Symbol, event)
}

// PublishHoldingUpdated publishes a holding merged/updated event
func (p *Producer) PublishHoldingUpdated(ctx context.Context, holding *models.Holding) error {
	event := models.LedgerEvent{
		EventType: models.EventHoldingUpdated,
		UserID:    holding.UserID,
		Symbol:    holding.Symbol,
		Holding:   holding,
		Timestamp: time.Now(),
	}
	return p.publish(ctx, holding.Symbol, event)
}

// PublishHoldingRemoved publishes a holding removed event
func (p *Producer) PublishHoldingRemoved(ctx context.Context, userID int, symbol string) error {
	event := models.LedgerEvent{
		EventType: models.EventHoldingRemoved,
		UserID:    userID,
		Symbol:    symbol,
		Timestamp: time.Now(),
	}
	return p.publish(ctx, symbol, event)
}

// PublishTransactionRecorded publishes a transaction appended event
func (p *Producer) PublishTransactionRecorded(ctx context.Context, transaction *models.Transaction) error {
	event := models.LedgerEvent{
		EventType:   models.EventTransactionRecorded,
		UserID:      transaction.UserID,
		Symbol:      transaction.Symbol,
		Transaction: transaction,
		Timestamp:   time.Now(),
	}
	return p.publish(ctx, transaction.Symbol, event)
}

func (p *Producer) publish(ctx context.Context, key string, event models.LedgerEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	return nil
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	return p.writer.Close()
}
