package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/Shopify/sarama"
	"github.com/google/uuid"

	"github.com/polkiloo/pharmadash/internal/domain/model"
)

// Publisher announces accepted order status changes to external consumers.
type Publisher interface {
	PublishStatusChange(ctx context.Context, change model.StatusChange) error
	Close() error
}

// StatusChangedEvent is the JSON document written to the topic.
type StatusChangedEvent struct {
	EventID     string    `json:"eventId"`
	Type        string    `json:"type"`
	OrderID     int64     `json:"orderId"`
	WarehouseID int64     `json:"warehouseId"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	WireStatus  int       `json:"wireStatus"`
	ChangedBy   int64     `json:"changedBy"`
	ChangedAt   time.Time `json:"changedAt"`
}

const statusChangedType = "order.status_changed"

// KafkaPublisher writes status change events through a sarama SyncProducer.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
	newID    func() string
}

// NewKafkaPublisher connects a synchronous producer to the brokers.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) (*KafkaPublisher, error) {
	producer, err := sarama.NewSyncProducer(brokers, producerConfig())
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return newKafkaPublisher(producer, topic, logger), nil
}

func newKafkaPublisher(producer sarama.SyncProducer, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
		newID:    func() string { return uuid.NewString() },
	}
}

func producerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Retry.Backoff = 250 * time.Millisecond
	cfg.Producer.Return.Successes = true
	cfg.Producer.Timeout = 5 * time.Second
	return cfg
}

// PublishStatusChange sends the change keyed by order id so that events of a
// single order stay on one partition.
func (p *KafkaPublisher) PublishStatusChange(ctx context.Context, change model.StatusChange) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	event := StatusChangedEvent{
		EventID:     p.newID(),
		Type:        statusChangedType,
		OrderID:     change.OrderID,
		WarehouseID: change.WarehouseID,
		From:        string(change.From),
		To:          string(change.To),
		WireStatus:  change.To.WireValue(),
		ChangedBy:   change.ChangedBy,
		ChangedAt:   change.ChangedAt,
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode status event: %w", err)
	}

	key := strconv.FormatInt(change.OrderID, 10)
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(statusChangedType)},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.logger.Error("failed to publish status event",
			slog.String("topic", p.topic),
			slog.String("key", key),
			slog.Any("error", err),
		)
		return fmt.Errorf("publish status event: %w", err)
	}

	p.logger.Debug("status event published",
		slog.String("event_id", event.EventID),
		slog.String("topic", p.topic),
		slog.Int("partition", int(partition)),
		slog.Int64("offset", offset),
	)
	return nil
}

// Close flushes and closes the producer.
func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// NopPublisher drops events. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishStatusChange(context.Context, model.StatusChange) error { return nil }

func (NopPublisher) Close() error { return nil }
