package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"CommentsAnalyzer/internal/domain"
	"CommentsAnalyzer/internal/ports"
)

// Event types written to the topic.
const (
	TypeStored  = "record.stored"
	TypeDeleted = "record.deleted"
)

// Envelope is the JSON message value. Record is set for stored events only.
type Envelope struct {
	ID         string             `json:"id"`
	Type       string             `json:"type"`
	RecordID   string             `json:"recordId"`
	OccurredAt time.Time          `json:"occurredAt"`
	Record     *domain.NewsRecord `json:"record,omitempty"`
}

// KafkaPublisher emits record lifecycle events keyed by record id.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	now      func() time.Time
}

var _ ports.EventPublisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher connects a synchronous producer to brokers.
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V3_6_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return NewPublisherWithProducer(producer, topic), nil
}

// NewPublisherWithProducer wraps an existing producer.
func NewPublisherWithProducer(producer sarama.SyncProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, now: time.Now}
}

// PublishStored sends the full record.
func (p *KafkaPublisher) PublishStored(ctx context.Context, record domain.NewsRecord) error {
	return p.send(ctx, Envelope{
		Type:     TypeStored,
		RecordID: record.Article.ID,
		Record:   &record,
	})
}

// PublishDeleted sends a tombstone-style event carrying only the id.
func (p *KafkaPublisher) PublishDeleted(ctx context.Context, id string) error {
	return p.send(ctx, Envelope{Type: TypeDeleted, RecordID: id})
}

func (p *KafkaPublisher) send(ctx context.Context, env Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env.ID = uuid.NewString()
	env.OccurredAt = p.now().UTC()

	value, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(env.RecordID),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(env.Type)},
		},
	}
	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("send %s event: %w", env.Type, err)
	}
	return nil
}

// Close flushes and closes the producer.
func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
