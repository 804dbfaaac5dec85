package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"

	"gradely/internal/shared/config"
	"gradely/pkg/logger"
)

// Producer publishes audit events. Publishing is best-effort from the
// caller's point of view: auth flows log failures and carry on rather than
// failing the request.
type Producer interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// kafkaProducer publishes audit events to a single Kafka topic.
type kafkaProducer struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

// NewKafkaProducer creates a synchronous Kafka producer for the audit topic.
func NewKafkaProducer(cfg config.KafkaConfig) (Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Timeout = 10 * time.Second
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1

	// Hash partitioner keeps one actor's events on one partition.
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &kafkaProducer{
		producer: producer,
		topic:    cfg.AuditTopic,
		log:      logger.GetDefault(),
	}, nil
}

func (p *kafkaProducer) Publish(ctx context.Context, event *Event) error {
	payload, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(event.PartitionKey()),
		Value:     sarama.ByteEncoder(payload),
		Timestamp: event.CreatedAt,
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.Type)},
		},
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to publish audit event: %w", err)
	}

	p.log.DebugContext(ctx, "Audit event published",
		slog.String("event_id", event.ID),
		slog.String("event_type", string(event.Type)),
		slog.Int64("partition", int64(partition)),
		slog.Int64("offset", offset),
	)
	return nil
}

func (p *kafkaProducer) Close() error {
	return p.producer.Close()
}

// nopProducer drops events; used when the audit stream is not configured.
type nopProducer struct{}

// NewNopProducer returns a producer that discards every event.
func NewNopProducer() Producer { return nopProducer{} }

func (nopProducer) Publish(context.Context, *Event) error { return nil }
func (nopProducer) Close() error                          { return nil }
