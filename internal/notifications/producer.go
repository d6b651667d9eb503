package notifications

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"hawabodol/internal/bookings"
	"hawabodol/internal/shared/config"
	"hawabodol/pkg/logger"
)

// EventProducer publishes booking lifecycle events to the event stream.
type EventProducer interface {
	PublishBookingEvent(event bookings.BookingEvent) error
	Close() error
}

// KafkaEventProducer publishes booking events to Kafka using a synchronous,
// idempotent producer. Messages are keyed by package so all events for one
// package land on the same partition in order.
type KafkaEventProducer struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

func NewKafkaEventProducer(cfg config.KafkaConfig) (*KafkaEventProducer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Retry.Max = cfg.ProducerRetryMax
	saramaConfig.Producer.Timeout = time.Duration(cfg.ProducerTimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &KafkaEventProducer{
		producer: producer,
		topic:    cfg.BookingTopic,
		log:      logger.GetDefault(),
	}, nil
}

func (p *KafkaEventProducer) PublishBookingEvent(event bookings.BookingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.PackageID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.Type)},
			{Key: []byte("booking_id"), Value: []byte(event.BookingID)},
			{Key: []byte("occurred_at"), Value: []byte(event.OccurredAt.Format(time.RFC3339))},
		},
		Timestamp: event.OccurredAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to publish booking event: %w", err)
	}

	p.log.Debug("booking event published",
		"topic", p.topic,
		"partition", partition,
		"offset", offset,
		"type", event.Type,
	)
	return nil
}

func (p *KafkaEventProducer) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
