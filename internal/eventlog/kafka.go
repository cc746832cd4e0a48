// Package eventlog appends order events to a Kafka topic for downstream consumers.
package eventlog

import (
	"context"
	"encoding/json"
	"fmt"

	"eats/internal/pubsub"

	"github.com/Shopify/sarama"
)

// KafkaRecorder writes every published order event to a Kafka topic, keyed by order id.
type KafkaRecorder struct {
	producer sarama.SyncProducer
	topic    string
}

type record struct {
	Type      pubsub.Topic `json:"type"`
	OrderID   string       `json:"orderId"`
	Status    string       `json:"status"`
	Timestamp int64        `json:"timestamp"`
	Order     interface{}  `json:"order"`
}

// NewKafkaProducer connects a synchronous producer to brokers.
func NewKafkaProducer(brokers []string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForLocal
	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return producer, nil
}

func NewKafkaRecorder(producer sarama.SyncProducer, topic string) *KafkaRecorder {
	return &KafkaRecorder{producer: producer, topic: topic}
}

// Publish records event.
func (r *KafkaRecorder) Publish(_ context.Context, event pubsub.Event) error {
	if event.Order == nil {
		return nil
	}
	data, err := json.Marshal(record{
		Type:      event.Topic,
		OrderID:   event.Order.ID,
		Status:    string(event.Order.Status),
		Timestamp: event.At.Unix(),
		Order:     event.Order,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal %s record: %w", event.Topic, err)
	}

	_, _, err = r.producer.SendMessage(&sarama.ProducerMessage{
		Topic: r.topic,
		Key:   sarama.StringEncoder(event.Order.ID),
		Value: sarama.ByteEncoder(data),
	})
	if err != nil {
		return fmt.Errorf("failed to record %s event for order %s: %w", event.Topic, event.Order.ID, err)
	}
	return nil
}

// Close closes the underlying producer.
func (r *KafkaRecorder) Close() error {
	return r.producer.Close()
}
