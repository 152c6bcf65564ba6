package leads

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"marsa/pkg/config"
	"marsa/pkg/errors"
	"marsa/pkg/model"
)

// KafkaWriter publishes lead rows as JSON events, keyed by contact so
// one guest's leads land on one partition in order.
type KafkaWriter struct {
	writer *kafka.Writer
}

func NewKafkaWriter(cfg *config.Config) (*KafkaWriter, error) {
	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.InvalidInput("kafka sink requires at least one broker")
	}
	return &KafkaWriter{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.KafkaBrokers...),
			Topic:        cfg.KafkaLeadsTopic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			BatchTimeout: 50 * time.Millisecond,
		},
	}, nil
}

func (w *KafkaWriter) Write(ctx context.Context, record model.LeadRecord) error {
	value, err := json.Marshal(record)
	if err != nil {
		return errors.Internal("lead marshal failed", err)
	}
	msg := kafka.Message{
		Key:   []byte(record.Contact),
		Value: value,
		Headers: []kafka.Header{
			{Key: "intent", Value: []byte(record.Intent)},
		},
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return errors.Internal("lead publish failed", err)
	}
	return nil
}

func (w *KafkaWriter) Close() error {
	return w.writer.Close()
}
