package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/accident-severity-etl/internal/config"
	"github.com/couchcryptid/accident-severity-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes processed records to a Kafka topic, one JSON message per row.
// It implements pipeline.Loader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Load serializes every exported record and publishes them in one
// WriteMessages call; kafka-go splits the call into broker batches.
func (w *Writer) Load(ctx context.Context, fs domain.FeatureSet) error {
	if len(fs.Records) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(fs.Records))
	for i := range fs.Records {
		msg, err := serializeToMessage(fs.Records[i], fs.RunID)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish records: %w", err)
	}
	w.logger.Info("records published", "topic", w.writer.Topic, "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a ProcessedRecord into a Kafka message keyed by
// the source ID so replays of the same run land on the same partition.
func serializeToMessage(rec domain.ProcessedRecord, runID string) (kafkago.Message, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize processed record: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(rec.SourceID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "city_state", Value: []byte(rec.CityState)},
			{Key: "run_id", Value: []byte(runID)},
			{Key: "processed_at", Value: []byte(rec.ProcessedAt.Format(time.RFC3339))},
		},
	}, nil
}
