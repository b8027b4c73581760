//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/couchcryptid/accident-severity-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/accident-severity-etl/internal/adapter/kafka"
	"github.com/couchcryptid/accident-severity-etl/internal/config"
	"github.com/couchcryptid/accident-severity-etl/internal/domain"
	"github.com/couchcryptid/accident-severity-etl/internal/observability"
	"github.com/couchcryptid/accident-severity-etl/internal/pipeline"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const testSinkTopic = "test-accident-features"

const rawCSV = `ID,Severity,Start_Time,City,State,Street,Weather_Condition,Temperature(F),Visibility(mi),Precipitation(in)
A-1,3,2017-03-04 15:10:00,Boston,MA,I-95 N,Light Rain,41,2.5,0.12
A-2,3,2017-03-04 15:10:00,Boston,MA,I-95 N,Light Rain,41,2.5,0.12
A-3,2,2016-12-25 09:00:00,Austin,TX,W 11th St,,70,,
A-4,4,2018-07-01 08:00:00,Austin,TX,Main Street,Clear,150,10,0
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	ctr, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0", tckafka.WithClusterID("accident-etl-test"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(ctr); err != nil {
			t.Logf("terminate kafka container: %v", err)
		}
	})

	brokers, err := ctr.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	cc, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer cc.Close()

	require.NoError(t, cc.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestPipelinePublishesFeatures runs the full CSV-to-Kafka path and reads the
// published feature records back from the sink topic.
func TestPipelinePublishesFeatures(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSinkTopic)

	dir := t.TempDir()
	in := filepath.Join(dir, "accidents.csv")
	out := filepath.Join(dir, "features.csv")
	require.NoError(t, os.WriteFile(in, []byte(rawCSV), 0o600))

	cfg := &config.Config{KafkaBrokers: []string{broker}, KafkaSinkTopic: testSinkTopic}
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	settings := pipeline.Settings{
		Window:     domain.WindowEarly,
		Bounds:     domain.CoreBounds(),
		Featurizer: domain.NewFeaturizer(domain.CoarseWeatherGrouper(), domain.DefaultRoadCascade()),
	}
	p := pipeline.New(
		csvfile.NewReader(in, discardLogger()),
		pipeline.MultiLoader{csvfile.NewWriter(out, discardLogger()), writer},
		settings,
		discardLogger(),
		observability.NewMetricsForTesting(),
	)

	report, err := p.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, report.OutputRows)
	assert.FileExists(t, out)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:   []string{broker},
		Topic:     testSinkTopic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  10e6,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	got := make(map[string]domain.ProcessedRecord)
	for range report.OutputRows {
		readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
		msg, err := consumer.ReadMessage(readCtx)
		readCancel()
		require.NoError(t, err, "read from sink topic")

		headers := make(map[string]string, len(msg.Headers))
		for _, h := range msg.Headers {
			headers[h.Key] = string(h.Value)
		}
		assert.Equal(t, report.RunID, headers["run_id"])

		var rec domain.ProcessedRecord
		require.NoError(t, json.Unmarshal(msg.Value, &rec))
		assert.Equal(t, string(msg.Key), rec.SourceID)
		assert.Equal(t, rec.CityState, headers["city_state"])
		got[rec.SourceID] = rec
	}

	require.Contains(t, got, "A-1")
	require.Contains(t, got, "A-3")
	assert.Equal(t, domain.SeverityHigh, got["A-1"].Severity)
	assert.Equal(t, domain.HighSpeed, got["A-1"].RoadSpeedClass)
	assert.Equal(t, domain.SeverityLow, got["A-3"].Severity)
	assert.Equal(t, domain.VisibilityUnknown, got["A-3"].VisibilityBucket)
	require.NotNil(t, got["A-3"].Precipitation)
	assert.Zero(t, *got["A-3"].Precipitation)
}
