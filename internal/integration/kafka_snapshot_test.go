//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sensori-ai/farm-sectors/internal/adapter/kafka"
	"github.com/sensori-ai/farm-sectors/internal/adapter/source"
	"github.com/sensori-ai/farm-sectors/internal/config"
	"github.com/sensori-ai/farm-sectors/internal/domain"
	"github.com/sensori-ai/farm-sectors/internal/observability"
	"github.com/sensori-ai/farm-sectors/internal/pipeline"
)

const testSinkTopic = "test-farm-sector-snapshots"

// publishedSnapshot holds a deserialized message read from the sink topic.
type publishedSnapshot struct {
	Snapshot domain.Snapshot
	Key      string
	Headers  map[string]string
}

func readSnapshot(ctx context.Context, t *testing.T, consumer *kafkago.Reader) publishedSnapshot {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sink topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal(msg.Value, &snap), "unmarshal sink message")

	return publishedSnapshot{Snapshot: snap, Key: string(msg.Key), Headers: headers}
}

// TestPipelinePublishesSnapshots runs every mock category through the
// pipeline with a real broker and checks one snapshot arrives per category.
func TestPipelinePublishesSnapshots(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSinkTopic)

	cfg := &config.Config{
		KafkaEnabled:   true,
		KafkaBrokers:   []string{broker},
		KafkaSinkTopic: testSinkTopic,
	}
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	src := source.NewFileSource(filepath.Join("..", "..", "data", "mock"), map[domain.Category]string{
		domain.CategoryWeed:    "ervas-daninhas.json",
		domain.CategoryFailure: "falhas.json",
		domain.CategoryVigor:   "vigor.json",
	})
	p := pipeline.New(src, pipeline.NewTransformer(discardLogger()), writer,
		domain.Categories(), discardLogger(), observability.NewMetricsForTesting())

	results, err := p.ProcessAll(ctx)
	require.NoError(t, err)
	require.Len(t, results, 3)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	received := make(map[string]publishedSnapshot)
	for len(received) < len(results) {
		ps := readSnapshot(ctx, t, consumer)
		received[ps.Key] = ps
	}

	for _, res := range results {
		ps, ok := received[string(res.Category)]
		require.True(t, ok, "missing snapshot for %s", res.Category)

		assert.Equal(t, string(res.Category), ps.Headers["category"])
		_, err := time.Parse(time.RFC3339, ps.Headers["generated_at"])
		assert.NoError(t, err, "generated_at should be valid RFC3339")

		assert.Equal(t, res.Category, ps.Snapshot.Category)
		assert.Equal(t, res.TotalArea, ps.Snapshot.TotalArea)
		assert.Equal(t, res.Sectors, ps.Snapshot.Sectors)
		assert.Len(t, ps.Snapshot.Polygons, len(res.Polygons))
	}
}

// TestPipelineBrokerDownStillServes verifies that a failing sink never
// degrades the aggregation result.
func TestPipelineBrokerDownStillServes(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := &config.Config{KafkaBrokers: []string{"127.0.0.1:1"}, KafkaSinkTopic: testSinkTopic}
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	src := source.NewFileSource(filepath.Join("..", "..", "data", "mock"), map[domain.Category]string{
		domain.CategoryWeed: "ervas-daninhas.json",
	})
	metrics := observability.NewMetricsForTesting()
	p := pipeline.New(src, pipeline.NewTransformer(discardLogger()), writer,
		[]domain.Category{domain.CategoryWeed}, discardLogger(), metrics)

	publishCtx, publishCancel := context.WithTimeout(ctx, 5*time.Second)
	defer publishCancel()

	res, err := p.Process(publishCtx, domain.CategoryWeed)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Sectors)
}
