//go:build integration

package testhelpers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"
)

// SetupKafkaContainer starts a Kafka-compatible container for integration
// testing. Uses RedPanda, which speaks the Kafka protocol and starts faster
// than Kafka itself. Returns the broker address with a randomly assigned
// port so tests can run in parallel.
func SetupKafkaContainer(t *testing.T) (string, func()) {
	t.Helper()

	redpandaContainer, err := redpanda.Run(t.Context(),
		"docker.redpanda.com/redpandadata/redpanda:v24.2.4",
	)
	require.NoError(t, err, "failed to start RedPanda container")

	brokerAddr, err := redpandaContainer.KafkaSeedBroker(t.Context())
	require.NoError(t, err, "failed to get broker address")

	cleanup := func() {
		if err := redpandaContainer.Terminate(t.Context()); err != nil {
			t.Logf("failed to terminate RedPanda container: %v", err)
		}
	}

	return brokerAddr, cleanup
}

// CreateTestTopic creates a topic with the specified number of partitions.
func CreateTestTopic(t *testing.T, brokerAddr, topic string, partitions int32) {
	t.Helper()

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokerAddr),
		kgo.RequestTimeoutOverhead(DefaultTestTimeout),
	)
	require.NoError(t, err, "failed to create Kafka admin client")

	defer client.Close()

	admin := kadm.NewClient(client)

	ctx, cancel := context.WithTimeout(t.Context(), DefaultTestTimeout)
	defer cancel()

	resp, err := admin.CreateTopics(ctx, partitions, 1, nil, topic)
	require.NoError(t, err, "failed to create topic %s", topic)

	for _, ctr := range resp {
		require.NoError(t, ctr.Err, "topic %s creation failed: %s", ctr.Topic, ctr.ErrMessage)
	}
}

// TestRecord represents a consumed message for testing.
type TestRecord struct {
	Key       []byte
	Value     []byte
	Topic     string
	Partition int32
	Offset    int64
}

// ConsumeTestMessages consumes count messages from a topic, reading from the
// start, with a deadline.
func ConsumeTestMessages(t *testing.T, brokerAddr, topic string, count int, timeout time.Duration) []TestRecord {
	t.Helper()

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokerAddr),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err, "failed to create consumer client for topic %s", topic)

	defer client.Close()

	ctx, cancel := context.WithTimeout(t.Context(), timeout)
	defer cancel()

	var records []TestRecord

	for len(records) < count {
		fetches := client.PollFetches(ctx)
		require.NoError(t, ctx.Err(), "timed out waiting for messages, got %d of %d", len(records), count)

		fetches.EachRecord(func(r *kgo.Record) {
			records = append(records, TestRecord{
				Key:       r.Key,
				Value:     r.Value,
				Topic:     r.Topic,
				Partition: r.Partition,
				Offset:    r.Offset,
			})
		})
	}

	return records
}
