package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"kafka-bridge/config"

	"github.com/twmb/franz-go/pkg/kgo"
)

var errInvalidOffset = errors.New("invalid offset")

// DefaultGroup is the fixed consumer group identity. Running several
// consumer instances against the same topic distributes partitions across
// them per standard consumer-group semantics.
const DefaultGroup = "kafka-learn-consumer-group"

const (
	pollTimeout        = 1 * time.Second
	autoCommitInterval = 1 * time.Second
)

// ConsumerConfig is the configuration for the consumer loop.
type ConsumerConfig struct {
	Profile config.Profile
	Topic   string
	Group   string
}

// Consumer polls one topic until its context is cancelled. Offsets
// auto-commit on a fixed interval rather than per record, so delivery is
// at-least-once: a crash between consumption and the next commit causes
// redelivery on restart. That window is accepted, not a bug.
type Consumer struct {
	client  *kgo.Client
	printer *Printer
	topic   string
}

// NewConsumer creates a consumer that owns its connection exclusively for
// the whole run.
func NewConsumer(cfg ConsumerConfig, printer *Printer) (*Consumer, error) {
	if strings.TrimSpace(cfg.Topic) == "" {
		return nil, ErrEmptyTopic
	}

	if len(cfg.Profile.Brokers) == 0 {
		return nil, ErrEmptyBrokersList
	}

	group := cfg.Group
	if group == "" {
		group = DefaultGroup
	}

	offset, err := parseOffset(cfg.Profile.OffsetReset)
	if err != nil {
		return nil, fmt.Errorf("parse offset: %w", err)
	}

	opts := append(profileOpts(cfg.Profile),
		kgo.ClientID("kafka-bridge-consumer"),
		kgo.ConsumerGroup(group),
		kgo.ConsumeTopics(cfg.Topic),
		kgo.ConsumeResetOffset(offset),
		kgo.AutoCommitInterval(autoCommitInterval),
	)

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create franz-go consumer client: %w", err)
	}

	return &Consumer{
		client:  client,
		printer: printer,
		topic:   cfg.Topic,
	}, nil
}

// Run polls until ctx is cancelled. Per-poll and per-record failures are
// logged and the loop keeps going; only cancellation stops it. The
// connection is released on every exit path.
func (c *Consumer) Run(ctx context.Context) error {
	defer c.client.Close()

	for {
		select {
		case <-ctx.Done():
			slog.Info("consumer context cancelled, stopping",
				slog.String("topic", c.topic),
				slog.Int("consumed", c.printer.Count()),
			)

			return fmt.Errorf("context error: %w", ctx.Err())
		default:
		}

		// Bounded wait per cycle; an empty poll is not an error.
		pollCtx, cancel := context.WithTimeout(ctx, pollTimeout)
		fetches := c.client.PollFetches(pollCtx)

		cancel()

		if fetches.IsClientClosed() {
			return fmt.Errorf("context error: %w", context.Canceled)
		}

		for _, fetchErr := range fetches.Errors() {
			if errors.Is(fetchErr.Err, context.DeadlineExceeded) || errors.Is(fetchErr.Err, context.Canceled) {
				continue
			}

			slog.Error("fetch error",
				slog.String("topic", fetchErr.Topic),
				slog.Int("partition", int(fetchErr.Partition)),
				slog.String("error", fetchErr.Err.Error()),
			)
			// Keep polling, there might be healthy partitions
		}

		// Render records in the order the transport returned them
		iter := fetches.RecordIter()
		for !iter.Done() {
			record := iter.Next()

			c.printer.Print(Record{
				Topic:     record.Topic,
				Partition: record.Partition,
				Offset:    record.Offset,
				Value:     record.Value,
			})
		}
	}
}

// Count returns the number of records rendered so far.
func (c *Consumer) Count() int {
	return c.printer.Count()
}

// parseOffset parses the profile's offset-reset policy into a kgo.Offset.
func parseOffset(offset string) (kgo.Offset, error) {
	switch strings.ToLower(offset) {
	case "", "latest", "newest":
		return kgo.NewOffset().AtEnd(), nil
	case "earliest", "oldest":
		return kgo.NewOffset().AtStart(), nil
	default:
		return kgo.Offset{}, fmt.Errorf("%w: %s", errInvalidOffset, offset)
	}
}
