package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Transport submits one record and waits for the broker acknowledgment.
type Transport interface {
	Produce(ctx context.Context, record *kgo.Record) error
}

// Receipt is the delivery confirmation returned by a successful send.
type Receipt struct {
	Topic     string
	Partition int32
	Offset    int64
	Envelope  Envelope
}

// Producer wraps fire-and-forget submission plus asynchronous acknowledgment
// into one blocking call: submit, then wait for confirmation under a bounded
// flush timeout. It does not retry and does not batch across calls; each
// call is exactly one attempted send.
type Producer struct {
	transport   Transport
	environment string
	timeout     time.Duration
}

const defaultFlushTimeout = 10 * time.Second

// NewProducer creates a producer facade on top of a shared transport.
// environment is the resolved profile name echoed in every envelope.
func NewProducer(transport Transport, environment string) *Producer {
	return NewProducerWithTimeout(transport, environment, defaultFlushTimeout)
}

// NewProducerWithTimeout creates a producer facade with a given flush timeout.
func NewProducerWithTimeout(transport Transport, environment string, timeout time.Duration) *Producer {
	return &Producer{
		transport:   transport,
		environment: environment,
		timeout:     timeout,
	}
}

// SendMessage validates the inputs, wraps the message into an envelope and
// produces it synchronously. It returns once the broker confirms delivery or
// the flush timeout elapses. Retry policy, if any, is the caller's concern.
func (p *Producer) SendMessage(ctx context.Context, topic, message string) (Receipt, error) {
	if strings.TrimSpace(topic) == "" {
		return Receipt{}, ErrEmptyTopic
	}

	if strings.TrimSpace(message) == "" {
		return Receipt{}, ErrEmptyMessage
	}

	envelope := Envelope{
		Message:     message,
		Timestamp:   time.Now().Format(time.RFC3339),
		Environment: p.environment,
	}

	value, err := json.Marshal(envelope)
	if err != nil {
		return Receipt{}, fmt.Errorf("encode envelope: %w", err)
	}

	record := &kgo.Record{ //nolint:exhaustruct
		Topic: topic,
		Key:   []byte(uuid.NewString()),
		Value: value,
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.transport.Produce(ctx, record); err != nil {
		return Receipt{}, fmt.Errorf("send message: %w", err)
	}

	return Receipt{
		Topic:     record.Topic,
		Partition: record.Partition,
		Offset:    record.Offset,
		Envelope:  envelope,
	}, nil
}

// GetTimeout returns the flush timeout.
func (p *Producer) GetTimeout() time.Duration {
	return p.timeout
}
