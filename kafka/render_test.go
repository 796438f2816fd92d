package kafka_test

import (
	"bytes"
	"testing"

	"kafka-bridge/kafka"

	"github.com/stretchr/testify/assert"
)

func TestPrinter_Print_Envelope(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	printer := kafka.NewPrinter(&out)

	printer.Print(kafka.Record{
		Topic:     "payments",
		Partition: 0,
		Offset:    7,
		Value:     []byte(`{"message":"hello","timestamp":"2024-05-01T12:00:00Z","environment":"local"}`),
	})

	assert.Equal(t, 1, printer.Count())
	assert.Contains(t, out.String(), "Message #1")
	assert.Contains(t, out.String(), "Topic: payments")
	assert.Contains(t, out.String(), "Offset: 7")
	assert.Contains(t, out.String(), "Timestamp: 2024-05-01T12:00:00Z")
	assert.Contains(t, out.String(), "Environment: local")
	assert.Contains(t, out.String(), "Content: hello")
}

func TestPrinter_Print_RawFallback(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	printer := kafka.NewPrinter(&out)

	// Must not panic and must count exactly once
	printer.Print(kafka.Record{
		Topic:     "payments",
		Partition: 1,
		Offset:    3,
		Value:     []byte("plain text"),
	})

	assert.Equal(t, 1, printer.Count())
	assert.Contains(t, out.String(), "Content: plain text")
	assert.NotContains(t, out.String(), "Environment:")
}

func TestPrinter_Print_EnvelopeWithMissingKeys(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	printer := kafka.NewPrinter(&out)

	printer.Print(kafka.Record{
		Topic: "payments",
		Value: []byte(`{"message":"only message"}`),
	})

	assert.Contains(t, out.String(), "Timestamp: N/A")
	assert.Contains(t, out.String(), "Environment: N/A")
	assert.Contains(t, out.String(), "Content: only message")
}

func TestPrinter_CountAcrossRecords(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	printer := kafka.NewPrinter(&out)

	printer.Print(kafka.Record{Topic: "t", Value: []byte(`{"message":"a"}`)})
	printer.Print(kafka.Record{Topic: "t", Value: []byte("not json")})
	printer.Print(kafka.Record{Topic: "t", Value: []byte(`{"message":"b"}`)})

	assert.Equal(t, 3, printer.Count())
	assert.Contains(t, out.String(), "Message #2")
	assert.Contains(t, out.String(), "Message #3")
}
