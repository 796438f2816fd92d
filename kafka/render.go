package kafka

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Record is one consumed message with its position in the topic.
type Record struct {
	Topic     string
	Partition int32
	Offset    int64
	Value     []byte
}

// Printer renders consumed records as human-readable blocks and keeps a
// running count. Payloads that decode as envelopes are rendered field by
// field; everything else falls back to raw text.
type Printer struct {
	out   io.Writer
	mu    sync.Mutex // Count is read while the loop is still printing
	count int
}

const separator = "------------------------------------------------------------"

func NewPrinter(out io.Writer) *Printer {
	return &Printer{ //nolint:exhaustruct
		out: out,
	}
}

// Print renders one record and increments the counter exactly once,
// whichever rendering path is taken.
func (p *Printer) Print(record Record) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.count++

	fmt.Fprintf(p.out, "Message #%d\n", p.count)
	fmt.Fprintf(p.out, "   Topic: %s\n", record.Topic)
	fmt.Fprintf(p.out, "   Partition: %d\n", record.Partition)
	fmt.Fprintf(p.out, "   Offset: %d\n", record.Offset)

	if envelope, ok := DecodeEnvelope(record.Value); ok {
		fmt.Fprintf(p.out, "   Timestamp: %s\n", orNA(envelope.Timestamp))
		fmt.Fprintf(p.out, "   Environment: %s\n", orNA(envelope.Environment))
		fmt.Fprintf(p.out, "   Content: %s\n", orNA(envelope.Message))
	} else {
		fmt.Fprintf(p.out, "   Content: %s\n", string(record.Value))
	}

	fmt.Fprintln(p.out, separator)
}

// Count returns the number of records rendered so far.
func (p *Printer) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.count
}

func orNA(value string) string {
	if strings.TrimSpace(value) == "" {
		return "N/A"
	}

	return value
}
