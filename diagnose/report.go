package diagnose

import (
	"fmt"
	"io"
)

// VariantResult is the outcome of one configuration attempt.
type VariantResult struct {
	Name         string
	Err          error
	TopicCount   int
	SampleTopics []string
}

// OK reports whether the attempt succeeded.
func (r VariantResult) OK() bool {
	return r.Err == nil
}

// Report is the aggregate outcome of a diagnostic run.
type Report struct {
	Host     string
	Port     int
	TCPOK    bool
	TCPErr   error
	TLSOK    bool
	TLSErr   error
	Variants []VariantResult
}

// Succeeded returns the variants that worked, in attempt order.
func (r Report) Succeeded() []VariantResult {
	var ok []VariantResult

	for _, v := range r.Variants {
		if v.OK() {
			ok = append(ok, v)
		}
	}

	return ok
}

var troubleshootingChecklist = []string{
	"Check if Kafka is fully started: docker logs <kafka_container>",
	"Verify the port mapping: docker port <kafka_container>",
	"Check the Kafka broker configuration for listeners",
	"Try different ports (9093, 9094) if your Kafka uses a different mapping",
}

// Render writes the human-readable report.
func (r Report) Render(w io.Writer) {
	fmt.Fprintln(w, "Kafka Connection Diagnostic")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "\n1. TCP connection to %s:%d\n", r.Host, r.Port)

	if !r.TCPOK {
		fmt.Fprintf(w, "   FAILED: %v\n", r.TCPErr)
		fmt.Fprintln(w, "   Make sure Kafka is running and accessible on this port")

		return
	}

	fmt.Fprintln(w, "   OK")

	fmt.Fprintf(w, "\n2. TLS handshake with %s:%d\n", r.Host, r.Port)

	if r.TLSOK {
		fmt.Fprintln(w, "   OK")
	} else {
		fmt.Fprintf(w, "   FAILED: %v\n", r.TLSErr)
		fmt.Fprintln(w, "   (expected for a PLAINTEXT setup)")
	}

	fmt.Fprintln(w, "\n3. Configuration variants")

	for _, variant := range r.Variants {
		fmt.Fprintf(w, "\n   %s\n", variant.Name)

		if !variant.OK() {
			fmt.Fprintf(w, "      FAILED: %v\n", variant.Err)

			continue
		}

		fmt.Fprintf(w, "      OK: found %d topics\n", variant.TopicCount)

		for _, topic := range variant.SampleTopics {
			fmt.Fprintf(w, "      - %s\n", topic)
		}

		if variant.TopicCount == 0 {
			fmt.Fprintln(w, "      No topics yet (normal for a fresh setup)")
		}
	}

	fmt.Fprintln(w, "\nResults")
	fmt.Fprintln(w, "==================================================")

	succeeded := r.Succeeded()

	if len(succeeded) == 0 {
		fmt.Fprintln(w, "No working configurations found")
		fmt.Fprintln(w, "\nTroubleshooting:")

		for i, step := range troubleshootingChecklist {
			fmt.Fprintf(w, "   %d. %s\n", i+1, step)
		}

		return
	}

	fmt.Fprintln(w, "Working configurations:")

	for _, variant := range succeeded {
		fmt.Fprintf(w, "   - %s\n", variant.Name)
	}

	fmt.Fprintf(w, "\nRecommended: %s\n", succeeded[0].Name)
}
