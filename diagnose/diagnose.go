// Package diagnose probes broker reachability: a raw TCP dial, a TLS
// handshake, then a fixed list of client-configuration variants that each
// try to fetch topic metadata. It identifies which configuration works
// against a given endpoint; it is not a transport for production use.
package diagnose

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/kversion"
)

const (
	defaultDialTimeout     = 5 * time.Second
	defaultMetadataTimeout = 10 * time.Second

	sampleTopicLimit = 5

	extendedTimeout = 10 * time.Second
)

// Variant names, in the order they are attempted.
const (
	VariantPlaintext        = "PLAINTEXT (version negotiation)"
	VariantPinnedVersion    = "PLAINTEXT (pinned legacy protocol)"
	VariantExtendedTimeouts = "PLAINTEXT (extended timeouts)"
	VariantTLS              = "SSL"
)

// Diagnostic runs the probe sequence. Timeouts are configurable for tests;
// the zero value of each field means the default bound.
type Diagnostic struct {
	DialTimeout     time.Duration
	MetadataTimeout time.Duration
}

func New() *Diagnostic {
	return &Diagnostic{
		DialTimeout:     defaultDialTimeout,
		MetadataTimeout: defaultMetadataTimeout,
	}
}

// Run executes the probe sequence against host:port. A TCP failure aborts
// everything downstream; a TLS failure only gates the SSL variant; variant
// attempts are independent of each other. No probe is retried.
func (d *Diagnostic) Run(ctx context.Context, host string, port int) Report {
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	report := Report{ //nolint:exhaustruct
		Host: host,
		Port: port,
	}

	if err := d.probeTCP(addr); err != nil {
		report.TCPErr = err

		return report
	}

	report.TCPOK = true

	if err := d.probeTLS(ctx, addr); err != nil {
		report.TLSErr = err
	} else {
		report.TLSOK = true
	}

	for _, variant := range variants(report.TLSOK) {
		report.Variants = append(report.Variants, d.tryVariant(ctx, addr, variant))
	}

	return report
}

func (d *Diagnostic) dialTimeout() time.Duration {
	if d.DialTimeout > 0 {
		return d.DialTimeout
	}

	return defaultDialTimeout
}

func (d *Diagnostic) metadataTimeout() time.Duration {
	if d.MetadataTimeout > 0 {
		return d.MetadataTimeout
	}

	return defaultMetadataTimeout
}

func (d *Diagnostic) probeTCP(addr string) error {
	conn, err := net.DialTimeout("tcp", addr, d.dialTimeout())
	if err != nil {
		return fmt.Errorf("tcp connect: %w", err)
	}

	_ = conn.Close()

	return nil
}

// probeTLS only answers "does a handshake complete"; certificate and
// hostname checks are deliberately off. Never reuse this config for a real
// transport.
func (d *Diagnostic) probeTLS(ctx context.Context, addr string) error {
	dialer := tls.Dialer{
		NetDialer: &net.Dialer{Timeout: d.dialTimeout()}, //nolint:exhaustruct
		Config: &tls.Config{ //nolint:exhaustruct
			InsecureSkipVerify: true, //nolint:gosec // diagnostic-only probe
		},
	}

	ctx, cancel := context.WithTimeout(ctx, d.dialTimeout())
	defer cancel()

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("tls handshake: %w", err)
	}

	_ = conn.Close()

	return nil
}

type variant struct {
	name string
	opts []kgo.Opt
}

func variants(tlsOK bool) []variant {
	list := []variant{
		{
			name: VariantPlaintext,
			opts: nil,
		},
		{
			name: VariantPinnedVersion,
			opts: []kgo.Opt{kgo.MaxVersions(kversion.V0_10_0())},
		},
		{
			name: VariantExtendedTimeouts,
			opts: []kgo.Opt{
				kgo.DialTimeout(extendedTimeout),
				kgo.RequestTimeoutOverhead(extendedTimeout),
				kgo.RetryTimeout(extendedTimeout),
			},
		},
	}

	if tlsOK {
		list = append(list, variant{
			name: VariantTLS,
			opts: []kgo.Opt{
				kgo.DialTLSConfig(&tls.Config{ //nolint:exhaustruct
					InsecureSkipVerify: true, //nolint:gosec // diagnostic-only probe
				}),
			},
		})
	}

	return list
}

// tryVariant opens a one-shot client with the variant's options and asks the
// broker for its topic listing. Every failure stays inside this attempt.
func (d *Diagnostic) tryVariant(ctx context.Context, addr string, v variant) VariantResult {
	result := VariantResult{ //nolint:exhaustruct
		Name: v.name,
	}

	opts := append([]kgo.Opt{
		kgo.SeedBrokers(addr),
		kgo.ClientID("kafka-bridge-diagnose"),
	}, v.opts...)

	client, err := kgo.NewClient(opts...)
	if err != nil {
		result.Err = fmt.Errorf("create client: %w", err)

		return result
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, d.metadataTimeout())
	defer cancel()

	topics, err := kadm.NewClient(client).ListTopics(ctx)
	if err != nil {
		result.Err = fmt.Errorf("list topics: %w", err)

		return result
	}

	names := topics.Names()

	result.TopicCount = len(names)

	if len(names) > sampleTopicLimit {
		names = names[:sampleTopicLimit]
	}

	result.SampleTopics = names

	return result
}
