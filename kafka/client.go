// Package kafka wraps the franz-go client behind the three operations this
// system needs: a synchronous produce facade with delivery confirmation, a
// consumer loop with at-least-once semantics, and a thin connection wrapper
// shared by both. The wire protocol, partitioning and consumer-group handling
// all stay inside franz-go.
package kafka

import (
	"context"
	"crypto/tls"
	"fmt"
	"os"

	"kafka-bridge/config"

	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/sasl/aws"
)

// Client is a basic wrapper around a franz-go client, configured from a
// resolved profile. One client per process; requests share it and never
// close it.
type Client struct {
	client  *kgo.Client
	profile config.Profile
}

// NewClient creates a client for the given profile.
func NewClient(profile config.Profile, clientID string) (*Client, error) {
	if len(profile.Brokers) == 0 {
		return nil, ErrEmptyBrokersList
	}

	opts := profileOpts(profile)

	if clientID != "" {
		opts = append(opts, kgo.ClientID(clientID))
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create franz-go client: %w", err)
	}

	return &Client{
		client:  client,
		profile: profile,
	}, nil
}

// profileOpts translates a profile into franz-go options. SASL credentials
// are passed through from the environment; this layer implements no auth
// protocol of its own.
func profileOpts(profile config.Profile) []kgo.Opt {
	opts := []kgo.Opt{
		kgo.SeedBrokers(profile.Brokers...),
	}

	if profile.SecurityProtocol == config.SecuritySASLSSL {
		opts = append(opts, kgo.DialTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12})) //nolint:exhaustruct

		if profile.SASLMechanism == config.MechanismAWSMSKIAM {
			opts = append(opts, kgo.SASL(aws.ManagedStreamingIAM(func(_ context.Context) (aws.Auth, error) {
				return aws.Auth{ //nolint:exhaustruct
					AccessKey:    os.Getenv("AWS_ACCESS_KEY_ID"),
					SecretKey:    os.Getenv("AWS_SECRET_ACCESS_KEY"),
					SessionToken: os.Getenv("AWS_SESSION_TOKEN"),
				}, nil
			})))
		}
	}

	return opts
}

// Produce submits one record and blocks until the broker acknowledges it or
// ctx expires. On success the record carries the assigned partition and
// offset.
func (c *Client) Produce(ctx context.Context, record *kgo.Record) error {
	results := c.client.ProduceSync(ctx, record)
	if err := results.FirstErr(); err != nil {
		return fmt.Errorf("produce message: %w", err)
	}

	return nil
}

// Profile returns the profile the client was built from.
func (c *Client) Profile() config.Profile {
	return c.profile
}

// Close closes the client.
func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}
