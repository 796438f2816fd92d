package kafka_test

import (
	"io"
	"testing"

	"kafka-bridge/config"
	"kafka-bridge/kafka"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		profile config.Profile
		wantErr bool
	}{
		{
			name:    "local profile",
			profile: config.Resolve("local"),
			wantErr: false,
		},
		{
			name:    "aws profile",
			profile: config.Resolve("aws"),
			wantErr: false,
		},
		{
			name:    "empty brokers",
			profile: config.Profile{Name: "local"},
			wantErr: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			client, err := kafka.NewClient(testCase.profile, "test-client")

			if testCase.wantErr {
				require.ErrorIs(t, err, kafka.ErrEmptyBrokersList)
				assert.Nil(t, client)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, client)
			assert.Equal(t, testCase.profile, client.Profile())

			client.Close()
			// Safe to call multiple times
			client.Close()
		})
	}
}

func TestNewConsumer_Validation(t *testing.T) {
	t.Parallel()

	printer := kafka.NewPrinter(io.Discard)

	tests := []struct {
		name    string
		cfg     kafka.ConsumerConfig
		wantErr error
	}{
		{
			name: "blank topic",
			cfg: kafka.ConsumerConfig{
				Profile: config.Resolve("local"),
				Topic:   "   ",
			},
			wantErr: kafka.ErrEmptyTopic,
		},
		{
			name: "empty brokers",
			cfg: kafka.ConsumerConfig{
				Profile: config.Profile{Name: "local"},
				Topic:   "payments",
			},
			wantErr: kafka.ErrEmptyBrokersList,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			consumer, err := kafka.NewConsumer(testCase.cfg, printer)

			require.ErrorIs(t, err, testCase.wantErr)
			assert.Nil(t, consumer)
		})
	}
}
