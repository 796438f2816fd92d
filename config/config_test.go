package config_test

import (
	"testing"

	"kafka-bridge/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name         string
		env          string
		wantName     string
		wantProtocol config.SecurityProtocol
		wantSASL     config.SASLMechanism
	}{
		{
			name:         "local",
			env:          "local",
			wantName:     "local",
			wantProtocol: config.SecurityPlaintext,
			wantSASL:     config.MechanismNone,
		},
		{
			name:         "aws",
			env:          "aws",
			wantName:     "aws",
			wantProtocol: config.SecuritySASLSSL,
			wantSASL:     config.MechanismAWSMSKIAM,
		},
		{
			name:         "aws uppercase",
			env:          "AWS",
			wantName:     "aws",
			wantProtocol: config.SecuritySASLSSL,
			wantSASL:     config.MechanismAWSMSKIAM,
		},
		{
			name:         "aws with surrounding whitespace",
			env:          "  aws  ",
			wantName:     "aws",
			wantProtocol: config.SecuritySASLSSL,
			wantSASL:     config.MechanismAWSMSKIAM,
		},
		{
			name:         "unrecognized tag falls back to local",
			env:          "staging",
			wantName:     "local",
			wantProtocol: config.SecurityPlaintext,
			wantSASL:     config.MechanismNone,
		},
		{
			name:         "empty tag falls back to local",
			env:          "",
			wantName:     "local",
			wantProtocol: config.SecurityPlaintext,
			wantSASL:     config.MechanismNone,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			profile := config.Resolve(testCase.env)

			assert.Equal(t, testCase.wantName, profile.Name)
			assert.Equal(t, testCase.wantProtocol, profile.SecurityProtocol)
			assert.Equal(t, testCase.wantSASL, profile.SASLMechanism)
			assert.NotEmpty(t, profile.Brokers, "resolver must never return an empty broker list")
			assert.Equal(t, "earliest", profile.OffsetReset)
		})
	}
}

func TestResolve_Idempotent(t *testing.T) {
	for _, env := range []string{"local", "aws", "whatever"} {
		first := config.Resolve(env)
		second := config.Resolve(env)

		assert.Equal(t, first, second, "resolving %q twice must yield identical profiles", env)
	}
}

func TestResolve_LocalDefaults(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "")

	profile := config.Resolve("local")

	assert.Equal(t, []string{"localhost:9092"}, profile.Brokers)
	assert.Empty(t, profile.Region)
}

func TestResolve_LocalBrokerOverride(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092")

	profile := config.Resolve("local")

	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, profile.Brokers)
}

func TestResolve_BlankBrokerOverrideKeepsDefault(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", " , ,")

	profile := config.Resolve("local")

	require.NotEmpty(t, profile.Brokers)
	assert.Equal(t, []string{"localhost:9092"}, profile.Brokers)
}

func TestResolve_AWSOverrides(t *testing.T) {
	t.Setenv("MSK_BOOTSTRAP_SERVERS", "b-1.msk.amazonaws.com:9098,b-2.msk.amazonaws.com:9098")
	t.Setenv("AWS_REGION", "eu-west-1")

	profile := config.Resolve("aws")

	assert.Equal(t, []string{"b-1.msk.amazonaws.com:9098", "b-2.msk.amazonaws.com:9098"}, profile.Brokers)
	assert.Equal(t, "eu-west-1", profile.Region)
}

func TestResolve_AWSRegionDefault(t *testing.T) {
	t.Setenv("AWS_REGION", "")

	profile := config.Resolve("aws")

	assert.Equal(t, "us-east-1", profile.Region)
}

func TestLoad_UsesKafkaEnv(t *testing.T) {
	t.Setenv("KAFKA_ENV", "aws")

	profile := config.Load()

	assert.Equal(t, "aws", profile.Name)
}

func TestLoad_DefaultsToLocal(t *testing.T) {
	t.Setenv("KAFKA_ENV", "")

	profile := config.Load()

	assert.Equal(t, "local", profile.Name)
}
