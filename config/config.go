// Package config resolves the active broker profile: either a local
// unauthenticated Kafka (docker-compose style) or an AWS MSK cluster behind
// SASL_SSL. The profile is resolved once at startup and passed into every
// component; nothing in this package mutates state after resolution.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// SecurityProtocol is the transport security mode of a profile.
type SecurityProtocol string

const (
	SecurityPlaintext SecurityProtocol = "PLAINTEXT"
	SecuritySASLSSL   SecurityProtocol = "SASL_SSL"
)

// SASLMechanism is the authentication mechanism of a profile.
type SASLMechanism string

const (
	MechanismNone      SASLMechanism = ""
	MechanismAWSMSKIAM SASLMechanism = "AWS_MSK_IAM"
)

// Environment tags accepted by Resolve.
const (
	EnvLocal = "local"
	EnvAWS   = "aws"
)

const (
	defaultLocalBrokers = "localhost:9092"
	defaultMSKBrokers   = "your-msk-cluster-endpoint:9092"
	defaultAWSRegion    = "us-east-1"
)

// Profile is an immutable set of connection options for one broker endpoint.
type Profile struct {
	Name             string           `json:"name"`
	Brokers          []string         `json:"brokers"`
	SecurityProtocol SecurityProtocol `json:"security_protocol"`
	SASLMechanism    SASLMechanism    `json:"sasl_mechanism,omitempty"`
	Region           string           `json:"region,omitempty"`
	OffsetReset      string           `json:"offset_reset"`
}

// Load resolves the active profile from the process environment. An optional
// .env file in the working directory is read first; absence is not an error.
func Load() Profile {
	_ = godotenv.Load()

	return Resolve(newViper().GetString("kafka.env"))
}

// Resolve returns the profile for an environment tag. The tag is
// case-insensitive; anything that is not "aws" falls back to the local
// profile. The returned profile always carries at least one broker address.
func Resolve(env string) Profile {
	v := newViper()

	if strings.EqualFold(strings.TrimSpace(env), EnvAWS) {
		return awsProfile(v)
	}

	return localProfile(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("kafka.env", EnvLocal)
	v.SetDefault("kafka.brokers", defaultLocalBrokers)
	v.SetDefault("msk.bootstrap.servers", defaultMSKBrokers)
	v.SetDefault("aws.region", defaultAWSRegion)

	return v
}

func localProfile(v *viper.Viper) Profile {
	return Profile{
		Name:             EnvLocal,
		Brokers:          splitBrokers(v.GetString("kafka.brokers"), defaultLocalBrokers),
		SecurityProtocol: SecurityPlaintext,
		SASLMechanism:    MechanismNone,
		Region:           "",
		OffsetReset:      "earliest",
	}
}

func awsProfile(v *viper.Viper) Profile {
	return Profile{
		Name:             EnvAWS,
		Brokers:          splitBrokers(v.GetString("msk.bootstrap.servers"), defaultMSKBrokers),
		SecurityProtocol: SecuritySASLSSL,
		SASLMechanism:    MechanismAWSMSKIAM,
		Region:           v.GetString("aws.region"),
		OffsetReset:      "earliest",
	}
}

// splitBrokers parses a comma-separated broker list. An override that is all
// whitespace or commas yields the fallback, never an empty list.
func splitBrokers(brokers, fallback string) []string {
	parts := strings.Split(brokers, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return []string{fallback}
	}

	return result
}
