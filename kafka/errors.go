package kafka

import "errors"

// Predefined errors to avoid dynamic errors.
var (
	ErrEmptyBrokersList = errors.New("brokers list cannot be empty")
	ErrEmptyTopic       = errors.New("topic cannot be empty")
	ErrEmptyMessage     = errors.New("message cannot be empty")
)
