//go:build integration

package testhelpers

import "time"

// Test timeout constants.
const (
	DefaultTestTimeout = 30 * time.Second
	ShortTestTimeout   = 5 * time.Second
)
