package ezygo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	b := NewCircuitBreaker()
	for i := 0; i < breakerFailureThreshold-1; i++ {
		require.NoError(t, b.Allow())
		b.ReportFailure()
	}
	require.NoError(t, b.Allow(), "still closed one failure short of the threshold")

	b.ReportFailure()
	assert.ErrorIs(t, b.Allow(), ErrCircuitOpen)
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	b := NewCircuitBreaker()
	for i := 0; i < breakerFailureThreshold-1; i++ {
		b.ReportFailure()
	}
	b.ReportSuccess()
	for i := 0; i < breakerFailureThreshold-1; i++ {
		b.ReportFailure()
	}
	assert.NoError(t, b.Allow())
}

func TestCircuitBreaker_HalfOpenProbe(t *testing.T) {
	current := time.Now()
	b := NewCircuitBreaker()
	b.now = func() time.Time { return current }

	for i := 0; i < breakerFailureThreshold; i++ {
		b.ReportFailure()
	}
	require.ErrorIs(t, b.Allow(), ErrCircuitOpen)

	// Cooldown elapses: exactly one probe gets through.
	current = current.Add(breakerCooldown)
	require.NoError(t, b.Allow())
	assert.ErrorIs(t, b.Allow(), ErrCircuitOpen, "second caller blocked while probe in flight")

	// Failed probe re-opens for a fresh cooldown.
	b.ReportFailure()
	assert.ErrorIs(t, b.Allow(), ErrCircuitOpen)

	// Successful probe closes it for good.
	current = current.Add(breakerCooldown)
	require.NoError(t, b.Allow())
	b.ReportSuccess()
	assert.NoError(t, b.Allow())
	assert.NoError(t, b.Allow())
}
