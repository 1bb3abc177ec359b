package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, SuccessThreshold: 1, OpenTimeout: time.Minute})

	for i := 0; i < 3; i++ {
		err := cb.Execute(func() error { return errBoom })
		assert.ErrorIs(t, err, errBoom)
	}
	assert.Equal(t, CBOpen, cb.State())

	// Fast-fail while open: fn must not run
	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, SuccessThreshold: 1, OpenTimeout: time.Minute})

	require.Error(t, cb.Execute(func() error { return errBoom }))
	require.Error(t, cb.Execute(func() error { return errBoom }))
	require.NoError(t, cb.Execute(func() error { return nil }))
	// Count was reset — two more failures don't trip it
	require.Error(t, cb.Execute(func() error { return errBoom }))
	require.Error(t, cb.Execute(func() error { return errBoom }))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenProbe(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, SuccessThreshold: 2, OpenTimeout: 10 * time.Millisecond})

	require.Error(t, cb.Execute(func() error { return errBoom }))
	assert.Equal(t, CBOpen, cb.State())

	time.Sleep(15 * time.Millisecond)
	assert.Equal(t, CBHalfOpen, cb.State())

	// Two successful probes close the circuit
	require.NoError(t, cb.Execute(func() error { return nil }))
	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, SuccessThreshold: 1, OpenTimeout: 10 * time.Millisecond})

	require.Error(t, cb.Execute(func() error { return errBoom }))
	time.Sleep(15 * time.Millisecond)
	assert.Equal(t, CBHalfOpen, cb.State())

	require.Error(t, cb.Execute(func() error { return errBoom }))
	assert.Equal(t, CBOpen, cb.State())
}

func TestCBStateString(t *testing.T) {
	assert.Equal(t, "closed", CBClosed.String())
	assert.Equal(t, "open", CBOpen.String())
	assert.Equal(t, "half-open", CBHalfOpen.String())
}
