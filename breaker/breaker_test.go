package breaker

import (
	"fmt"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"farmweather.app/errors"
)

func failingOp(calls *int) Operation {
	return func() (interface{}, error) {
		*calls++
		return nil, fmt.Errorf("upstream down")
	}
}

func TestBreakerClosedSuccess(t *testing.T) {
	b := New(Config{Name: "weather-api", FailureThreshold: 3, RecoveryTimeout: time.Second})

	result, err := b.Execute(func() (interface{}, error) {
		return "ok", nil
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, gobreaker.StateClosed, b.State())
}

func TestBreakerFailurePropagatesWithoutFallback(t *testing.T) {
	b := New(Config{Name: "weather-api", FailureThreshold: 3, RecoveryTimeout: time.Second})

	var calls int
	_, err := b.Execute(failingOp(&calls), nil)

	require.Error(t, err)
	assert.EqualError(t, err, "upstream down")
	assert.Equal(t, 1, calls)
	assert.Equal(t, gobreaker.StateClosed, b.State())
}

func TestBreakerFailureUsesFallback(t *testing.T) {
	b := New(Config{Name: "weather-api", FailureThreshold: 3, RecoveryTimeout: time.Second})

	var calls int
	result, err := b.Execute(failingOp(&calls), func() (interface{}, error) {
		return "fallback", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "fallback", result)
	assert.Equal(t, 1, calls)
}

func TestBreakerOpensAfterThreshold(t *testing.T) {
	b := New(Config{Name: "weather-api", FailureThreshold: 3, RecoveryTimeout: time.Minute})

	var calls int
	for i := 0; i < 3; i++ {
		_, err := b.Execute(failingOp(&calls), nil)
		require.Error(t, err)
	}

	assert.Equal(t, gobreaker.StateOpen, b.State())
	assert.Equal(t, 3, calls)

	// While open and within the recovery timeout, only the fallback runs.
	result, err := b.Execute(failingOp(&calls), func() (interface{}, error) {
		return "fallback", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fallback", result)
	assert.Equal(t, 3, calls)
}

func TestBreakerOpenWithoutFallbackIsServiceUnavailable(t *testing.T) {
	b := New(Config{Name: "weather-api", FailureThreshold: 1, RecoveryTimeout: time.Minute})

	var calls int
	_, _ = b.Execute(failingOp(&calls), nil)
	require.Equal(t, gobreaker.StateOpen, b.State())

	_, err := b.Execute(failingOp(&calls), nil)
	require.Error(t, err)
	assert.True(t, errors.IsServiceUnavailableError(err))
	assert.Equal(t, 1, calls)
}

func TestBreakerHalfOpenProbeAfterRecovery(t *testing.T) {
	b := New(Config{Name: "weather-api", FailureThreshold: 2, RecoveryTimeout: 50 * time.Millisecond})

	var calls int
	for i := 0; i < 2; i++ {
		_, _ = b.Execute(failingOp(&calls), nil)
	}
	require.Equal(t, gobreaker.StateOpen, b.State())

	time.Sleep(80 * time.Millisecond)

	// Exactly one probe call reaches the operation; success closes the circuit.
	result, err := b.Execute(func() (interface{}, error) {
		calls++
		return "recovered", nil
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, "recovered", result)
	assert.Equal(t, 3, calls)
	assert.Equal(t, gobreaker.StateClosed, b.State())
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	b := New(Config{Name: "weather-api", FailureThreshold: 2, RecoveryTimeout: 50 * time.Millisecond})

	var calls int
	for i := 0; i < 2; i++ {
		_, _ = b.Execute(failingOp(&calls), nil)
	}
	require.Equal(t, gobreaker.StateOpen, b.State())

	time.Sleep(80 * time.Millisecond)

	_, err := b.Execute(failingOp(&calls), nil)
	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, gobreaker.StateOpen, b.State())
}

func TestBreakerDefaults(t *testing.T) {
	b := New(Config{Name: "weather-api"})

	var calls int
	for i := 0; i < 3; i++ {
		_, _ = b.Execute(failingOp(&calls), nil)
	}
	assert.Equal(t, gobreaker.StateOpen, b.State())
}

func TestWithTimeoutCompletesInTime(t *testing.T) {
	result, err := WithTimeout(func() (interface{}, error) {
		return 42, nil
	}, time.Second, "weather API request timed out")

	require.NoError(t, err)
	assert.Equal(t, 42, result)
}

func TestWithTimeoutExceeded(t *testing.T) {
	start := time.Now()
	result, err := WithTimeout(func() (interface{}, error) {
		time.Sleep(500 * time.Millisecond)
		return 42, nil
	}, 30*time.Millisecond, "weather API request timed out")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsTimeoutError(err))
	assert.Contains(t, err.Error(), "weather API request timed out")
	assert.Less(t, time.Since(start), 400*time.Millisecond)
}

func TestWithTimeoutPropagatesOperationError(t *testing.T) {
	opErr := fmt.Errorf("boom")
	_, err := WithTimeout(func() (interface{}, error) {
		return nil, opErr
	}, time.Second, "never fires")

	assert.Equal(t, opErr, err)
}
