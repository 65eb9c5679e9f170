package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abilic/ordergate/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() retry.Config {
	return retry.Config{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
	}
}

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	err := retry.Do(context.Background(), fastConfig(), func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDo_ReturnsLastErrorWhenExhausted(t *testing.T) {
	attempts := 0
	err := retry.Do(context.Background(), fastConfig(), func() error {
		attempts++
		return errors.New("still broken")
	})
	require.Error(t, err)
	assert.EqualError(t, err, "still broken")
	assert.Equal(t, 3, attempts)
}

func TestDo_UnrecoverableStopsImmediately(t *testing.T) {
	sentinel := errors.New("bad request")
	attempts := 0
	err := retry.Do(context.Background(), fastConfig(), func() error {
		attempts++
		return retry.Unrecoverable(sentinel)
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, attempts)
}

func TestDo_OnRetryObservesAttempts(t *testing.T) {
	cfg := fastConfig()
	var seen []uint
	cfg.OnRetry = func(attempt uint, _ error) {
		seen = append(seen, attempt)
	}

	_ = retry.Do(context.Background(), cfg, func() error {
		return errors.New("transient")
	})
	// Every failed attempt is observed, the final one included.
	assert.Equal(t, []uint{0, 1, 2}, seen)
}

func TestDoWithResult_ReturnsValue(t *testing.T) {
	attempts := 0
	got, err := retry.DoWithResult(context.Background(), fastConfig(), func() (string, error) {
		attempts++
		if attempts < 2 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestDo_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := retry.Do(ctx, fastConfig(), func() error {
		return errors.New("transient")
	})
	require.Error(t, err)
}
