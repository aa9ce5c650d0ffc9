package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
)

func fastPolicy() Policy {
	return Policy{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
		Multiplier:     2,
		BreakerEnabled: false,
	}
}

func TestRunRetriesUntilSuccess(t *testing.T) {
	exec := NewExecutor(fastPolicy())

	errFlaky := errors.New("flaky")
	attempts := 0
	err := exec.Run(context.Background(), "ner", func(err error) Outcome {
		return Outcome{Retry: errors.Is(err, errFlaky), CountsAsFailure: true}
	}, func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errFlaky
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d, want 3", attempts)
	}
}

func TestRunStopsOnPermanentError(t *testing.T) {
	exec := NewExecutor(fastPolicy())

	errPermanent := errors.New("bad request")
	attempts := 0
	err := exec.Run(context.Background(), "sentiment", func(error) Outcome {
		return Outcome{Retry: false, CountsAsFailure: false}
	}, func(context.Context) error {
		attempts++
		return errPermanent
	})
	if !errors.Is(err, errPermanent) {
		t.Fatalf("got %v, want %v", err, errPermanent)
	}
	if attempts != 1 {
		t.Fatalf("attempts = %d, want 1", attempts)
	}
}

func TestRunOpensBreakerAfterRepeatedFailures(t *testing.T) {
	exec := NewExecutor(Policy{
		MaxAttempts:         1,
		InitialBackoff:      time.Millisecond,
		MaxBackoff:          time.Millisecond,
		Multiplier:          2,
		BreakerEnabled:      true,
		BreakerMinRequests:  2,
		BreakerFailureRatio: 0.5,
		BreakerOpenFor:      50 * time.Millisecond,
		BreakerProbeCalls:   1,
	})

	errDown := errors.New("model down")
	classify := func(error) Outcome {
		return Outcome{Retry: false, CountsAsFailure: true}
	}

	for i := 0; i < 2; i++ {
		err := exec.Run(context.Background(), "summarize", classify, func(context.Context) error {
			return errDown
		})
		if !errors.Is(err, errDown) {
			t.Fatalf("iteration %d: got %v, want %v", i, err, errDown)
		}
	}

	err := exec.Run(context.Background(), "summarize", classify, func(context.Context) error {
		t.Fatal("open breaker must not invoke the operation")
		return nil
	})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("got %v, want %v", err, gobreaker.ErrOpenState)
	}
}

func TestRunDoesNotRetryCancelledContext(t *testing.T) {
	exec := NewExecutor(fastPolicy())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := exec.Run(ctx, "ner", nil, func(context.Context) error {
		attempts++
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
	if attempts != 0 {
		t.Fatalf("attempts = %d, want 0", attempts)
	}
}

func TestRunSeparateOperationsUseSeparateBreakers(t *testing.T) {
	exec := NewExecutor(Policy{
		MaxAttempts:         1,
		InitialBackoff:      time.Millisecond,
		MaxBackoff:          time.Millisecond,
		Multiplier:          2,
		BreakerEnabled:      true,
		BreakerMinRequests:  2,
		BreakerFailureRatio: 0.5,
		BreakerOpenFor:      50 * time.Millisecond,
		BreakerProbeCalls:   1,
	})

	errDown := errors.New("down")
	classify := func(error) Outcome {
		return Outcome{Retry: false, CountsAsFailure: true}
	}
	for i := 0; i < 2; i++ {
		_ = exec.Run(context.Background(), "ner", classify, func(context.Context) error { return errDown })
	}

	if err := exec.Run(context.Background(), "sentiment", classify, func(context.Context) error { return nil }); err != nil {
		t.Fatalf("unrelated operation tripped: %v", err)
	}
}
