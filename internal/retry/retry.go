// Package retry runs an operation with bounded attempts and exponential backoff.
//
// Every failure is retried, whatever its type. Callers that must not repeat a
// non-transient failure have to guard against it inside the operation.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jonboulle/clockwork"
)

var ErrInvalidPolicy = errors.New("invalid retry policy")

// Policy is an immutable backoff configuration.
type Policy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Factor       float64
}

func (p Policy) Validate() error {
	switch {
	case p.MaxAttempts < 1:
		return fmt.Errorf("%w: max attempts %d < 1", ErrInvalidPolicy, p.MaxAttempts)
	case p.InitialDelay < 0:
		return fmt.Errorf("%w: negative initial delay %s", ErrInvalidPolicy, p.InitialDelay)
	case p.MaxDelay < p.InitialDelay:
		return fmt.Errorf("%w: max delay %s below initial delay %s", ErrInvalidPolicy, p.MaxDelay, p.InitialDelay)
	case p.Factor < 1 || math.IsNaN(p.Factor):
		return fmt.Errorf("%w: factor %v < 1", ErrInvalidPolicy, p.Factor)
	}
	return nil
}

// DelayForAttempt returns the wait that follows failed attempt number attempt.
// Attempt 0 never waits; from attempt 1 on the delay is
// InitialDelay * Factor^(attempt-1), capped at MaxDelay.
func (p Policy) DelayForAttempt(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	d := float64(p.InitialDelay) * math.Pow(p.Factor, float64(attempt-1))
	if math.IsInf(d, 0) || math.IsNaN(d) || d >= float64(p.MaxDelay) {
		return p.MaxDelay
	}
	return time.Duration(d)
}

// AttemptFunc observes each attempt before it runs. It must not be used for control flow.
type AttemptFunc func(attempt, maxAttempts int)

type Operation[T any] func(ctx context.Context) (T, error)

// Executor holds the clock used for backoff waits and the attempt hook.
type Executor struct {
	clock     clockwork.Clock
	onAttempt AttemptFunc
}

type Option func(*Executor)

func WithClock(clock clockwork.Clock) Option {
	return func(e *Executor) { e.clock = clock }
}

func WithOnAttempt(fn AttemptFunc) Option {
	return func(e *Executor) { e.onAttempt = fn }
}

func NewExecutor(opts ...Option) *Executor {
	e := &Executor{clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultExecutor = NewExecutor()

// Do runs op up to p.MaxAttempts times. When every attempt fails, the error of
// the last attempt is returned as is, so callers can match on it directly.
// Cancelling ctx during a backoff wait ends the run with an error wrapping both
// ctx.Err() and the last failure.
func Do[T any](ctx context.Context, e *Executor, p Policy, op Operation[T]) (T, error) {
	var zero T
	if err := p.Validate(); err != nil {
		return zero, err
	}
	if e == nil {
		e = defaultExecutor
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if e.onAttempt != nil {
			e.onAttempt(attempt, p.MaxAttempts)
		}

		val, err := op(ctx)
		if err == nil {
			return val, nil
		}
		lastErr = err

		if attempt == p.MaxAttempts {
			break
		}

		delay := p.DelayForAttempt(attempt)
		if delay <= 0 {
			if ctx.Err() != nil {
				return zero, fmt.Errorf("context cancelled during retry: %w", errors.Join(ctx.Err(), lastErr))
			}
			continue
		}

		select {
		case <-e.clock.After(delay):
		case <-ctx.Done():
			return zero, fmt.Errorf("context cancelled during retry: %w", errors.Join(ctx.Err(), lastErr))
		}
	}

	return zero, lastErr
}

// DoVoid is Do for operations without a result.
func DoVoid(ctx context.Context, e *Executor, p Policy, op func(ctx context.Context) error) error {
	_, err := Do(ctx, e, p, func(ctx context.Context) (struct{}, error) { return struct{}{}, op(ctx) })
	return err
}
