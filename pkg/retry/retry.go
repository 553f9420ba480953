// Package retry provides bounded-backoff retry for idempotent operations,
// mainly read paths against the database and external HTTP services.
package retry

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Policy controls retry behavior
type Policy struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Multiplier     float64
	Jitter         float64 // 0..1 fraction of the backoff to randomize
}

// DefaultPolicy is suitable for idempotent reads
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:     3,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     2 * time.Second,
		Multiplier:     2.0,
		Jitter:         0.2,
	}
}

// Validate checks the policy for sane values
func (p Policy) Validate() error {
	if p.MaxRetries < 0 {
		return fmt.Errorf("max retries must be >= 0")
	}
	if p.InitialBackoff <= 0 {
		return fmt.Errorf("initial backoff must be > 0")
	}
	if p.Multiplier < 1.0 {
		return fmt.Errorf("multiplier must be >= 1.0")
	}
	return nil
}

// RetryableFunc reports whether an error should be retried
type RetryableFunc func(error) bool

// Retrier executes operations with retry and exponential backoff
type Retrier struct {
	policy    Policy
	retryable RetryableFunc
	logger    *zap.Logger
}

// New creates a retrier. If retryable is nil every error is retried.
func New(policy Policy, retryable RetryableFunc, logger *zap.Logger) (*Retrier, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid retry policy: %w", err)
	}
	if retryable == nil {
		retryable = func(error) bool { return true }
	}
	return &Retrier{policy: policy, retryable: retryable, logger: logger}, nil
}

// Do executes operation with retry, honoring context cancellation
func (r *Retrier) Do(ctx context.Context, operation func() error) error {
	var lastErr error
	backoff := r.policy.InitialBackoff

	for attempt := 0; attempt <= r.policy.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		lastErr = operation()
		if lastErr == nil {
			if attempt > 0 {
				r.logger.Info("Operation succeeded after retries",
					zap.Int("attempt", attempt),
					zap.Int("max_retries", r.policy.MaxRetries))
			}
			return nil
		}

		if !r.retryable(lastErr) {
			return lastErr
		}

		if attempt == r.policy.MaxRetries {
			break
		}

		wait := backoff
		if r.policy.Jitter > 0 {
			delta := time.Duration(float64(backoff) * r.policy.Jitter)
			wait = backoff - delta + time.Duration(rand.Int63n(int64(2*delta)+1))
		}

		r.logger.Debug("Retrying operation",
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", wait),
			zap.Error(lastErr))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}

		backoff = time.Duration(float64(backoff) * r.policy.Multiplier)
		if backoff > r.policy.MaxBackoff {
			backoff = r.policy.MaxBackoff
		}
	}

	return fmt.Errorf("operation failed after %d attempts: %w", r.policy.MaxRetries+1, lastErr)
}
