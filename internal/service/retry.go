package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = time.Second
)

// RetryPolicy wraps provider calls with bounded retry and exponential backoff.
// Only transient failures (rate limiting, server errors) are retried; anything
// else propagates immediately. After the attempt budget is spent the last
// failure is returned unchanged.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration

	log   *zap.Logger
	sleep func(ctx context.Context, d time.Duration) error
}

func NewRetryPolicy(log *zap.Logger) *RetryPolicy {
	return &RetryPolicy{
		MaxAttempts: defaultMaxAttempts,
		BaseDelay:   defaultBaseDelay,
		log:         log,
		sleep:       waitFor,
	}
}

// Execute runs op up to MaxAttempts times. The delay before retry i
// (0-indexed) is BaseDelay * 2^i. Cancelling ctx aborts any pending backoff
// sleep and returns the context error.
func (p *RetryPolicy) Execute(ctx context.Context, op func() (string, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		result, err := op()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == p.MaxAttempts-1 || !isTransient(err) {
			return "", err
		}

		delay := p.BaseDelay << uint(attempt)
		p.log.Warn("provider call failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", p.MaxAttempts),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		if err := p.sleep(ctx, delay); err != nil {
			return "", err
		}
	}
	return "", lastErr
}

func isTransient(err error) bool {
	var pErr *ProviderError
	if errors.As(err, &pErr) {
		return pErr.Transient()
	}
	return false
}

func waitFor(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
