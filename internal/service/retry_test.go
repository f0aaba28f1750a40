package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestPolicy() (*RetryPolicy, *[]time.Duration) {
	delays := []time.Duration{}
	policy := NewRetryPolicy(zap.NewNop())
	policy.sleep = func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}
	return policy, &delays
}

func TestExecuteRetriesTransientFailures(t *testing.T) {
	policy, delays := newTestPolicy()

	calls := 0
	result, err := policy.Execute(context.Background(), func() (string, error) {
		calls++
		if calls <= 2 {
			return "", &ProviderError{Provider: "test", Kind: KindRateLimited, Status: 429, Message: "rate limited"}
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if result != "ok" {
		t.Fatalf("expected ok, got %q", result)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
	want := []time.Duration{1 * time.Second, 2 * time.Second}
	if len(*delays) != len(want) {
		t.Fatalf("expected %d delays, got %v", len(want), *delays)
	}
	for i, d := range *delays {
		if d != want[i] {
			t.Fatalf("delay %d: expected %v, got %v", i, want[i], d)
		}
	}
}

func TestExecuteDoesNotRetryPermanentFailures(t *testing.T) {
	policy, delays := newTestPolicy()

	permanent := &ProviderError{Provider: "test", Kind: KindUnknown, Status: 400, Message: "bad request"}
	calls := 0
	_, err := policy.Execute(context.Background(), func() (string, error) {
		calls++
		return "", permanent
	})
	if !errors.Is(err, permanent) {
		t.Fatalf("expected the permanent error back, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
	if len(*delays) != 0 {
		t.Fatalf("expected no delays, got %v", *delays)
	}
}

func TestExecuteDoesNotRetryUnauthorized(t *testing.T) {
	policy, _ := newTestPolicy()

	calls := 0
	_, err := policy.Execute(context.Background(), func() (string, error) {
		calls++
		return "", &ProviderError{Provider: "test", Kind: KindUnauthorized, Status: 401, Message: "bad key"}
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestExecutePropagatesLastFailureAfterExhaustion(t *testing.T) {
	policy, delays := newTestPolicy()

	serverErr := &ProviderError{Provider: "test", Kind: KindServerError, Status: 503, Message: "unavailable"}
	calls := 0
	_, err := policy.Execute(context.Background(), func() (string, error) {
		calls++
		return "", serverErr
	})
	if !errors.Is(err, serverErr) {
		t.Fatalf("expected the server error back, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
	if len(*delays) != 2 {
		t.Fatalf("expected 2 delays before exhaustion, got %v", *delays)
	}
}

func TestExecuteAbortsBackoffOnCancellation(t *testing.T) {
	policy := NewRetryPolicy(zap.NewNop())
	policy.BaseDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	start := time.Now()
	_, err := policy.Execute(ctx, func() (string, error) {
		calls++
		return "", &ProviderError{Provider: "test", Kind: KindServerError, Status: 500, Message: "boom"}
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
	if time.Since(start) > time.Second {
		t.Fatal("cancellation did not abort the backoff sleep")
	}
}
