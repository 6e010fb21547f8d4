package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/minhph/orderflow/internal/core/effect"
)

func fastPolicy(maxAttempts int) Policy {
	return Policy{
		MaxAttempts:     maxAttempts,
		InitialDelay:    time.Millisecond,
		MaxDelay:        5 * time.Millisecond,
		BackoffMultiple: 2.0,
	}
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	res := Do(context.Background(), fastPolicy(3), func(ctx context.Context) error {
		calls++
		return nil
	})

	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if calls != 1 || res.Attempts != 1 {
		t.Errorf("expected 1 attempt, got calls=%d attempts=%d", calls, res.Attempts)
	}
}

func TestDo_SucceedsAfterRetries(t *testing.T) {
	calls := 0
	res := Do(context.Background(), fastPolicy(5), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.Attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", res.Attempts)
	}
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	sentinel := errors.New("down")
	calls := 0
	res := Do(context.Background(), fastPolicy(4), func(ctx context.Context) error {
		calls++
		return sentinel
	})

	if res.Err == nil {
		t.Fatal("expected failure")
	}
	if calls != 4 || res.Attempts != 4 {
		t.Errorf("expected 4 attempts, got calls=%d attempts=%d", calls, res.Attempts)
	}
	if !errors.Is(res.Err, sentinel) {
		t.Errorf("expected last error to be wrapped, got %v", res.Err)
	}
}

func TestDo_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	res := Do(ctx, fastPolicy(3), func(ctx context.Context) error {
		calls++
		return nil
	})

	if calls != 0 {
		t.Errorf("expected no attempts on cancelled context, got %d", calls)
	}
	if !errors.Is(res.Err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", res.Err)
	}
}

func TestDo_CancelledDuringBackoff(t *testing.T) {
	policy := Policy{
		MaxAttempts:     5,
		InitialDelay:    time.Second,
		MaxDelay:        time.Second,
		BackoffMultiple: 1.0,
	}

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	res := Do(ctx, policy, func(ctx context.Context) error {
		calls++
		return errors.New("transient")
	})

	if res.Err == nil {
		t.Fatal("expected failure on cancellation")
	}
	if !errors.Is(res.Err, context.Canceled) {
		t.Errorf("expected context.Canceled cause, got %v", res.Err)
	}
	if calls != 1 {
		t.Errorf("expected 1 attempt before cancellation, got %d", calls)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Error("cancellation did not interrupt backoff sleep")
	}
}

func TestDo_TimeoutBoundsAllAttempts(t *testing.T) {
	policy := Policy{
		MaxAttempts:     100,
		InitialDelay:    10 * time.Millisecond,
		MaxDelay:        10 * time.Millisecond,
		BackoffMultiple: 1.0,
		Timeout:         50 * time.Millisecond,
	}

	res := Do(context.Background(), policy, func(ctx context.Context) error {
		return errors.New("transient")
	})

	if res.Err == nil {
		t.Fatal("expected failure")
	}
	if !errors.Is(res.Err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", res.Err)
	}
	if res.Attempts >= 100 {
		t.Errorf("timeout should have cut attempts short, got %d", res.Attempts)
	}
}

func TestBackoffDelay_Capped(t *testing.T) {
	policy := Policy{
		InitialDelay:    100 * time.Millisecond,
		MaxDelay:        time.Second,
		BackoffMultiple: 2.0,
	}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{2, 400 * time.Millisecond},
		{3, 800 * time.Millisecond},
		{4, time.Second}, // capped
		{10, time.Second},
	}

	for _, tt := range tests {
		if got := backoffDelay(tt.attempt, policy); got != tt.want {
			t.Errorf("backoffDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestTable_ForKind(t *testing.T) {
	table := DefaultTable()

	if got := table.ForKind(effect.KindUpdateInventory); got != Store {
		t.Errorf("inventory should use store policy, got %+v", got)
	}
	if got := table.ForKind(effect.KindCacheResult); got != Cache {
		t.Errorf("cache result should use cache policy, got %+v", got)
	}
	if got := table.ForKind(effect.Kind("unknown")); got != Default {
		t.Errorf("unknown kind should fall back to default policy, got %+v", got)
	}
}

func TestPolicies_Distinct(t *testing.T) {
	// Each named policy is tuned to its collaborator; a regression collapsing
	// them would silently change production retry behavior.
	policies := map[string]Policy{
		"store": Store, "external_api": ExternalAPI, "cache": Cache, "default": Default,
	}
	for name, p := range policies {
		if p.MaxAttempts <= 0 {
			t.Errorf("%s: MaxAttempts must be positive", name)
		}
		if p.InitialDelay <= 0 || p.MaxDelay < p.InitialDelay {
			t.Errorf("%s: bad delay bounds %v/%v", name, p.InitialDelay, p.MaxDelay)
		}
	}
	if Cache.InitialDelay >= Default.InitialDelay {
		t.Error("cache policy should have the shortest backoff floor")
	}
	if ExternalAPI.MaxAttempts <= Store.MaxAttempts {
		t.Error("external API policy should allow more attempts than store")
	}
}
