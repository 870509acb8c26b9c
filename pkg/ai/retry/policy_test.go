package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-stemtutor-be/pkg/llm"
)

func fastConfig(maxAttempts int) Config {
	return Config{
		MaxAttempts: maxAttempts,
		BaseDelay:   time.Millisecond,
		Multiplier:  2.0,
		MaxDelay:    5 * time.Millisecond,
	}
}

func TestExecuteSucceedsFirstTry(t *testing.T) {
	p := New(fastConfig(3))
	calls := 0

	err := p.Execute(context.Background(), func(ctx context.Context, attempt int) error {
		calls++
		return nil
	})

	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestExecuteRetriesTransientUntilSuccess(t *testing.T) {
	p := New(fastConfig(3))
	calls := 0

	err := p.Execute(context.Background(), func(ctx context.Context, attempt int) error {
		calls++
		if calls < 3 {
			return llm.Transient("test", errors.New("timeout"))
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestExecuteTransientExhaustion(t *testing.T) {
	p := New(fastConfig(3))
	calls := 0
	transient := llm.Transient("test", errors.New("timeout"))

	err := p.Execute(context.Background(), func(ctx context.Context, attempt int) error {
		calls++
		return transient
	})

	if !errors.Is(err, transient) {
		t.Errorf("Execute() error = %v, want last transient error", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestExecuteFatalNeverRetries(t *testing.T) {
	p := New(fastConfig(3))
	calls := 0

	err := p.Execute(context.Background(), func(ctx context.Context, attempt int) error {
		calls++
		return llm.Fatal("test", errors.New("bad credentials"))
	})

	if err == nil {
		t.Fatal("Execute() expected error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestExecuteInvalidResponseRetriedExactlyOnce(t *testing.T) {
	p := New(fastConfig(3))
	calls := 0

	err := p.Execute(context.Background(), func(ctx context.Context, attempt int) error {
		calls++
		return llm.InvalidResponse("test", errors.New("missing answer"))
	})

	if err == nil {
		t.Fatal("Execute() expected error")
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestExecuteUnknownErrorTreatedAsFatal(t *testing.T) {
	p := New(fastConfig(3))
	calls := 0

	err := p.Execute(context.Background(), func(ctx context.Context, attempt int) error {
		calls++
		return errors.New("unexpected")
	})

	if err == nil {
		t.Fatal("Execute() expected error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestExecuteAttemptNumbersIncrease(t *testing.T) {
	p := New(fastConfig(3))
	var attempts []int

	_ = p.Execute(context.Background(), func(ctx context.Context, attempt int) error {
		attempts = append(attempts, attempt)
		return llm.Transient("test", errors.New("timeout"))
	})

	want := []int{1, 2, 3}
	if len(attempts) != len(want) {
		t.Fatalf("attempts = %v, want %v", attempts, want)
	}
	for i := range want {
		if attempts[i] != want[i] {
			t.Errorf("attempts = %v, want %v", attempts, want)
			break
		}
	}
}

func TestExecuteStopsWaitingOnContextCancel(t *testing.T) {
	p := New(Config{MaxAttempts: 3, BaseDelay: time.Minute, Multiplier: 2, MaxDelay: time.Minute})
	ctx, cancel := context.WithCancel(context.Background())

	transient := llm.Transient("test", errors.New("timeout"))
	done := make(chan error, 1)
	go func() {
		done <- p.Execute(ctx, func(ctx context.Context, attempt int) error {
			return transient
		})
	}()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, transient) {
			t.Errorf("Execute() error = %v, want last transient error", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Execute() did not return after context cancellation")
	}
}

func TestDelaySchedule(t *testing.T) {
	p := New(Config{MaxAttempts: 5, BaseDelay: 100 * time.Millisecond, Multiplier: 2, MaxDelay: 350 * time.Millisecond})

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 350 * time.Millisecond}, // capped from 400ms
		{4, 350 * time.Millisecond},
	}

	for _, tt := range tests {
		if got := p.delay(tt.attempt); got != tt.want {
			t.Errorf("delay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}
