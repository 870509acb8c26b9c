package retry

import (
	"context"
	"math"
	"time"

	"ai-stemtutor-be/pkg/llm"
)

// Config controls the backoff schedule. Delay before attempt k+1 is
// BaseDelay * Multiplier^(k-1), capped at MaxDelay.
type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
	MaxDelay    time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		BaseDelay:   500 * time.Millisecond,
		Multiplier:  2.0,
		MaxDelay:    10 * time.Second,
	}
}

// Attempt is one provider invocation. The attempt number (1-based) lets the
// caller record it and adjust the prompt on re-tries.
type Attempt func(ctx context.Context, attempt int) error

// Policy executes provider operations with classification-aware retry:
// transient failures retry up to MaxAttempts, a structurally invalid
// response gets exactly one retry (the caller is expected to switch to a
// stricter prompt), fatal failures never retry.
type Policy struct {
	cfg Config
}

func New(cfg Config) *Policy {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultConfig().MaxAttempts
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = DefaultConfig().BaseDelay
	}
	if cfg.Multiplier < 1 {
		cfg.Multiplier = DefaultConfig().Multiplier
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = DefaultConfig().MaxDelay
	}
	return &Policy{cfg: cfg}
}

func (p *Policy) MaxAttempts() int {
	return p.cfg.MaxAttempts
}

// Execute runs op until success, a non-retryable failure, or exhaustion.
// The returned error is the last attempt's error, unmodified.
func (p *Policy) Execute(ctx context.Context, op Attempt) error {
	var lastErr error
	invalidRetried := false

	for attempt := 1; ; attempt++ {
		lastErr = op(ctx, attempt)
		if lastErr == nil {
			return nil
		}

		switch llm.Classify(lastErr) {
		case llm.ClassFatal:
			return lastErr

		case llm.ClassInvalidResponse:
			// One stricter-prompt retry, independent of the transient
			// attempt budget.
			if invalidRetried {
				return lastErr
			}
			invalidRetried = true

		default: // transient
			if attempt >= p.cfg.MaxAttempts {
				return lastErr
			}
		}

		if err := p.wait(ctx, p.delay(attempt)); err != nil {
			return lastErr
		}
	}
}

func (p *Policy) delay(attempt int) time.Duration {
	d := time.Duration(float64(p.cfg.BaseDelay) * math.Pow(p.cfg.Multiplier, float64(attempt-1)))
	if d > p.cfg.MaxDelay {
		d = p.cfg.MaxDelay
	}
	return d
}

func (p *Policy) wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
