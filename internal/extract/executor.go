package extract

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"suplio/internal/port"
	"suplio/internal/provider"
)

// ExecConfig bounds the fan-out against the model provider.
type ExecConfig struct {
	Concurrency int
	CallTimeout time.Duration
	MaxRetries  int
	Backoff     time.Duration
	// RatePerSecond throttles provider calls across all workers; zero
	// disables the limiter.
	RatePerSecond float64
}

// UnitResult is the tagged outcome of one unit: either a provider output or
// the error that exhausted the retry budget. A failed unit never aborts its
// siblings.
type UnitResult struct {
	Index  int
	Output *port.AnalyzeOutput
	Err    error
}

// Executor fans unit-level provider calls out under a bounded concurrency
// cap with per-call timeout, retry with exponential backoff, and an
// optional shared rate limit.
type Executor struct {
	provider port.ModelProvider
	limiter  *rate.Limiter
	cfg      ExecConfig
}

// NewExecutor creates an Executor over the given provider.
func NewExecutor(p port.ModelProvider, cfg ExecConfig) *Executor {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 2 * time.Minute
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 500 * time.Millisecond
	}
	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1)
	}
	return &Executor{provider: p, limiter: limiter, cfg: cfg}
}

// Run processes every unit and returns one result per unit, ordered by the
// unit's original index regardless of completion order. When ctx expires,
// in-flight calls are cancelled and already-completed results are kept.
func (e *Executor) Run(ctx context.Context, units []Unit, prompt func(Unit) string) []UnitResult {
	results := make([]UnitResult, len(units))

	g := &errgroup.Group{}
	g.SetLimit(e.cfg.Concurrency)

	for i := range units {
		unit := units[i]
		g.Go(func() error {
			out, err := e.runUnit(ctx, unit, prompt(unit))
			results[unit.Index] = UnitResult{Index: unit.Index, Output: out, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// runUnit performs one provider call with the retry budget. Exhausting the
// budget marks the unit failed without affecting others.
func (e *Executor) runUnit(ctx context.Context, unit Unit, promptText string) (*port.AnalyzeOutput, error) {
	input := port.AnalyzeInput{
		FileBytes:   unit.FileBytes,
		ContentType: unit.ContentType,
		Text:        unit.Text,
		Prompt:      promptText,
	}

	var lastErr error
	for attempt := 0; attempt <= e.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := e.waitBackoff(ctx, attempt, lastErr); err != nil {
				return nil, lastErr
			}
			log.Printf("extract.Executor: retrying unit %d (attempt %d): %v", unit.Index, attempt+1, lastErr)
		}

		if e.limiter != nil {
			if err := e.limiter.Wait(ctx); err != nil {
				return nil, contextError(err, lastErr)
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, e.cfg.CallTimeout)
		out, err := e.provider.Analyze(callCtx, input)
		cancel()
		if err == nil {
			return out, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			// overall deadline expired; do not burn retries
			return nil, lastErr
		}
	}
	return nil, lastErr
}

// waitBackoff sleeps the exponential backoff for the given attempt. A
// provider-reported Retry-After overrides the computed delay.
func (e *Executor) waitBackoff(ctx context.Context, attempt int, cause error) error {
	delay := e.cfg.Backoff * (1 << (attempt - 1))

	var rlErr *provider.RateLimitError
	if errors.As(cause, &rlErr) && rlErr.RetryAfter > delay {
		delay = rlErr.RetryAfter
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func contextError(ctxErr, lastErr error) error {
	if lastErr != nil {
		return lastErr
	}
	return ctxErr
}
