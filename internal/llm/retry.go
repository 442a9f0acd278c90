package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/snappy-loop/studio/internal/models"
)

const (
	DefaultMaxAttempts = 6
	DefaultBackoffBase = time.Second
	DefaultBackoffMax  = 60 * time.Second
)

// Backoff is a randomized exponential envelope: the wait after the n-th failed
// attempt is drawn uniformly from [Base, min(Max, Base*2^(n-1))].
type Backoff struct {
	Base time.Duration
	Max  time.Duration
}

// Delay returns the wait after attempt (1-based) for a jitter value u in [0, 1).
func (b Backoff) Delay(attempt int, u float64) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	high := b.Max
	if shift := attempt - 1; shift < 32 {
		if exp := b.Base << uint(shift); exp > 0 && exp < b.Max {
			high = exp
		}
	}
	if high < b.Base {
		high = b.Base
	}
	if u < 0 {
		u = 0
	}
	if u >= 1 {
		u = 0.999999
	}
	return b.Base + time.Duration(u*float64(high-b.Base))
}

// RetryingClient calls a Transport with bounded retries and randomized backoff.
// It holds no per-call state, so one client can serve concurrent callers.
type RetryingClient struct {
	transport   Transport
	maxAttempts int
	backoff     Backoff
	sleep       func(ctx context.Context, d time.Duration) error
	jitter      func() float64
}

type Option func(*RetryingClient)

func WithMaxAttempts(n int) Option {
	return func(c *RetryingClient) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

func WithBackoff(b Backoff) Option {
	return func(c *RetryingClient) {
		if b.Base > 0 && b.Max >= b.Base {
			c.backoff = b
		}
	}
}

// WithSleeper replaces the context-aware sleep between attempts (tests use a no-op).
func WithSleeper(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(c *RetryingClient) { c.sleep = fn }
}

// WithJitter replaces the [0,1) random source used by the backoff.
func WithJitter(fn func() float64) Option {
	return func(c *RetryingClient) { c.jitter = fn }
}

// NewRetryingClient wraps transport with the default policy: 6 attempts, 1s..60s backoff.
func NewRetryingClient(transport Transport, opts ...Option) *RetryingClient {
	c := &RetryingClient{
		transport:   transport,
		maxAttempts: DefaultMaxAttempts,
		backoff:     Backoff{Base: DefaultBackoffBase, Max: DefaultBackoffMax},
		sleep:       sleepContext,
		jitter:      rand.Float64,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete sends prompt and returns the generated text.
// Missing credentials fail at once with *ConfigurationError. Any transport
// error is retried; when attempts run out a *CompletionFailedError wraps the last one.
// The fixed safety table is applied regardless of cfg.Safety.
func (c *RetryingClient) Complete(ctx context.Context, prompt string, cfg models.GenerationConfig, creds Credentials) (string, error) {
	if !creds.Valid() {
		return "", &ConfigurationError{Reason: "API key not configured"}
	}
	if c.transport == nil {
		return "", &ConfigurationError{Reason: "no LLM transport configured"}
	}
	cfg.Safety = models.DefaultSafetySettings()

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		start := time.Now()
		text, err := c.transport.Generate(ctx, prompt, cfg, creds)
		if err == nil && strings.TrimSpace(text) == "" {
			err = ErrEmptyCompletion
		}
		if err == nil {
			log.Info().
				Int("attempt", attempt).
				Int("response_len", len(text)).
				Dur("duration", time.Since(start)).
				Msg("Completion succeeded")
			return text, nil
		}
		lastErr = err

		if attempt == c.maxAttempts {
			break
		}
		delay := c.backoff.Delay(attempt, c.jitter())
		log.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_attempts", c.maxAttempts).
			Dur("backoff", delay).
			Msg("Completion attempt failed, retrying")

		if sleepErr := c.sleep(ctx, delay); sleepErr != nil {
			return "", &CompletionFailedError{Attempts: attempt, Err: errors.Join(sleepErr, lastErr)}
		}
	}

	log.Error().
		Err(lastErr).
		Int("attempts", c.maxAttempts).
		Msg("Completion failed permanently after max attempts")
	return "", &CompletionFailedError{Attempts: c.maxAttempts, Err: lastErr}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
