package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/snappy-loop/studio/internal/models"
)

// fakeTransport fails the first `failures` calls and then returns `text`.
type fakeTransport struct {
	failures int
	text     string
	calls    int
	lastCfg  models.GenerationConfig
}

func (f *fakeTransport) Generate(ctx context.Context, prompt string, cfg models.GenerationConfig, creds Credentials) (string, error) {
	f.calls++
	f.lastCfg = cfg
	if f.calls <= f.failures {
		return "", fmt.Errorf("transient failure %d", f.calls)
	}
	return f.text, nil
}

func noSleep(context.Context, time.Duration) error { return nil }

func newTestClient(tr Transport, opts ...Option) *RetryingClient {
	opts = append([]Option{WithSleeper(noSleep), WithJitter(func() float64 { return 0.5 })}, opts...)
	return NewRetryingClient(tr, opts...)
}

var testCreds = Credentials{APIKey: "test-key"}

func TestComplete_RetriesThenSucceeds(t *testing.T) {
	for n := 0; n < DefaultMaxAttempts; n++ {
		t.Run(fmt.Sprintf("%d failures", n), func(t *testing.T) {
			tr := &fakeTransport{failures: n, text: "script body"}
			c := newTestClient(tr)

			got, err := c.Complete(context.Background(), "prompt", models.DefaultGenerationConfig(), testCreds)
			if err != nil {
				t.Fatalf("Complete: %v", err)
			}
			if got != "script body" {
				t.Errorf("got %q, want %q", got, "script body")
			}
			if tr.calls != n+1 {
				t.Errorf("transport called %d times, want %d", tr.calls, n+1)
			}
		})
	}
}

func TestComplete_AlwaysFailing(t *testing.T) {
	tr := &fakeTransport{failures: 100}
	c := newTestClient(tr)

	_, err := c.Complete(context.Background(), "prompt", models.DefaultGenerationConfig(), testCreds)
	var cfe *CompletionFailedError
	if !errors.As(err, &cfe) {
		t.Fatalf("expected *CompletionFailedError, got %T: %v", err, err)
	}
	if cfe.Attempts != DefaultMaxAttempts {
		t.Errorf("Attempts = %d, want %d", cfe.Attempts, DefaultMaxAttempts)
	}
	if tr.calls != DefaultMaxAttempts {
		t.Errorf("transport called %d times, want %d", tr.calls, DefaultMaxAttempts)
	}
	if cfe.Unwrap() == nil {
		t.Error("expected last cause to be wrapped")
	}
}

func TestComplete_EmptyTextIsRetried(t *testing.T) {
	tr := &fakeTransport{text: "   "}
	c := newTestClient(tr, WithMaxAttempts(3))

	_, err := c.Complete(context.Background(), "prompt", models.DefaultGenerationConfig(), testCreds)
	if !errors.Is(err, ErrEmptyCompletion) {
		t.Fatalf("expected ErrEmptyCompletion in chain, got %v", err)
	}
	if tr.calls != 3 {
		t.Errorf("transport called %d times, want 3", tr.calls)
	}
}

func TestComplete_MissingCredentials(t *testing.T) {
	for _, creds := range []Credentials{{}, {APIKey: "   "}} {
		tr := &fakeTransport{text: "unused"}
		c := newTestClient(tr)

		_, err := c.Complete(context.Background(), "prompt", models.DefaultGenerationConfig(), creds)
		var ce *ConfigurationError
		if !errors.As(err, &ce) {
			t.Fatalf("expected *ConfigurationError, got %T: %v", err, err)
		}
		if tr.calls != 0 {
			t.Errorf("transport called %d times, want 0", tr.calls)
		}
	}
}

func TestComplete_ForcesSafetySettings(t *testing.T) {
	tr := &fakeTransport{text: "ok"}
	c := newTestClient(tr)

	cfg := models.DefaultGenerationConfig()
	cfg.Safety = nil
	if _, err := c.Complete(context.Background(), "prompt", cfg, testCreds); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if len(tr.lastCfg.Safety) != 4 {
		t.Fatalf("transport saw %d safety settings, want 4", len(tr.lastCfg.Safety))
	}
	for _, s := range tr.lastCfg.Safety {
		if s.Threshold != models.BlockMediumAndAbove {
			t.Errorf("category %s threshold = %s", s.Category, s.Threshold)
		}
	}
}

func TestComplete_ContextCancelledDuringBackoff(t *testing.T) {
	tr := &fakeTransport{failures: 100}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewRetryingClient(tr, WithJitter(func() float64 { return 0 }))

	_, err := c.Complete(ctx, "prompt", models.DefaultGenerationConfig(), testCreds)
	var cfe *CompletionFailedError
	if !errors.As(err, &cfe) {
		t.Fatalf("expected *CompletionFailedError, got %T: %v", err, err)
	}
	if cfe.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", cfe.Attempts)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got %v", err)
	}
}

func TestBackoffDelay(t *testing.T) {
	b := Backoff{Base: time.Second, Max: 60 * time.Second}
	tests := []struct {
		name    string
		attempt int
		u       float64
		want    time.Duration
	}{
		{"first attempt low", 1, 0, time.Second},
		{"first attempt high", 1, 0.999999, time.Second},
		{"third attempt low", 3, 0, time.Second},
		{"third attempt mid", 3, 0.5, 2500 * time.Millisecond},
		{"capped at max", 10, 0.5, time.Second + 29500*time.Millisecond},
		{"zero attempt treated as first", 0, 0.5, time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.Delay(tt.attempt, tt.u)
			if got != tt.want {
				t.Errorf("Delay(%d, %v) = %v, want %v", tt.attempt, tt.u, got, tt.want)
			}
		})
	}
}

func TestBackoffDelay_Bounds(t *testing.T) {
	b := Backoff{Base: time.Second, Max: 60 * time.Second}
	for attempt := 1; attempt <= 40; attempt++ {
		for _, u := range []float64{0, 0.25, 0.75, 1.5, -1} {
			d := b.Delay(attempt, u)
			if d < b.Base || d > b.Max {
				t.Errorf("Delay(%d, %v) = %v outside [%v, %v]", attempt, u, d, b.Base, b.Max)
			}
		}
	}
}
