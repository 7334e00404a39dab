// Package quota guards outbound calls to metered upstream APIs with a
// per-second token bucket and a call cap per rolling window.
package quota

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/donaldgifford/collectopedia/internal/metrics"
)

// ErrExhausted is returned when the window's call cap has been used up.
var ErrExhausted = errors.New("upstream call quota exhausted")

// Limiter controls the call rate and windowed usage for one upstream.
type Limiter struct {
	name     string
	limiter  *rate.Limiter
	maxCalls int64
	window   time.Duration

	mu      sync.Mutex
	used    int64
	resetAt time.Time
	nowFunc func() time.Time
}

// Option configures the Limiter.
type Option func(*Limiter)

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) Option {
	return func(l *Limiter) {
		l.nowFunc = f
	}
}

// WithWindow overrides the default 24 hour quota window.
func WithWindow(d time.Duration) Option {
	return func(l *Limiter) {
		l.window = d
	}
}

// New creates a limiter for the named upstream. A maxCalls of zero or less
// disables the windowed cap and leaves only the per-second limit.
func New(
	name string,
	perSecond float64,
	burst int,
	maxCalls int64,
	opts ...Option,
) *Limiter {
	l := &Limiter{
		name:     name,
		limiter:  rate.NewLimiter(rate.Limit(perSecond), burst),
		maxCalls: maxCalls,
		window:   24 * time.Hour,
		nowFunc:  time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.resetAt = l.nowFunc().Add(l.window)
	return l
}

// Wait blocks until a call is allowed or ctx is canceled. It returns
// ErrExhausted without blocking when the window cap is reached.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.reserve(); err != nil {
		metrics.UpstreamQuotaExhaustedTotal.WithLabelValues(l.name).Inc()
		return err
	}

	if err := l.limiter.Wait(ctx); err != nil {
		l.release()
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	metrics.UpstreamQuotaUsage.WithLabelValues(l.name).Set(float64(l.Used()))
	return nil
}

// Name returns the upstream this limiter guards.
func (l *Limiter) Name() string {
	return l.name
}

// MaxCalls returns the per-window call cap, zero or less when uncapped.
func (l *Limiter) MaxCalls() int64 {
	return l.maxCalls
}

// Used returns the number of calls made in the current window.
func (l *Limiter) Used() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rollLocked()
	return l.used
}

// Remaining returns the calls left in the current window, or -1 when the
// limiter has no cap.
func (l *Limiter) Remaining() int64 {
	if l.maxCalls <= 0 {
		return -1
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rollLocked()
	return max(l.maxCalls-l.used, 0)
}

// ResetAt returns when the current window expires.
func (l *Limiter) ResetAt() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rollLocked()
	return l.resetAt
}

func (l *Limiter) reserve() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rollLocked()

	if l.maxCalls > 0 && l.used >= l.maxCalls {
		return fmt.Errorf("%w: %s (%d/%d)", ErrExhausted, l.name, l.used, l.maxCalls)
	}

	l.used++
	return nil
}

// rollLocked starts a new window once the current one has expired. The
// caller must hold l.mu.
func (l *Limiter) rollLocked() {
	if now := l.nowFunc(); now.After(l.resetAt) {
		l.used = 0
		l.resetAt = now.Add(l.window)
	}
}

func (l *Limiter) release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.used > 0 {
		l.used--
	}
}
