package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/donaldgifford/collectopedia/internal/metrics"
)

// SlidingWindowStore is an in-memory echo RateLimiterStore that allows a
// fixed number of requests per key in any rolling window. It approximates
// the rolling count by weighting the previous fixed window's count by how
// much of it still overlaps the rolling window.
type SlidingWindowStore struct {
	limit   int
	window  time.Duration
	nowFunc func() time.Time

	mu        sync.Mutex
	counters  map[string]*windowCounter
	lastSweep time.Time
}

type windowCounter struct {
	start time.Time
	curr  int
	prev  int
}

// SlidingWindowOption configures a SlidingWindowStore.
type SlidingWindowOption func(*SlidingWindowStore)

// WithClock overrides the time source for testing.
func WithClock(f func() time.Time) SlidingWindowOption {
	return func(s *SlidingWindowStore) {
		s.nowFunc = f
	}
}

// NewSlidingWindowStore creates a store allowing limit requests per window.
func NewSlidingWindowStore(
	limit int,
	window time.Duration,
	opts ...SlidingWindowOption,
) *SlidingWindowStore {
	s := &SlidingWindowStore{
		limit:    limit,
		window:   window,
		nowFunc:  time.Now,
		counters: make(map[string]*windowCounter),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lastSweep = s.nowFunc()
	return s
}

// Allow implements echo's RateLimiterStore. A denied request is not counted.
func (s *SlidingWindowStore) Allow(identifier string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFunc()
	s.sweep(now)

	wc := s.counter(identifier, now)
	if s.estimate(wc, now) >= float64(s.limit) {
		return false, nil
	}
	wc.curr++
	return true, nil
}

// RetryAfter returns how long identifier must wait before its next request
// would be allowed. It returns zero when a request would be allowed now.
func (s *SlidingWindowStore) RetryAfter(identifier string) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFunc()
	wc, ok := s.counters[identifier]
	if !ok {
		return 0
	}
	s.roll(wc, now)

	if s.estimate(wc, now) < float64(s.limit) {
		return 0
	}
	if wc.curr >= s.limit || wc.prev == 0 {
		return wc.start.Add(s.window).Sub(now)
	}

	// Solve curr + prev*(1-t/window) < limit for the elapsed time t.
	need := 1 - float64(s.limit-wc.curr)/float64(wc.prev)
	t := time.Duration(math.Ceil(need*float64(s.window))) + time.Millisecond
	return wc.start.Add(t).Sub(now)
}

func (s *SlidingWindowStore) counter(key string, now time.Time) *windowCounter {
	wc, ok := s.counters[key]
	if !ok {
		wc = &windowCounter{start: now.Truncate(s.window)}
		s.counters[key] = wc
		return wc
	}
	s.roll(wc, now)
	return wc
}

// roll advances wc so that its current window contains now.
func (s *SlidingWindowStore) roll(wc *windowCounter, now time.Time) {
	start := now.Truncate(s.window)
	switch elapsed := start.Sub(wc.start); {
	case elapsed <= 0:
		return
	case elapsed == s.window:
		wc.prev = wc.curr
	default:
		wc.prev = 0
	}
	wc.curr = 0
	wc.start = start
}

func (s *SlidingWindowStore) estimate(wc *windowCounter, now time.Time) float64 {
	elapsed := now.Sub(wc.start)
	weight := 1 - float64(elapsed)/float64(s.window)
	return float64(wc.curr) + float64(wc.prev)*weight
}

// sweep drops counters idle for two full windows. It runs at most once per
// window.
func (s *SlidingWindowStore) sweep(now time.Time) {
	if now.Sub(s.lastSweep) < s.window {
		return
	}
	s.lastSweep = now
	cutoff := now.Truncate(s.window).Add(-s.window)
	for k, wc := range s.counters {
		if wc.start.Before(cutoff) {
			delete(s.counters, k)
		}
	}
}

// Len returns the number of tracked identifiers.
func (s *SlidingWindowStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.counters)
}

// RateLimit returns Echo middleware that limits requests per client IP
// using store. Only requests whose route is one of paths are limited.
func RateLimit(store *SlidingWindowStore, paths ...string) echo.MiddlewareFunc {
	limited := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		limited[p] = struct{}{}
	}

	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			_, ok := limited[c.Path()]
			return !ok
		},
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "unable to identify client").
				SetInternal(err)
		},
		DenyHandler: func(c echo.Context, identifier string, _ error) error {
			metrics.RateLimitRejectionsTotal.Inc()
			retry := store.RetryAfter(identifier)
			secs := int(math.Ceil(retry.Seconds()))
			c.Response().Header().Set("Retry-After", strconv.Itoa(max(secs, 1)))
			return c.JSON(http.StatusTooManyRequests, map[string]any{
				"title":  http.StatusText(http.StatusTooManyRequests),
				"status": http.StatusTooManyRequests,
				"detail": "rate limit exceeded, try again later",
			})
		},
	})
}
