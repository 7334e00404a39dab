// Package engine keeps catalog item values current by pricing each item
// against the upstream listing sources.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/donaldgifford/collectopedia/internal/metrics"
	"github.com/donaldgifford/collectopedia/internal/notify"
	"github.com/donaldgifford/collectopedia/internal/tracing"
	"github.com/donaldgifford/collectopedia/internal/store"
	domain "github.com/donaldgifford/collectopedia/pkg/types"
)

const (
	defaultBatchSize   = 25
	defaultItemTimeout = 30 * time.Second
	defaultStagger     = 500 * time.Millisecond
	notifyTimeout      = 10 * time.Second
)

// ErrRefreshInProgress is returned when a refresh is requested while another
// one is still running.
var ErrRefreshInProgress = errors.New("refresh already in progress")

// ErrUnstorableValue is returned by RoundValue for prices that do not fit
// the catalog's integer value column.
var ErrUnstorableValue = errors.New("price cannot be stored as an item value")

// Pricer looks up price statistics for a single query.
type Pricer interface {
	GetPrices(ctx context.Context, q domain.PriceQuery) domain.PriceStats
}

// Refresher walks the catalog in fixed-size batches and stores each item's
// rounded median price.
type Refresher struct {
	store    store.Store
	pricer   Pricer
	notifier notify.Notifier
	log      *slog.Logger

	batchSize   int
	itemTimeout time.Duration
	stagger     time.Duration
	nowFunc     func() time.Time

	mu sync.Mutex
}

// RefresherOption configures the Refresher.
type RefresherOption func(*Refresher)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) RefresherOption {
	return func(r *Refresher) {
		r.log = l
	}
}

// WithNotifier sets where full refresh summaries are sent.
func WithNotifier(n notify.Notifier) RefresherOption {
	return func(r *Refresher) {
		r.notifier = n
	}
}

// WithBatchSize sets how many items one batch loads.
func WithBatchSize(n int) RefresherOption {
	return func(r *Refresher) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

// WithItemTimeout bounds each item's price lookup.
func WithItemTimeout(d time.Duration) RefresherOption {
	return func(r *Refresher) {
		if d > 0 {
			r.itemTimeout = d
		}
	}
}

// WithStagger sets the pause between consecutive items. Zero disables it.
func WithStagger(d time.Duration) RefresherOption {
	return func(r *Refresher) {
		r.stagger = d
	}
}

// WithNowFunc overrides the clock used for price_updated_at.
func WithNowFunc(f func() time.Time) RefresherOption {
	return func(r *Refresher) {
		r.nowFunc = f
	}
}

// NewRefresher creates a Refresher.
func NewRefresher(s store.Store, p Pricer, opts ...RefresherOption) *Refresher {
	r := &Refresher{
		store:       s,
		pricer:      p,
		notifier:    notify.NewNoOpNotifier(slog.Default()),
		log:         slog.Default(),
		batchSize:   defaultBatchSize,
		itemTimeout: defaultItemTimeout,
		stagger:     defaultStagger,
		nowFunc:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunBatch refreshes one page of items starting at offset. Items are
// processed sequentially. A partial result is returned along with the
// context error if ctx ends mid-batch.
func (r *Refresher) RunBatch(ctx context.Context, offset int) (*domain.RefreshResult, error) {
	if !r.mu.TryLock() {
		return nil, ErrRefreshInProgress
	}
	defer r.mu.Unlock()

	return r.runBatch(ctx, offset)
}

// RunAll refreshes every item, batch by batch, and returns the summed
// result. A summary is sent to the notifier whether or not the pass
// completes.
func (r *Refresher) RunAll(ctx context.Context) (*domain.RefreshResult, error) {
	if !r.mu.TryLock() {
		return nil, ErrRefreshInProgress
	}
	defer r.mu.Unlock()

	ctx, span := tracing.Tracer("engine").Start(ctx, "engine.RunAll")
	start := time.Now()
	total, err := r.runAll(ctx)
	elapsed := time.Since(start)
	metrics.RefreshDuration.Observe(elapsed.Seconds())
	span.SetAttributes(
		attribute.Int("refresh.processed", total.Processed),
		attribute.Int("refresh.updated", total.Updated),
		attribute.Int("refresh.failed", total.Failed),
	)
	tracing.End(span, err)

	if err == nil {
		r.log.Info("refresh complete",
			"processed", total.Processed,
			"updated", total.Updated,
			"skipped", total.Skipped,
			"failed", total.Failed,
			"duration", elapsed,
		)
	}
	r.notify(ctx, total, elapsed, err)

	return total, err
}

func (r *Refresher) notify(ctx context.Context, total *domain.RefreshResult, elapsed time.Duration, runErr error) {
	summary := &notify.RefreshSummary{
		Processed: total.Processed,
		Updated:   total.Updated,
		Skipped:   total.Skipped,
		Failed:    total.Failed,
		Duration:  elapsed,
	}
	if runErr != nil {
		summary.Err = runErr.Error()
	}

	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	if err := r.notifier.SendRefreshSummary(nctx, summary); err != nil {
		r.log.Warn("sending refresh summary", "error", err)
	}
}

func (r *Refresher) runAll(ctx context.Context) (*domain.RefreshResult, error) {
	total := &domain.RefreshResult{}
	offset := 0
	for {
		res, err := r.runBatch(ctx, offset)
		if res != nil {
			total.Processed += res.Processed
			total.Updated += res.Updated
			total.Skipped += res.Skipped
			total.Failed += res.Failed
			total.NextOffset = res.NextOffset
			total.HasMore = res.HasMore
		}
		if err != nil {
			return total, err
		}
		if !res.HasMore || res.NextOffset <= offset {
			break
		}
		offset = res.NextOffset
	}
	return total, nil
}

func (r *Refresher) runBatch(ctx context.Context, offset int) (*domain.RefreshResult, error) {
	offset = max(offset, 0)

	items, total, err := r.store.ListItems(ctx, &store.ItemQuery{
		Limit:  r.batchSize,
		Offset: offset,
	})
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	res := &domain.RefreshResult{NextOffset: offset}
	for i := range items {
		if i > 0 && r.stagger > 0 {
			if err := sleepCtx(ctx, r.stagger); err != nil {
				return res, err
			}
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}

		outcome := r.refreshItem(ctx, &items[i])
		metrics.RefreshItemsTotal.WithLabelValues(outcome).Inc()

		res.Processed++
		res.NextOffset++
		switch outcome {
		case outcomeUpdated:
			res.Updated++
		case outcomeSkipped:
			res.Skipped++
		default:
			res.Failed++
		}
	}

	res.HasMore = res.NextOffset < total
	return res, nil
}

const (
	outcomeUpdated = "updated"
	outcomeSkipped = "skipped"
	outcomeFailed  = "failed"
)

func (r *Refresher) refreshItem(ctx context.Context, item *domain.Item) string {
	itemCtx, cancel := context.WithTimeout(ctx, r.itemTimeout)
	defer cancel()

	stats := r.pricer.GetPrices(itemCtx, item.Query())

	switch {
	case stats.Error != "":
		r.log.Warn("item price lookup failed",
			"item_id", item.ID,
			"name", item.Name,
			"error", stats.Error,
			"details", stats.Details,
		)
		return outcomeFailed
	case stats.Message != "" || stats.Median <= 0:
		r.log.Debug("item skipped",
			"item_id", item.ID,
			"name", item.Name,
			"message", stats.Message,
		)
		return outcomeSkipped
	}

	value, err := RoundValue(stats.Median)
	if err != nil {
		r.log.Warn("item value rejected",
			"item_id", item.ID,
			"name", item.Name,
			"error", err,
		)
		return outcomeFailed
	}
	if err = r.store.UpdateItemValue(ctx, item.ID, value, r.nowFunc()); err != nil {
		r.log.Error("storing item value",
			"item_id", item.ID,
			"error", err,
		)
		return outcomeFailed
	}

	r.log.Debug("item value updated",
		"item_id", item.ID,
		"name", item.Name,
		"value", value,
	)
	return outcomeUpdated
}

// RoundValue rounds a price to the nearest whole currency unit, halves away
// from zero. NaN, infinities and results outside the int32 range return
// ErrUnstorableValue.
func RoundValue(price float64) (int, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("%w: %v", ErrUnstorableValue, price)
	}

	d := decimal.NewFromFloat(price).Round(0)
	if d.GreaterThan(maxItemValue) || d.LessThan(minItemValue) {
		return 0, fmt.Errorf("%w: %s out of range", ErrUnstorableValue, d)
	}
	return int(d.IntPart()), nil
}

var (
	maxItemValue = decimal.NewFromInt(math.MaxInt32)
	minItemValue = decimal.NewFromInt(math.MinInt32)
)

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
