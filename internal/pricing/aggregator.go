// Package pricing turns upstream listing data into lowest, median and
// highest price estimates.
package pricing

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/collectopedia/internal/metrics"
	"github.com/donaldgifford/collectopedia/internal/tracing"
	domain "github.com/donaldgifford/collectopedia/pkg/types"
)

// Messages and errors reported in degraded PriceStats.
const (
	MsgMissingParams      = "Missing required parameters"
	MsgMissingSoldCreds   = "Missing API credentials"
	MsgMissingListedCreds = "Missing eBay API credentials"
	MsgNoSoldItems        = "No sold items data"
	MsgNoActiveItems      = "No active items found"
	MsgNoValidPrices      = "No valid prices found"

	ErrFetchSoldPrices   = "Failed to fetch sold item prices"
	ErrFetchListedPrices = "Failed to fetch active listing prices"
)

const (
	defaultSoldCategory = "9355"
	resultLimit         = 100
	sortByPrice         = "price"
)

// ListedSource searches currently active listings.
type ListedSource interface {
	Configured() bool
	SearchListed(ctx context.Context, req domain.ListedSearch) ([]domain.RawListing, error)
}

// SoldSource searches completed listings.
type SoldSource interface {
	Configured() bool
	SearchSold(ctx context.Context, req domain.SoldSearch) (*domain.SoldResult, error)
}

// Aggregator answers price queries from one of two upstream sources. It is
// safe for concurrent use; it holds no per-call state.
type Aggregator struct {
	listed        ListedSource
	sold          SoldSource
	regions       domain.RegionTable
	defaultRegion domain.Region
	soldCategory  string
	log           *slog.Logger
}

// Option configures the Aggregator.
type Option func(*Aggregator)

// WithRegions replaces the built-in region table. The table is copied.
func WithRegions(t domain.RegionTable) Option {
	return func(a *Aggregator) {
		regions := make(domain.RegionTable, len(t))
		for k, v := range t {
			regions[k] = v
		}
		a.regions = regions
	}
}

// WithDefaultRegion sets the region used when a query names an unknown one.
func WithDefaultRegion(r domain.Region) Option {
	return func(a *Aggregator) {
		a.defaultRegion = r
	}
}

// WithSoldCategory sets the category sold searches are scoped to. An empty
// id keeps the default collectibles category.
func WithSoldCategory(id string) Option {
	return func(a *Aggregator) {
		if id != "" {
			a.soldCategory = id
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Aggregator) {
		a.log = l
	}
}

// NewAggregator creates an Aggregator. Either source may be nil, in which
// case queries against it report missing credentials.
func NewAggregator(listed ListedSource, sold SoldSource, opts ...Option) *Aggregator {
	a := &Aggregator{
		listed:        listed,
		sold:          sold,
		regions:       domain.DefaultRegions(),
		defaultRegion: domain.DefaultRegion,
		soldCategory:  defaultSoldCategory,
		log:           slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// HasRegion reports whether r has an entry in the region table.
func (a *Aggregator) HasRegion(r domain.Region) bool {
	_, ok := a.regions[r]
	return ok
}

// GetPrices runs one price lookup. It never fails: every problem is reported
// through the Message or Error fields of the returned stats.
func (a *Aggregator) GetPrices(ctx context.Context, q domain.PriceQuery) domain.PriceStats {
	start := time.Now()
	ctx, span := tracing.Tracer("pricing").Start(ctx, "pricing.GetPrices",
		trace.WithAttributes(
			attribute.String("pricing.listing_type", string(q.ListingType)),
			attribute.String("pricing.region", string(q.Region)),
			attribute.String("pricing.condition", string(q.Condition)),
		),
	)
	defer span.End()

	stats := a.getPrices(ctx, q)
	if !q.IncludeItems {
		stats.Items = nil
	}

	outcome := "ok"
	switch {
	case stats.Error != "":
		outcome = "error"
	case stats.Message != "":
		outcome = "message"
	}
	lt := string(q.ListingType)
	if !q.ListingType.Valid() {
		lt = "invalid"
	}
	span.SetAttributes(attribute.String("pricing.outcome", outcome))
	if stats.Error != "" {
		span.SetStatus(codes.Error, stats.Error)
	}
	metrics.PriceLookupsTotal.WithLabelValues(lt, outcome).Inc()
	metrics.PriceLookupDuration.WithLabelValues(lt).Observe(time.Since(start).Seconds())

	return stats
}

func (a *Aggregator) getPrices(ctx context.Context, q domain.PriceQuery) domain.PriceStats {
	if strings.TrimSpace(q.SearchTerm) == "" || !q.ListingType.Valid() {
		return domain.PriceStats{ListingType: q.ListingType, Message: MsgMissingParams}
	}

	region := a.resolveRegion(q.Region)

	if q.ListingType == domain.ListingSold {
		return a.soldPrices(ctx, q, region)
	}
	return a.listedPrices(ctx, q, region)
}

func (a *Aggregator) resolveRegion(r domain.Region) domain.RegionConfig {
	if cfg, ok := a.regions[r]; ok {
		return cfg
	}
	if r != "" {
		a.log.Warn("unknown region, using default",
			"region", r,
			"default", a.defaultRegion,
		)
	}
	return a.regions[a.defaultRegion]
}

func (a *Aggregator) soldPrices(
	ctx context.Context,
	q domain.PriceQuery,
	region domain.RegionConfig,
) domain.PriceStats {
	if a.sold == nil || !a.sold.Configured() {
		return domain.PriceStats{ListingType: q.ListingType, Message: MsgMissingSoldCreds}
	}

	res, err := a.sold.SearchSold(ctx, domain.SoldSearch{
		Keywords:       SoldKeywords(q.SearchTerm, q.Condition),
		CategoryID:     a.soldCategory,
		SiteID:         region.SiteID,
		MaxResults:     resultLimit,
		RemoveOutliers: true,
	})
	if err != nil {
		a.log.Error("sold listings lookup failed",
			"search_term", q.SearchTerm,
			"error", err,
		)
		return domain.PriceStats{
			ListingType: q.ListingType,
			Error:       ErrFetchSoldPrices,
			Details:     err.Error(),
		}
	}

	if res == nil || len(res.Items) == 0 {
		return domain.PriceStats{ListingType: q.ListingType, Message: MsgNoSoldItems}
	}

	a.log.Debug("sold listings fetched",
		"search_term", q.SearchTerm,
		"items", len(res.Items),
		"upstream_average", res.AveragePrice,
	)

	return summarize(q.ListingType, res.Items)
}

func (a *Aggregator) listedPrices(
	ctx context.Context,
	q domain.PriceQuery,
	region domain.RegionConfig,
) domain.PriceStats {
	if a.listed == nil || !a.listed.Configured() {
		return domain.PriceStats{ListingType: q.ListingType, Message: MsgMissingListedCreds}
	}

	items, err := a.listed.SearchListed(ctx, domain.ListedSearch{
		Query:         q.SearchTerm,
		Sort:          sortByPrice,
		Limit:         resultLimit,
		Filter:        ListedFilter(region, q.Condition),
		MarketplaceID: region.MarketplaceID,
	})
	if err != nil {
		a.log.Error("active listings lookup failed",
			"search_term", q.SearchTerm,
			"error", err,
		)
		return domain.PriceStats{
			ListingType: q.ListingType,
			Error:       ErrFetchListedPrices,
			Details:     err.Error(),
		}
	}

	if len(items) == 0 {
		return domain.PriceStats{ListingType: q.ListingType, Message: MsgNoActiveItems}
	}

	return summarize(q.ListingType, items)
}

// SoldKeywords appends the condition to the search term. The sold source
// has no structured condition filter.
func SoldKeywords(term string, c domain.Condition) string {
	if c == "" {
		return term
	}
	return term + " " + string(c)
}

// ListedFilter builds the Browse API filter expression for a region and an
// optional condition.
func ListedFilter(region domain.RegionConfig, c domain.Condition) string {
	filter := "deliveryCountry:" + region.DeliveryCountry +
		",itemLocationCountry:" + region.LocationCountry
	if c != "" {
		filter += ",conditions:" + strings.ToUpper(string(c))
	}
	return filter
}

func summarize(lt domain.ListingType, items []domain.RawListing) domain.PriceStats {
	prices := make([]float64, 0, len(items))
	raw := make([]json.RawMessage, 0, len(items))
	for _, it := range items {
		raw = append(raw, it.Raw)
		if it.Price != nil {
			prices = append(prices, *it.Price)
		}
	}

	if len(prices) == 0 {
		return domain.PriceStats{ListingType: lt, Message: MsgNoValidPrices}
	}

	lowest, median, highest := Stats(prices)
	return domain.PriceStats{
		Lowest:      lowest,
		Median:      median,
		Highest:     highest,
		ListingType: lt,
		Items:       raw,
	}
}

// Stats returns the lowest, median and highest of prices. The input is not
// modified. It returns zeros for an empty slice.
func Stats(prices []float64) (lowest, median, highest float64) {
	n := len(prices)
	if n == 0 {
		return 0, 0, 0
	}

	sorted := make([]float64, n)
	copy(sorted, prices)
	sort.Float64s(sorted)

	if n%2 == 0 {
		lo, hi := sorted[n/2-1], sorted[n/2]
		median = lo + (hi-lo)/2
	} else {
		median = sorted[n/2]
	}
	return sorted[0], median, sorted[n-1]
}
