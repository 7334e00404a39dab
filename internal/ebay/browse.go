package ebay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/collectopedia/internal/metrics"
	"github.com/donaldgifford/collectopedia/internal/quota"
	"github.com/donaldgifford/collectopedia/internal/tracing"
	domain "github.com/donaldgifford/collectopedia/pkg/types"
)

const (
	defaultBrowseURL   = "https://api.ebay.com/buy/browse/v1/item_summary/search"
	defaultMarketplace = "EBAY_GB"
	defaultLimit       = 100

	marketplaceHeader = "X-EBAY-C-MARKETPLACE-ID"
)

// BrowseClient searches currently active listings through the eBay Browse
// API.
type BrowseClient struct {
	tokens      TokenProvider
	browseURL   string
	client      *http.Client
	rateLimiter *quota.Limiter
}

// BrowseOption configures the BrowseClient.
type BrowseOption func(*BrowseClient)

// WithBrowseURL overrides the default Browse API endpoint.
func WithBrowseURL(u string) BrowseOption {
	return func(c *BrowseClient) {
		c.browseURL = u
	}
}

// WithBrowseHTTPClient overrides the default HTTP client.
func WithBrowseHTTPClient(hc *http.Client) BrowseOption {
	return func(c *BrowseClient) {
		c.client = hc
	}
}

// WithRateLimiter injects a quota limiter. When set, every search goes
// through Wait() first.
func WithRateLimiter(r *quota.Limiter) BrowseOption {
	return func(c *BrowseClient) {
		c.rateLimiter = r
	}
}

// NewBrowseClient creates a new eBay Browse API client.
func NewBrowseClient(tokens TokenProvider, opts ...BrowseOption) *BrowseClient {
	c := &BrowseClient{
		tokens:    tokens,
		browseURL: defaultBrowseURL,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether the client has credentials to request a token.
func (c *BrowseClient) Configured() bool {
	return c.tokens != nil && c.tokens.HasCredentials()
}

// SearchListed queries the Browse API and returns every item summary with
// its normalized price.
func (c *BrowseClient) SearchListed(
	ctx context.Context,
	req domain.ListedSearch,
) (items []domain.RawListing, err error) {
	ctx, span := tracing.Tracer("ebay").Start(ctx, "ebay.SearchListed",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("ebay.marketplace", req.MarketplaceID)),
	)
	defer func() {
		span.SetAttributes(attribute.Int("ebay.items", len(items)))
		tracing.End(span, err)
	}()

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting auth token: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.buildSearchURL(req), http.NoBody,
	)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	marketplace := req.MarketplaceID
	if marketplace == "" {
		marketplace = defaultMarketplace
	}

	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set(marketplaceHeader, marketplace)
	httpReq.Header.Set("Content-Type", "application/json")

	metrics.UpstreamCallsTotal.WithLabelValues("ebay_browse").Inc()

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing search request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if inv, ok := c.tokens.(tokenInvalidator); ok {
			inv.Invalidate()
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"eBay API error (status %d): %s",
			resp.StatusCode,
			string(body),
		)
	}

	var apiResp browseAPIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	return ToRawListings(apiResp.ItemSummaries), nil
}

func (c *BrowseClient) buildSearchURL(req domain.ListedSearch) string {
	params := url.Values{}
	params.Set("q", req.Query)

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	params.Set("limit", strconv.Itoa(limit))

	if req.Sort != "" {
		params.Set("sort", req.Sort)
	}

	if req.Filter != "" {
		params.Set("filter", req.Filter)
	}

	return c.browseURL + "?" + params.Encode()
}
