// Package sold searches completed eBay listings through the RapidAPI
// "eBay Average Selling Price" service.
package sold

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/collectopedia/internal/metrics"
	"github.com/donaldgifford/collectopedia/internal/quota"
	"github.com/donaldgifford/collectopedia/internal/tracing"
	domain "github.com/donaldgifford/collectopedia/pkg/types"
)

const (
	defaultURL        = "https://ebay-average-selling-price.p.rapidapi.com/findCompletedItems"
	defaultHost       = "ebay-average-selling-price.p.rapidapi.com"
	defaultCategoryID = "9355"
	defaultMaxResults = 100
)

// ErrMissingAPIKey is returned when no RapidAPI key is configured.
var ErrMissingAPIKey = errors.New("sold listings API key not configured")

// Client calls the completed-items endpoint.
type Client struct {
	apiKey      string
	url         string
	host        string
	client      *http.Client
	rateLimiter *quota.Limiter
}

// Option configures the Client.
type Option func(*Client)

// WithURL overrides the completed-items endpoint.
func WithURL(u string) Option {
	return func(c *Client) {
		c.url = u
	}
}

// WithHost overrides the X-RapidAPI-Host header value.
func WithHost(h string) Option {
	return func(c *Client) {
		c.host = h
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithRateLimiter injects a quota limiter consulted before every call.
func WithRateLimiter(r *quota.Limiter) Option {
	return func(c *Client) {
		c.rateLimiter = r
	}
}

// NewClient creates a sold listings client for the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey: apiKey,
		url:    defaultURL,
		host:   defaultHost,
		client: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type searchRequest struct {
	Keywords         string `json:"keywords"`
	MaxSearchResults string `json:"max_search_results"`
	CategoryID       string `json:"category_id"`
	SiteID           string `json:"site_id"`
	RemoveOutliers   bool   `json:"remove_outliers"`
}

type searchResponse struct {
	AveragePrice json.RawMessage   `json:"average_price"`
	Products     []json.RawMessage `json:"products"`
}

type product struct {
	Price json.RawMessage `json:"price"`
}

// SearchSold returns completed listings for the given keywords. A response
// without a products array yields an empty result, not an error.
func (c *Client) SearchSold(
	ctx context.Context,
	req domain.SoldSearch,
) (result *domain.SoldResult, err error) {
	ctx, span := tracing.Tracer("sold").Start(ctx, "sold.SearchSold",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("sold.site_id", req.SiteID)),
	)
	defer func() {
		if result != nil {
			span.SetAttributes(attribute.Int("sold.items", len(result.Items)))
		}
		tracing.End(span, err)
	}()

	if !c.Configured() {
		return nil, ErrMissingAPIKey
	}

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	body, err := json.Marshal(buildRequest(req))
	if err != nil {
		return nil, fmt.Errorf("encoding search request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.url, bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-RapidAPI-Key", c.apiKey)
	httpReq.Header.Set("X-RapidAPI-Host", c.host)

	metrics.UpstreamCallsTotal.WithLabelValues("sold").Inc()

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing search request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf(
			"sold listings API error (status %d): %s",
			resp.StatusCode,
			string(respBody),
		)
	}

	var apiResp searchResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	result = &domain.SoldResult{
		Items: make([]domain.RawListing, 0, len(apiResp.Products)),
	}
	if avg := parsePrice(apiResp.AveragePrice); avg != nil {
		result.AveragePrice = *avg
	}
	for _, raw := range apiResp.Products {
		var p product
		listing := domain.RawListing{Raw: raw}
		if err := json.Unmarshal(raw, &p); err == nil {
			listing.Price = parsePrice(p.Price)
		}
		result.Items = append(result.Items, listing)
	}

	return result, nil
}

func buildRequest(req domain.SoldSearch) searchRequest {
	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	category := req.CategoryID
	if category == "" {
		category = defaultCategoryID
	}
	return searchRequest{
		Keywords:         req.Keywords,
		MaxSearchResults: strconv.Itoa(maxResults),
		CategoryID:       category,
		SiteID:           req.SiteID,
		RemoveOutliers:   req.RemoveOutliers,
	}
}

// parsePrice accepts a JSON number or a numeric string. Anything else,
// including null, NaN and infinities, yields nil.
func parsePrice(raw json.RawMessage) *float64 {
	if len(raw) == 0 {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil
		}
		s = n.String()
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
