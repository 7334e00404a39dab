package main

import "errors"

// KnownMetrics is the set of metric names exported by collectopedia plus the
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP.
	"collectopedia_http_request_duration_seconds": true,
	"collectopedia_http_requests_total":           true,
	"collectopedia_rate_limit_rejections_total":   true,

	// Health.
	"collectopedia_healthz_up": true,
	"collectopedia_readyz_up":  true,

	// Pricing.
	"collectopedia_price_lookups_total":            true,
	"collectopedia_price_lookup_duration_seconds":  true,
	"collectopedia_upstream_calls_total":           true,
	"collectopedia_upstream_quota_usage":           true,
	"collectopedia_upstream_quota_exhausted_total": true,

	// Refresh.
	"collectopedia_refresh_items_total":           true,
	"collectopedia_refresh_duration_seconds":      true,
	"collectopedia_notification_duration_seconds": true,
	"collectopedia_notification_failures_total":   true,

	// Recording rules.
	"collectopedia:http_requests:rate5m":    true,
	"collectopedia:http_errors:rate5m":      true,
	"collectopedia:price_lookups:rate5m":    true,
	"collectopedia:upstream_calls:rate5m":   true,
	"collectopedia:refresh_failures:rate1h": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig generates all artifacts into ../../deploy (relative to
// tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
