package rules

// RecordingRules returns the pre-computed rates used by the dashboard and
// the alert rules.
func RecordingRules() PrometheusRule {
	return newRule("collectopedia-recording-rules", RuleGroup{
		Name: "collectopedia-recording",
		Rules: []Rule{
			{
				Record: "collectopedia:http_requests:rate5m",
				Expr:   `sum(rate(collectopedia_http_requests_total[5m]))`,
			},
			{
				Record: "collectopedia:http_errors:rate5m",
				Expr:   `sum(rate(collectopedia_http_requests_total{status=~"5.."}[5m]))`,
			},
			{
				Record: "collectopedia:price_lookups:rate5m",
				Expr:   `sum by (listing_type, outcome) (rate(collectopedia_price_lookups_total[5m]))`,
			},
			{
				Record: "collectopedia:upstream_calls:rate5m",
				Expr:   `sum by (upstream) (rate(collectopedia_upstream_calls_total[5m]))`,
			},
			{
				Record: "collectopedia:refresh_failures:rate1h",
				Expr:   `sum(rate(collectopedia_refresh_items_total{result="failed"}[1h]))`,
			},
		},
	})
}
