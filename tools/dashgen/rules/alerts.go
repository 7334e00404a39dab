package rules

func alert(name, expr, forDur, severity, summary, description string) Rule {
	return Rule{
		Alert:  name,
		Expr:   expr,
		For:    forDur,
		Labels: map[string]string{"severity": severity},
		Annotations: map[string]string{
			"summary":     summary,
			"description": description,
		},
	}
}

// AlertRules returns the operational alerts for the pricing service.
func AlertRules() PrometheusRule {
	return newRule("collectopedia-alerts", RuleGroup{
		Name: "collectopedia-alerts",
		Rules: []Rule{
			alert("CollectopediaDown",
				`absent(up{job="collectopedia"})`, "2m", "critical",
				"Collectopedia pricing service is down",
				"The collectopedia job has been absent for more than 2 minutes."),
			alert("CollectopediaNotReady",
				`collectopedia_readyz_up == 0`, "2m", "critical",
				"Collectopedia cannot reach its database",
				"The readiness probe has been failing for more than 2 minutes."),
			alert("CollectopediaHighErrorRate",
				`collectopedia:http_errors:rate5m / collectopedia:http_requests:rate5m > 0.05`, "5m", "warning",
				"High HTTP error rate",
				"More than 5% of HTTP requests returned 5xx over the last 5 minutes."),
			alert("CollectopediaLookupErrors",
				`sum(collectopedia:price_lookups:rate5m{outcome="error"}) / sum(collectopedia:price_lookups:rate5m) > 0.2`, "10m", "warning",
				"Price lookups are failing upstream",
				"More than 20% of price lookups returned an upstream error for 10 minutes."),
			alert("CollectopediaEbayQuotaHigh",
				`collectopedia_upstream_quota_usage{upstream="ebay_browse"} > 4000`, "5m", "warning",
				"eBay call budget above 80%",
				"More than 4000 of the 5000 daily Browse API calls have been spent."),
			alert("CollectopediaQuotaExhausted",
				`increase(collectopedia_upstream_quota_exhausted_total[5m]) > 0`, "0m", "critical",
				"Upstream call budget exhausted",
				"Calls to {{ $labels.upstream }} are being refused until the quota window resets."),
			alert("CollectopediaRefreshFailures",
				`collectopedia:refresh_failures:rate1h > 0`, "2h", "warning",
				"Catalog refresh keeps failing items",
				"Items have failed to refresh continuously for two hours."),
			alert("CollectopediaNotificationFailures",
				`increase(collectopedia_notification_failures_total[15m]) > 0`, "1m", "warning",
				"Refresh summaries are not being delivered",
				"One or more Discord or Telegram refresh summaries failed to send."),
		},
	})
}
