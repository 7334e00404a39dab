package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RefreshOutcomes shows catalog items refreshed per hour by result.
func RefreshOutcomes() *timeseries.PanelBuilder {
	return lineSeries("Items Refreshed / h", "Refresh results: updated, skipped, failed", "short", ThirdWidth).
		WithTarget(PromQuery(
			`sum by (result) (increase(collectopedia_refresh_items_total{`+Job+`}[1h]))`,
			"{{result}}", "A",
		)).
		DrawStyle(common.GraphDrawStyleBars)
}

// RefreshDuration shows median and p95 duration of full refresh passes.
func RefreshDuration() *timeseries.PanelBuilder {
	const metric = "collectopedia_refresh_duration_seconds"
	return lineSeries("Refresh Pass Duration", "Wall time of a full catalog pass", "s", ThirdWidth).
		WithTarget(PromQuery(quantile(0.50, metric, "le"), "p50", "A")).
		WithTarget(PromQuery(quantile(0.95, metric, "le"), "p95", "B"))
}

// NotificationFailures shows refresh summaries that could not be delivered.
func NotificationFailures() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Notification Failures (24h)").
		Description("Refresh summaries that failed to reach Discord or Telegram").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(
			`increase(collectopedia_notification_failures_total{`+Job+`}[24h])`,
			"", "A",
		)).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(colorByThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}
