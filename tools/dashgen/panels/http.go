package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

func lineSeries(title, description, unit string, width uint32) *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(DSRef()).
		Height(TSHeight).
		Span(width).
		Unit(unit).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(colorByPalette()).
		DrawStyle(common.GraphDrawStyleLine)
}

func quantile(q float64, metric, by string) string {
	return fmt.Sprintf(`histogram_quantile(%g, sum(rate(%s_bucket{%s}[5m])) by (%s))`, q, metric, Job, by)
}

// RequestRate shows HTTP requests per second.
func RequestRate() *timeseries.PanelBuilder {
	return lineSeries("Request Rate", "HTTP requests per second", "reqps", ThirdWidth).
		WithTarget(PromQuery(`collectopedia:http_requests:rate5m`, "req/s", "A")).
		Legend(tableLegend("mean", "max")).
		Tooltip(multiTooltip())
}

// LatencyPercentiles shows p50, p95 and p99 HTTP latency.
func LatencyPercentiles() *timeseries.PanelBuilder {
	const metric = "collectopedia_http_request_duration_seconds"
	return lineSeries("Latency Percentiles", "HTTP request duration percentiles", "s", ThirdWidth).
		WithTarget(PromQuery(quantile(0.50, metric, "le"), "p50", "A")).
		WithTarget(PromQuery(quantile(0.95, metric, "le"), "p95", "B")).
		WithTarget(PromQuery(quantile(0.99, metric, "le"), "p99", "C")).
		Legend(tableLegend("mean", "max")).
		Tooltip(multiTooltip())
}

// ErrorRate shows 5xx responses as a percentage of all requests.
func ErrorRate() *timeseries.PanelBuilder {
	return lineSeries("Error Rate %", "HTTP 5xx responses as a percentage of all requests", "percent", ThirdWidth).
		WithTarget(PromQuery(
			`collectopedia:http_errors:rate5m / collectopedia:http_requests:rate5m * 100`,
			"error %", "A",
		)).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(colorByThresholds())
}

// RateLimitRejections shows price lookups turned away with 429.
func RateLimitRejections() *timeseries.PanelBuilder {
	return lineSeries("Rate Limited", "Price lookups rejected by the per-client limiter", "reqps", TSWidth).
		WithTarget(PromQuery(`sum(rate(collectopedia_rate_limit_rejections_total{`+Job+`}[5m]))`, "429/s", "A"))
}
