package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// LookupRate shows price lookups per second by listing type and outcome.
func LookupRate() *timeseries.PanelBuilder {
	return lineSeries("Lookups", "Price lookups per second by listing type and outcome", "reqps", ThirdWidth).
		WithTarget(PromQuery(`collectopedia:price_lookups:rate5m`, "{{listing_type}} {{outcome}}", "A")).
		Legend(tableLegend("mean", "max")).
		Tooltip(multiTooltip())
}

// LookupLatency shows p95 lookup duration per listing type.
func LookupLatency() *timeseries.PanelBuilder {
	return lineSeries("Lookup Latency p95", "End-to-end price lookup duration", "s", ThirdWidth).
		WithTarget(PromQuery(
			quantile(0.95, "collectopedia_price_lookup_duration_seconds", "le, listing_type"),
			"{{listing_type}}", "A",
		)).
		Tooltip(multiTooltip())
}

// LookupErrorShare shows the share of lookups that ended in an upstream error.
func LookupErrorShare() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Lookup Errors %").
		Description("Lookups whose stats carry an upstream error").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(
			`sum(collectopedia:price_lookups:rate5m{outcome="error"}) / sum(collectopedia:price_lookups:rate5m) * 100`,
			"", "A",
		)).
		Unit("percent").
		Thresholds(ThresholdsGreenYellowRed(5, 20)).
		ColorScheme(colorByThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
