package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// UpstreamCallsRate shows outbound calls per second per upstream.
func UpstreamCallsRate() *timeseries.PanelBuilder {
	return lineSeries("Upstream Calls", "Calls to eBay Browse and the sold-listings API", "reqps", ThirdWidth).
		WithTarget(PromQuery(`collectopedia:upstream_calls:rate5m`, "{{upstream}}", "A")).
		Legend(tableLegend("mean", "max"))
}

// QuotaUsage shows calls spent in the current quota window per upstream.
func QuotaUsage() *timeseries.PanelBuilder {
	return lineSeries("Quota Used", "Calls spent in the current quota window", "short", ThirdWidth).
		WithTarget(PromQuery(`collectopedia_upstream_quota_usage{`+Job+`}`, "{{upstream}}", "A")).
		Thresholds(ThresholdsGreenYellowRed(float64(EbayDailyCalls)*0.8, float64(EbayDailyCalls))).
		ColorScheme(colorByThresholds())
}

// QuotaExhaustions shows calls refused locally because a budget ran out.
func QuotaExhaustions() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Quota Exhausted (24h)").
		Description("Upstream calls refused because the window budget was spent").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(
			`sum(increase(collectopedia_upstream_quota_exhausted_total{`+Job+`}[24h]))`,
			"", "A",
		)).
		Thresholds(ThresholdsGreenYellowRed(1, 50)).
		ColorScheme(colorByThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
