package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/gauge"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

func upDownStat(title, description, expr string) *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(expr, "", "A")).
		Thresholds(ThresholdsRedGreen(1)).
		ColorScheme(colorByThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone).
		TextMode(common.BigValueTextModeValue)
}

// HealthzStat shows the liveness probe (1 = ok).
func HealthzStat() *stat.PanelBuilder {
	return upDownStat("Healthz", "Liveness probe status (1 = ok, 0 = failing)", `collectopedia_healthz_up`)
}

// ReadyzStat shows the readiness probe (1 = ready).
func ReadyzStat() *stat.PanelBuilder {
	return upDownStat("Readyz", "Database reachable (1 = ready, 0 = not ready)", `collectopedia_readyz_up`)
}

// EbayQuotaGauge shows eBay calls in the current window as a percentage of
// the daily budget.
func EbayQuotaGauge() *gauge.PanelBuilder {
	expr := fmt.Sprintf(`collectopedia_upstream_quota_usage{upstream="ebay_browse"} / %d * 100`, EbayDailyCalls)
	return gauge.NewPanelBuilder().
		Title("eBay Quota %").
		Description(fmt.Sprintf("Browse API calls in the current window (budget %d)", EbayDailyCalls)).
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(expr, "", "A")).
		Unit("percent").
		Min(0).
		Max(100).
		Thresholds(ThresholdsGreenYellowRed(80, 95)).
		ColorScheme(colorByThresholds())
}

// UptimeStat shows time since process start.
func UptimeStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Uptime").
		Description("Time since process start").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`time() - process_start_time_seconds{`+Job+`}`, "", "A")).
		Unit("s").
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(colorByThresholds()).
		GraphMode(common.BigValueGraphModeNone)
}
