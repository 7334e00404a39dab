// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/collectopedia/tools/dashgen/panels"
)

// UID of the generated overview dashboard.
const UID = "collectopedia-overview"

// BuildOverview constructs the overview dashboard, one row per subsystem.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Collectopedia Pricing").
		Uid(UID).
		Tags([]string{"collectopedia", "pricing"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(dashboard.NewDatasourceVariableBuilder("datasource").
			Label("Datasource").
			Type("prometheus"))

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.EbayQuotaGauge()).
		WithPanel(panels.UptimeStat()))

	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()).
		WithPanel(panels.RateLimitRejections()))

	b.WithRow(dashboard.NewRowBuilder("Pricing").
		WithPanel(panels.LookupRate()).
		WithPanel(panels.LookupLatency()).
		WithPanel(panels.LookupErrorShare()))

	b.WithRow(dashboard.NewRowBuilder("Upstreams").
		WithPanel(panels.UpstreamCallsRate()).
		WithPanel(panels.QuotaUsage()).
		WithPanel(panels.QuotaExhaustions()))

	b.WithRow(dashboard.NewRowBuilder("Refresh").
		WithPanel(panels.RefreshOutcomes()).
		WithPanel(panels.RefreshDuration()).
		WithPanel(panels.NotificationFailures()))

	return b
}
