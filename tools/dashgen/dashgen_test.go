package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/collectopedia/tools/dashgen/dashboards"
	"github.com/donaldgifford/collectopedia/tools/dashgen/rules"
	"github.com/donaldgifford/collectopedia/tools/dashgen/validate"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "default", cfg: DefaultConfig()},
		{name: "empty output dir", cfg: Config{DashboardEnabled: true}, wantErr: true},
		{name: "nothing enabled", cfg: Config{OutputDir: "/tmp"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBuildOverviewDashboard(t *testing.T) {
	t.Parallel()

	dash, err := dashboards.BuildOverview().Build()
	require.NoError(t, err)

	require.NotNil(t, dash.Uid)
	assert.Equal(t, "collectopedia-overview", *dash.Uid)
	require.NotNil(t, dash.Title)
	assert.Equal(t, "Collectopedia Pricing", *dash.Title)

	require.NotNil(t, dash.Templating)
	require.Len(t, dash.Templating.List, 1)
	assert.Equal(t, "datasource", dash.Templating.List[0].Name)

	assert.Len(t, dash.Panels, 5)
	inner := 0
	for _, p := range dash.Panels {
		if p.RowPanel != nil {
			inner += len(p.RowPanel.Panels)
		}
	}
	assert.Equal(t, 17, inner)

	result := validate.Dashboard(dash, KnownMetrics)
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestRecordingRules(t *testing.T) {
	t.Parallel()

	cr := rules.RecordingRules()
	assert.Equal(t, "monitoring.coreos.com/v1", cr.APIVersion)
	assert.Equal(t, "PrometheusRule", cr.Kind)
	assert.Equal(t, "collectopedia-recording-rules", cr.Metadata.Name)

	require.Len(t, cr.Spec.Groups, 1)
	for _, r := range cr.Spec.Groups[0].Rules {
		assert.True(t, KnownMetrics[r.Record], "recording rule %s missing from KnownMetrics", r.Record)
		assert.NotEmpty(t, r.Expr)
	}

	result := validate.Rules(cr, KnownMetrics)
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)
}

func TestAlertRules(t *testing.T) {
	t.Parallel()

	cr := rules.AlertRules()
	assert.Equal(t, "collectopedia-alerts", cr.Metadata.Name)

	require.Len(t, cr.Spec.Groups, 1)
	group := cr.Spec.Groups[0]
	require.Len(t, group.Rules, 8)

	for _, r := range group.Rules {
		assert.NotEmpty(t, r.Alert)
		assert.Contains(t, []string{"warning", "critical"}, r.Labels["severity"], r.Alert)
		assert.NotEmpty(t, r.Annotations["summary"], r.Alert)
		assert.NotEmpty(t, r.Annotations["description"], r.Alert)
	}

	result := validate.Rules(cr, KnownMetrics)
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)
}

func TestRun_WritesArtifacts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	written, err := run(Config{OutputDir: dir, DashboardEnabled: true, RulesEnabled: true}, false)
	require.NoError(t, err)
	require.Len(t, written, 3)

	dashJSON, err := os.ReadFile(filepath.Join(dir, "grafana", "collectopedia-overview.json"))
	require.NoError(t, err)
	assert.True(t, json.Valid(dashJSON))
	assert.Contains(t, string(dashJSON), "collectopedia_healthz_up")

	alertsYAML, err := os.ReadFile(filepath.Join(dir, "prometheus", "collectopedia-alerts.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(alertsYAML), generatedHeader)

	var cr rules.PrometheusRule
	require.NoError(t, yaml.Unmarshal(alertsYAML, &cr))
	assert.Equal(t, rules.AlertRules().Spec.Groups[0].Rules[0].Alert, cr.Spec.Groups[0].Rules[0].Alert)
}

func TestRun_ValidateOnlyWritesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	written, err := run(Config{OutputDir: dir, RulesEnabled: true}, true)
	require.NoError(t, err)
	assert.Empty(t, written)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
