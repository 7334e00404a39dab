package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/collectopedia/tools/dashgen/rules"
)

var known = map[string]bool{
	"collectopedia_http_requests_total":           true,
	"collectopedia_http_request_duration_seconds": true,
	"collectopedia:http_requests:rate5m":          true,
}

func TestExpr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		expr    string
		wantErr string
	}{
		{name: "counter rate", expr: `sum(rate(collectopedia_http_requests_total[5m]))`},
		{name: "recording rule", expr: `collectopedia:http_requests:rate5m * 60`},
		{
			name: "histogram bucket suffix",
			expr: `histogram_quantile(0.95, sum(rate(collectopedia_http_request_duration_seconds_bucket[5m])) by (le))`,
		},
		{name: "no selectors", expr: `time()`},
		{name: "unknown metric", expr: `rate(legacy_http_requests_total[5m])`, wantErr: `unknown metric "legacy_http_requests_total"`},
		{name: "syntax error", expr: `sum(rate(collectopedia_http_requests_total[5m])`, wantErr: "invalid PromQL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var res Result
			Expr(&res, "test", tt.expr, known)
			if tt.wantErr == "" {
				assert.True(t, res.Ok(), "errors: %v", res.Errors)
				return
			}
			require.Len(t, res.Errors, 1)
			assert.Contains(t, res.Errors[0], tt.wantErr)
		})
	}
}

func TestRules_NamelessRule(t *testing.T) {
	t.Parallel()

	res := Rules(rules.PrometheusRule{
		Spec: rules.PrometheusRuleSpec{Groups: []rules.RuleGroup{{
			Name:  "g",
			Rules: []rules.Rule{{Expr: `collectopedia:http_requests:rate5m`}},
		}}},
	}, known)

	require.False(t, res.Ok())
	assert.Contains(t, res.Errors[0], "neither record nor alert")
}

func TestResult_Merge(t *testing.T) {
	t.Parallel()

	a := Result{Errors: []string{"e1"}}
	a.Merge(Result{Errors: []string{"e2"}, Warnings: []string{"w1"}})

	assert.Equal(t, []string{"e1", "e2"}, a.Errors)
	assert.Equal(t, []string{"w1"}, a.Warnings)
	assert.False(t, a.Ok())
}
