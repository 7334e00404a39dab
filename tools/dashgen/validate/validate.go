// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and every metric it selects must be known.
package validate

import (
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/collectopedia/tools/dashgen/rules"
)

// Result collects problems. Errors fail generation; warnings do not.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether there are no errors.
func (r *Result) Ok() bool { return len(r.Errors) == 0 }

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Merge appends other's problems to r.
func (r *Result) Merge(other Result) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Dashboard checks every Prometheus target of every panel, including panels
// nested in rows.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var res Result
	for _, p := range dash.Panels {
		if p.Panel != nil {
			checkPanel(&res, *p.Panel, known)
		}
		if p.RowPanel != nil {
			for _, inner := range p.RowPanel.Panels {
				checkPanel(&res, inner, known)
			}
		}
	}
	return res
}

func checkPanel(res *Result, p dashboard.Panel, known map[string]bool) {
	title := "<untitled>"
	if p.Title != nil {
		title = *p.Title
	}

	if len(p.Targets) == 0 {
		res.warnf("panel %q has no targets", title)
		return
	}

	for _, target := range p.Targets {
		expr, ok := promExpr(target)
		if !ok {
			res.warnf("panel %q has a non-Prometheus target", title)
			continue
		}
		Expr(res, "panel "+quote(title), expr, known)
	}
}

func promExpr(target any) (string, bool) {
	switch q := target.(type) {
	case prometheus.Dataquery:
		return q.Expr, true
	case *prometheus.Dataquery:
		return q.Expr, true
	default:
		return "", false
	}
}

// Rules checks every expression in a PrometheusRule.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var res Result
	for _, g := range cr.Spec.Groups {
		for _, r := range g.Rules {
			name := r.Record
			if name == "" {
				name = r.Alert
			}
			if name == "" {
				res.errorf("group %q has a rule with neither record nor alert", g.Name)
				continue
			}
			Expr(&res, "rule "+quote(name), r.Expr, known)
		}
	}
	return res
}

// Expr parses one PromQL expression and checks its selectors against known.
// Histogram series suffixes are stripped before the lookup.
func Expr(res *Result, where, expr string, known map[string]bool) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		res.errorf("%s: invalid PromQL %q: %v", where, expr, err)
		return
	}

	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok || vs.Name == "" {
			return nil
		}
		if !known[baseMetric(vs.Name)] {
			res.errorf("%s: unknown metric %q", where, vs.Name)
		}
		return nil
	})
}

func baseMetric(name string) string {
	for _, suffix := range []string{"_bucket", "_sum", "_count"} {
		if base, ok := strings.CutSuffix(name, suffix); ok {
			return base
		}
	}
	return name
}

func quote(s string) string { return fmt.Sprintf("%q", s) }
