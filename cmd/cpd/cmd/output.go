package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	apiclient "github.com/donaldgifford/collectopedia/internal/api/client"
	domain "github.com/donaldgifford/collectopedia/pkg/types"
)

const timeLayout = "2006-01-02 15:04:05"

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printPriceStats(w io.Writer, s *domain.PriceStats) error {
	tw := newTabWriter(w)
	tw.writef("Listing Type:\t%s\n", s.ListingType)
	tw.writef("Lowest:\t%.2f\n", s.Lowest)
	tw.writef("Median:\t%.2f\n", s.Median)
	tw.writef("Highest:\t%.2f\n", s.Highest)
	if s.Message != "" {
		tw.writef("Message:\t%s\n", s.Message)
	}
	if s.Error != "" {
		tw.writef("Error:\t%s\n", s.Error)
	}
	if s.Details != "" {
		tw.writef("Details:\t%s\n", truncate(s.Details, 80))
	}
	if len(s.Items) > 0 {
		tw.writef("Items:\t%d\n", len(s.Items))
	}
	return tw.finish()
}

func printItemTable(w io.Writer, items []domain.Item) error {
	tw := newTabWriter(w)
	tw.writef("ID\tNAME\tREGION\tTYPE\tCONDITION\tVALUE\tPRICED\n")
	for i := range items {
		it := &items[i]
		tw.writef("%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			it.ID,
			truncate(it.Name, 40),
			it.Region,
			it.ListingType,
			orDash(string(it.Condition)),
			formatValue(it.Value),
			formatTime(it),
		)
	}
	return tw.finish()
}

func printItemDetail(w io.Writer, it *domain.Item) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%s\n", it.ID)
	tw.writef("Name:\t%s\n", it.Name)
	tw.writef("Search Term:\t%s\n", orDash(it.SearchTerm))
	tw.writef("Condition:\t%s\n", orDash(string(it.Condition)))
	tw.writef("Region:\t%s\n", it.Region)
	tw.writef("Listing Type:\t%s\n", it.ListingType)
	tw.writef("Value:\t%s\n", formatValue(it.Value))
	tw.writef("Priced At:\t%s\n", formatTime(it))
	tw.writef("Created:\t%s\n", it.CreatedAt.Format(timeLayout))
	return tw.finish()
}

func printRefreshResult(w io.Writer, r *domain.RefreshResult) error {
	tw := newTabWriter(w)
	tw.writef("Processed:\t%d\n", r.Processed)
	tw.writef("Updated:\t%d\n", r.Updated)
	tw.writef("Skipped:\t%d\n", r.Skipped)
	tw.writef("Failed:\t%d\n", r.Failed)
	tw.writef("Next Offset:\t%d\n", r.NextOffset)
	tw.writef("Has More:\t%v\n", r.HasMore)
	return tw.finish()
}

func printQuotaTable(w io.Writer, quotas []apiclient.UpstreamQuota) error {
	tw := newTabWriter(w)
	tw.writef("UPSTREAM\tLIMIT\tUSED\tREMAINING\tRESETS\n")
	for i := range quotas {
		q := &quotas[i]
		limit, remaining := "unlimited", "-"
		if q.Limit > 0 {
			limit = strconv.FormatInt(q.Limit, 10)
			remaining = strconv.FormatInt(q.Remaining, 10)
		}
		tw.writef("%s\t%s\t%d\t%s\t%s\n",
			q.Upstream,
			limit,
			q.Used,
			remaining,
			q.ResetAt.Local().Format(timeLayout),
		)
	}
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatValue(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func formatTime(it *domain.Item) string {
	if it.PriceUpdatedAt == nil {
		return "never"
	}
	return it.PriceUpdatedAt.Format(timeLayout)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
