// Package notify delivers catalog refresh summaries to an operator channel.
package notify

import (
	"context"
	"time"
)

// RefreshSummary describes one finished full catalog refresh.
type RefreshSummary struct {
	Processed int
	Updated   int
	Skipped   int
	Failed    int
	Duration  time.Duration
	// Err is set when the pass stopped early.
	Err string
}

// Healthy reports whether the pass finished with no failed items.
func (s *RefreshSummary) Healthy() bool {
	return s.Err == "" && s.Failed == 0
}

// Notifier sends refresh summaries.
type Notifier interface {
	SendRefreshSummary(ctx context.Context, summary *RefreshSummary) error
}
