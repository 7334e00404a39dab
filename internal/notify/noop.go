package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded summaries. It is used
// when no webhook is configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards summaries with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// SendRefreshSummary logs and discards the summary.
func (n *NoOpNotifier) SendRefreshSummary(_ context.Context, s *RefreshSummary) error {
	n.log.Debug("refresh summary discarded (no webhook configured)",
		"processed", s.Processed,
		"failed", s.Failed,
	)
	return nil
}
