package notify

import (
	"context"
	"errors"
)

// MultiNotifier fans a summary out to every wrapped notifier. All of them
// are tried; their errors are joined.
type MultiNotifier []Notifier

// SendRefreshSummary implements Notifier.
func (m MultiNotifier) SendRefreshSummary(ctx context.Context, s *RefreshSummary) error {
	var errs []error
	for _, n := range m {
		if err := n.SendRefreshSummary(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
