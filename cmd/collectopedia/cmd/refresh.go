package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	domain "github.com/donaldgifford/collectopedia/pkg/types"
)

func refreshCmd() *cobra.Command {
	var (
		offset int
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Refresh catalog values without the server",
		Long: "Prices catalog items and stores each rounded median. By default one batch\n" +
			"starting at --offset is processed; --all walks the whole catalog.",
		Example: `  collectopedia refresh
  collectopedia refresh --offset 50
  collectopedia refresh --all`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			s, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			deps := buildPricing(cfg, log)
			refresher := newRefresher(cfg, s, deps.aggregator, log)

			var res *domain.RefreshResult
			if all {
				res, err = refresher.RunAll(ctx)
			} else {
				res, err = refresher.RunBatch(ctx, offset)
			}
			if err != nil {
				return fmt.Errorf("refreshing catalog: %w", err)
			}

			fmt.Printf("processed=%d updated=%d skipped=%d failed=%d\n",
				res.Processed, res.Updated, res.Skipped, res.Failed)
			if !all && res.HasMore {
				fmt.Printf("more items remain, continue with --offset %d\n", res.NextOffset)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "catalog offset of the batch")
	cmd.Flags().BoolVar(&all, "all", false, "refresh every batch")

	return cmd
}
