package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/collectopedia/internal/api/client"
	domain "github.com/donaldgifford/collectopedia/pkg/types"
)

func refreshCmd() *cobra.Command {
	var (
		offset int
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Refresh catalog values on the server",
		Long: "Asks the server to price one batch of catalog items and store each\n" +
			"rounded median. With --all, batches are requested until the whole\n" +
			"catalog has been processed.",
		Example: `  cpd refresh
  cpd refresh --offset 25
  cpd refresh --all`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := newClient()
			total := &domain.RefreshResult{}
			next := offset
			for {
				res, err := c.Refresh(cmd.Context(), next)
				if err != nil {
					if apiclient.IsStatus(err, http.StatusConflict) {
						return errors.New("a refresh is already running on the server")
					}
					return err
				}
				total.Processed += res.Processed
				total.Updated += res.Updated
				total.Skipped += res.Skipped
				total.Failed += res.Failed
				total.NextOffset = res.NextOffset
				total.HasMore = res.HasMore

				if !all || !res.HasMore || res.NextOffset <= next {
					break
				}
				next = res.NextOffset
				if !jsonOutput() {
					fmt.Fprintf(os.Stderr, "refreshed through offset %d\n", next)
				}
			}

			if jsonOutput() {
				return outputJSON(total)
			}
			return printRefreshResult(os.Stdout, total)
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "catalog offset of the first batch")
	cmd.Flags().BoolVar(&all, "all", false, "keep requesting batches until done")

	return cmd
}

func quotaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quota",
		Short: "Show upstream API quota usage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			quotas, err := newClient().Quota(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(quotas)
			}
			if len(quotas) == 0 {
				fmt.Println("No metered upstreams.")
				return nil
			}
			return printQuotaTable(os.Stdout, quotas)
		},
	}
}
