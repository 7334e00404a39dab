package cmd

import (
	"errors"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/collectopedia/internal/api/client"
	domain "github.com/donaldgifford/collectopedia/pkg/types"
)

func pricesCmd() *cobra.Command {
	var (
		listingType  string
		condition    string
		region       string
		includeItems bool
	)

	cmd := &cobra.Command{
		Use:   "prices <search term>",
		Short: "Look up lowest, median and highest prices",
		Long: "Looks up prices from sold or currently listed eBay items. Missing\n" +
			"credentials, empty results and upstream failures are shown as a\n" +
			"message with zeroed prices.",
		Example: `  cpd prices "Optimus Prime G1"
  cpd prices "Megatron" --type listed --condition Used --region US
  cpd prices "Soundwave" --items --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := newClient().GetPrices(cmd.Context(), apiclient.PriceRequest{
				SearchTerm:   args[0],
				ListingType:  domain.ListingType(listingType),
				Condition:    domain.Condition(condition),
				Region:       domain.Region(region),
				IncludeItems: includeItems,
			})
			if err != nil {
				if apiclient.IsStatus(err, http.StatusTooManyRequests) {
					return errors.New("rate limited by the server, try again shortly")
				}
				return err
			}
			if jsonOutput() {
				return outputJSON(stats)
			}
			return printPriceStats(os.Stdout, stats)
		},
	}

	cmd.Flags().StringVar(&listingType, "type", "sold", "listing type (listed, sold)")
	cmd.Flags().StringVar(&condition, "condition", "", "condition filter (New, Used)")
	cmd.Flags().StringVar(&region, "region", "", "marketplace region (US, UK)")
	cmd.Flags().BoolVar(&includeItems, "items", false, "include raw upstream items")

	return cmd
}
