package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

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
		Short: "Run one price lookup directly against the upstream APIs",
		Long: "Looks up lowest, median and highest prices without starting the server\n" +
			"or touching the database. Credentials come from the config file.",
		Example: `  collectopedia prices "Optimus Prime G1"
  collectopedia prices "Megatron" --type listed --condition Used --region US`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lt := domain.ListingType(listingType)
			if !lt.Valid() {
				return fmt.Errorf("--type must be listed or sold (got %q)", listingType)
			}

			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}

			deps := buildPricing(cfg, log)
			stats := deps.aggregator.GetPrices(cmd.Context(), domain.PriceQuery{
				SearchTerm:   args[0],
				ListingType:  lt,
				Condition:    domain.Condition(condition),
				Region:       domain.ParseRegion(region),
				IncludeItems: includeItems,
			})

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		},
	}

	cmd.Flags().StringVar(&listingType, "type", "sold", "listing type (listed, sold)")
	cmd.Flags().StringVar(&condition, "condition", "", "condition filter (New, Used)")
	cmd.Flags().StringVar(&region, "region", "", "marketplace region (default from config)")
	cmd.Flags().BoolVar(&includeItems, "items", false, "include raw upstream items")

	return cmd
}
