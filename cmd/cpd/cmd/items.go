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

func itemsCmd() *cobra.Command {
	itemsRoot := &cobra.Command{
		Use:   "items",
		Short: "Manage catalog items",
		Long: "Manage the catalog of collectible items whose values are kept current\n" +
			"by the refresher.",
	}

	itemsRoot.AddCommand(
		itemsListCmd(),
		itemsShowCmd(),
		itemsAddCmd(),
		itemsRemoveCmd(),
	)

	return itemsRoot
}

func itemsListCmd() *cobra.Command {
	var params apiclient.ItemListParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog items",
		Example: `  cpd items list
  cpd items list --region US --order-by value
  cpd items list --search prime --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := newClient().ListItems(cmd.Context(), &params)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(resp)
			}
			if len(resp.Items) == 0 {
				fmt.Println("No items found.")
				return nil
			}
			if err := printItemTable(os.Stdout, resp.Items); err != nil {
				return err
			}
			fmt.Printf("\nShowing %d of %d items (offset %d)\n", len(resp.Items), resp.Total, resp.Offset)
			return nil
		},
	}

	cmd.Flags().StringVar(&params.Region, "region", "", "filter by region")
	cmd.Flags().StringVar(&params.ListingType, "type", "", "filter by listing type (listed, sold)")
	cmd.Flags().StringVar(&params.Search, "search", "", "case-insensitive name match")
	cmd.Flags().IntVar(&params.Limit, "limit", 0, "number of results (default 50)")
	cmd.Flags().IntVar(&params.Offset, "offset", 0, "pagination offset")
	cmd.Flags().StringVar(&params.OrderBy, "order-by", "", "sort field (created_at, name, value, price_updated_at)")

	return cmd
}

func itemsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show catalog item details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := newClient().GetItem(cmd.Context(), args[0])
			if err != nil {
				return notFound(err, args[0])
			}
			if jsonOutput() {
				return outputJSON(item)
			}
			return printItemDetail(os.Stdout, item)
		},
	}
}

func itemsAddCmd() *cobra.Command {
	var (
		name        string
		searchTerm  string
		condition   string
		region      string
		listingType string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item to the catalog",
		Long: "Adds a catalog item. The search term defaults to the name; the item\n" +
			"is valued on the next refresh.",
		Example: `  cpd items add --name "Optimus Prime"
  cpd items add --name "Soundwave" --search "G1 Soundwave boxed" --condition Used --region US`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if name == "" {
				return errors.New("--name is required")
			}
			created, err := newClient().CreateItem(cmd.Context(), &domain.Item{
				Name:        name,
				SearchTerm:  searchTerm,
				Condition:   domain.Condition(condition),
				Region:      domain.Region(region),
				ListingType: domain.ListingType(listingType),
			})
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(created)
			}
			fmt.Printf("Created item %s (%s)\n", created.ID, created.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name (required)")
	cmd.Flags().StringVar(&searchTerm, "search", "", "search keywords (default: name)")
	cmd.Flags().StringVar(&condition, "condition", "", "condition filter (New, Used)")
	cmd.Flags().StringVar(&region, "region", "", "marketplace region (default UK)")
	cmd.Flags().StringVar(&listingType, "type", "", "listing type used for valuation (default sold)")

	return cmd
}

func itemsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an item from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newClient().DeleteItem(cmd.Context(), args[0]); err != nil {
				return notFound(err, args[0])
			}
			fmt.Printf("Removed item %s\n", args[0])
			return nil
		},
	}
}

func notFound(err error, id string) error {
	if apiclient.IsStatus(err, http.StatusNotFound) {
		return fmt.Errorf("item %s not found", id)
	}
	return err
}
