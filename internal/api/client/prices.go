package client

import (
	"context"

	domain "github.com/donaldgifford/collectopedia/pkg/types"
)

// PriceRequest is the body of a price lookup.
type PriceRequest struct {
	SearchTerm   string             `json:"searchTerm"`
	ListingType  domain.ListingType `json:"listingType"`
	Condition    domain.Condition   `json:"condition,omitempty"`
	Region       domain.Region      `json:"region,omitempty"`
	IncludeItems bool               `json:"includeItems,omitempty"`
}

// GetPrices looks up lowest, median and highest prices. Degraded results
// come back with Message or Error set and a nil error.
func (c *Client) GetPrices(ctx context.Context, req PriceRequest) (*domain.PriceStats, error) {
	var stats domain.PriceStats
	if err := c.post(ctx, "/api/v1/prices", req, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
