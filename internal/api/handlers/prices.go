package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/donaldgifford/collectopedia/pkg/types"
)

// PriceLooker answers price queries.
type PriceLooker interface {
	GetPrices(ctx context.Context, q domain.PriceQuery) domain.PriceStats
	HasRegion(r domain.Region) bool
}

// PricesHandler serves price lookups.
type PricesHandler struct {
	pricer        PriceLooker
	strictRegions bool
}

// PricesOption configures the PricesHandler.
type PricesOption func(*PricesHandler)

// WithStrictRegions rejects unknown region codes with 422 instead of
// falling back to the default region.
func WithStrictRegions(strict bool) PricesOption {
	return func(h *PricesHandler) {
		h.strictRegions = strict
	}
}

// NewPricesHandler creates a new PricesHandler.
func NewPricesHandler(p PriceLooker, opts ...PricesOption) *PricesHandler {
	h := &PricesHandler{pricer: p}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// GetPricesInput is the price lookup request.
type GetPricesInput struct {
	Body struct {
		SearchTerm   string `json:"searchTerm"             doc:"Keywords to search for"                      minLength:"1" maxLength:"300" example:"Optimus Prime G1"`
		ListingType  string `json:"listingType"            doc:"Price currently listed or already sold items" enum:"listed,sold"                example:"sold"`
		Condition    string `json:"condition,omitempty"    doc:"Optional condition filter"                    enum:"New,Used"`
		Region       string `json:"region,omitempty"       doc:"Marketplace region, UK when omitted"                                      example:"UK"`
		IncludeItems bool   `json:"includeItems,omitempty" doc:"Include raw upstream items in the response"`
	}
}

// GetPricesOutput is the price lookup response.
type GetPricesOutput struct {
	Body domain.PriceStats
}

// GetPrices looks up lowest, median and highest prices. Upstream problems
// are reported in the body with a 200 status.
func (h *PricesHandler) GetPrices(
	ctx context.Context,
	input *GetPricesInput,
) (*GetPricesOutput, error) {
	region := domain.DefaultRegion
	if input.Body.Region != "" {
		region = domain.ParseRegion(input.Body.Region)
		if h.strictRegions && !h.pricer.HasRegion(region) {
			return nil, huma.Error422UnprocessableEntity(
				"unknown region " + input.Body.Region,
			)
		}
	}

	stats := h.pricer.GetPrices(ctx, domain.PriceQuery{
		SearchTerm:   input.Body.SearchTerm,
		ListingType:  domain.ListingType(input.Body.ListingType),
		Condition:    domain.Condition(input.Body.Condition),
		Region:       region,
		IncludeItems: input.Body.IncludeItems,
	})

	return &GetPricesOutput{Body: stats}, nil
}

// RegisterPriceRoutes registers the price lookup endpoint with the Huma API.
func RegisterPriceRoutes(api huma.API, h *PricesHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-prices",
		Method:      http.MethodPost,
		Path:        "/api/v1/prices",
		Summary:     "Look up item prices",
		Description: "Returns lowest, median and highest prices from active or sold eBay listings. " +
			"Missing credentials, empty results and upstream failures are reported in the body.",
		Tags:   []string{"prices"},
		Errors: []int{http.StatusUnprocessableEntity, http.StatusTooManyRequests},
	}, h.GetPrices)
}
