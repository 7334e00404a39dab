// Package domain defines the core business types for the collectopedia
// pricing service.
package domain

import (
	"encoding/json"
	"strings"
)

// ListingType selects which upstream source a price query is answered from.
type ListingType string

// Listing type constants.
const (
	ListingListed ListingType = "listed"
	ListingSold   ListingType = "sold"
)

// Valid reports whether t is one of the known listing types.
func (t ListingType) Valid() bool {
	return t == ListingListed || t == ListingSold
}

// Condition is the optional item condition filter.
type Condition string

// Condition constants.
const (
	ConditionNew  Condition = "New"
	ConditionUsed Condition = "Used"
)

// Region is a marketplace region code.
type Region string

// Region constants.
const (
	RegionUS Region = "US"
	RegionUK Region = "UK"

	DefaultRegion = RegionUK
)

// ParseRegion normalizes a caller supplied region code. It does not check
// whether the region is configured.
func ParseRegion(s string) Region {
	return Region(strings.ToUpper(strings.TrimSpace(s)))
}

// RegionConfig holds the marketplace identifiers needed to scope a query to
// a geographic market.
type RegionConfig struct {
	MarketplaceID   string `json:"marketplace_id"   yaml:"marketplace_id"`
	LocationCountry string `json:"location_country" yaml:"location_country"`
	DeliveryCountry string `json:"delivery_country" yaml:"delivery_country"`
	SiteID          string `json:"site_id"          yaml:"site_id"`
}

// RegionTable maps region codes to their marketplace configuration.
type RegionTable map[Region]RegionConfig

// DefaultRegions returns the built-in US and UK region table.
func DefaultRegions() RegionTable {
	return RegionTable{
		RegionUS: {
			MarketplaceID:   "EBAY_US",
			LocationCountry: "US",
			DeliveryCountry: "US",
			SiteID:          "0",
		},
		RegionUK: {
			MarketplaceID:   "EBAY_GB",
			LocationCountry: "GB",
			DeliveryCountry: "GB",
			SiteID:          "3",
		},
	}
}

// PriceQuery is a single price lookup request.
type PriceQuery struct {
	SearchTerm   string
	ListingType  ListingType
	Condition    Condition
	Region       Region
	IncludeItems bool
}

// RawListing is one upstream item. Price is nil when the item had no usable
// price; Raw is the upstream JSON object, untouched.
type RawListing struct {
	Price *float64
	Raw   json.RawMessage
}

// PriceStats is the result of a price lookup. Lowest, Median and Highest are
// all zero whenever Message or Error is set.
type PriceStats struct {
	Lowest      float64           `json:"lowest"`
	Median      float64           `json:"median"`
	Highest     float64           `json:"highest"`
	ListingType ListingType       `json:"listingType"`
	Message     string            `json:"message,omitempty"`
	Error       string            `json:"error,omitempty"`
	Details     string            `json:"details,omitempty"`
	Items       []json.RawMessage `json:"items,omitempty"`
}

// Degraded reports whether the lookup produced no usable statistics.
func (s *PriceStats) Degraded() bool {
	return s.Message != "" || s.Error != ""
}

// ListedSearch is the request handed to an active-listings source.
type ListedSearch struct {
	Query         string
	Sort          string
	Limit         int
	Filter        string
	MarketplaceID string
}

// SoldSearch is the request handed to a sold-listings source.
type SoldSearch struct {
	Keywords       string
	CategoryID     string
	SiteID         string
	MaxResults     int
	RemoveOutliers bool
}

// SoldResult is what a sold-listings source returns. AveragePrice is the
// upstream's own figure and is informational only.
type SoldResult struct {
	Items        []RawListing
	AveragePrice float64
}
