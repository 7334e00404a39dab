package ebay

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	domain "github.com/donaldgifford/collectopedia/pkg/types"
)

// ToRawListings pairs each raw item summary with its parsed price. Items
// whose price is absent or unparseable keep a nil Price; the raw JSON is
// never modified.
func ToRawListings(raw []json.RawMessage) []domain.RawListing {
	listings := make([]domain.RawListing, 0, len(raw))
	for _, r := range raw {
		listings = append(listings, domain.RawListing{
			Price: summaryPrice(r),
			Raw:   r,
		})
	}
	return listings
}

func summaryPrice(raw json.RawMessage) *float64 {
	var item itemSummary
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil
	}
	if item.Price == nil {
		return nil
	}
	return parsePrice(item.Price.Value)
}

func parsePrice(s string) *float64 {
	p, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(p) || math.IsInf(p, 0) {
		return nil
	}
	return &p
}
