package ebay

import "encoding/json"

// itemSummary holds the fields of a Browse API item summary that the
// client reads. The full object is kept alongside as raw JSON.
type itemSummary struct {
	ItemID    string     `json:"itemId"`
	Title     string     `json:"title"`
	Price     *ItemPrice `json:"price,omitempty"`
	Condition string     `json:"condition"`
}

// ItemPrice holds eBay price information. Value is a decimal string.
type ItemPrice struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type browseAPIResponse struct {
	ItemSummaries []json.RawMessage `json:"itemSummaries"`
	Total         int               `json:"total"`
	Offset        int               `json:"offset"`
	Limit         int               `json:"limit"`
	Next          string            `json:"next"`
}
