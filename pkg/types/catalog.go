package domain

import "time"

// Item is a catalog entry whose value is kept current by the refresher.
type Item struct {
	ID             string      `json:"id"                         db:"id"`
	Name           string      `json:"name"                       db:"name"`
	SearchTerm     string      `json:"search_term,omitempty"      db:"search_term"`
	Condition      Condition   `json:"condition,omitempty"        db:"condition"`
	Region         Region      `json:"region"                     db:"region"`
	ListingType    ListingType `json:"listing_type"               db:"listing_type"`
	Value          *int        `json:"value,omitempty"            db:"value"`
	PriceUpdatedAt *time.Time  `json:"price_updated_at,omitempty" db:"price_updated_at"`
	CreatedAt      time.Time   `json:"created_at"                 db:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"                 db:"updated_at"`
}

// Query returns the price query used to value the item. The search term
// falls back to the item name.
func (i *Item) Query() PriceQuery {
	term := i.SearchTerm
	if term == "" {
		term = i.Name
	}
	lt := i.ListingType
	if lt == "" {
		lt = ListingSold
	}
	return PriceQuery{
		SearchTerm:  term,
		ListingType: lt,
		Condition:   i.Condition,
		Region:      i.Region,
	}
}

// RefreshResult summarizes one refresher batch.
type RefreshResult struct {
	Processed  int  `json:"processed"`
	Updated    int  `json:"updated"`
	Skipped    int  `json:"skipped"`
	Failed     int  `json:"failed"`
	NextOffset int  `json:"next_offset"`
	HasMore    bool `json:"has_more"`
}
